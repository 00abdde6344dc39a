package search

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// Seen remembers which states the search has already queued.
type Seen interface {

	// TryAdd records the state if it is not already present and reports
	// whether it was added.
	TryAdd(s *UnrollState) (bool, error)

	// Len is the number of distinct states recorded.
	Len() int

	// Close releases everything the set holds.
	Close() error
}

// NewMemorySeen keeps keys in a map bucketed by content hash, comparing
// full keys inside a bucket.
func NewMemorySeen() Seen {
	return &memorySeen{buckets: make(map[uint64][]string)}
}

type memorySeen struct {
	buckets map[uint64][]string
	count   int
}

func (m *memorySeen) TryAdd(s *UnrollState) (bool, error) {
	bucket := m.buckets[s.Hash]
	for _, k := range bucket {
		if k == s.Key {
			return false, nil
		}
	}
	m.buckets[s.Hash] = append(bucket, s.Key)
	m.count++
	return true, nil
}

func (m *memorySeen) Len() int { return m.count }

func (m *memorySeen) Close() error {
	m.buckets = nil
	m.count = 0
	return nil
}

// maxBadgerKey stays under badger's 65000 byte key limit.
const maxBadgerKey = 64000

// NewBadgerSeen keeps keys in a badger LSM tree, on disk under dir or in
// memory when dir is empty. Use it when the state set outgrows the heap.
func NewBadgerSeen(dir string) (Seen, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	opts.MetricsEnabled = false
	opts.DetectConflicts = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening state set")
	}
	return &badgerSeen{db: db}, nil
}

type badgerSeen struct {
	db    *badger.DB
	count int
}

func (b *badgerSeen) TryAdd(s *UnrollState) (bool, error) {
	key := make([]byte, 8, 8+len(s.Key))
	binary.BigEndian.PutUint64(key, s.Hash)
	key = append(key, s.Key...)
	if len(key) > maxBadgerKey {
		return false, errors.Errorf("state key of %d bytes is too long to store", len(key))
	}

	added := false
	err := b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		added = true
		return txn.Set(key, nil)
	})
	if err != nil {
		return false, errors.Wrap(err, "recording state")
	}
	if added {
		b.count++
	}
	return added, nil
}

func (b *badgerSeen) Len() int { return b.count }

func (b *badgerSeen) Close() error {
	return b.db.Close()
}
