package model

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/piwi3910/creasefit/internal/geom"
)

// Both text formats are a flat stream of counts and "x,y" points whose
// structure is driven by the counts, so the grammar only tokenizes and
// the readers below impose the layout.

var numberLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[-/,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type numberStream struct {
	Entries []*streamEntry `parser:"@@*"`
}

type streamEntry struct {
	Point *pointExpr `parser:"  @@"`
	Count *countExpr `parser:"| @@"`
}

type pointExpr struct {
	X *ratExpr `parser:"@@ \",\""`
	Y *ratExpr `parser:"@@"`
}

type countExpr struct {
	Value string `parser:"@Int"`
}

type ratExpr struct {
	Neg bool   `parser:"@\"-\"?"`
	Num string `parser:"@Int"`
	Den string `parser:"( \"/\" @Int )?"`
}

var parseNumberStream = participle.MustBuild[numberStream](
	participle.Lexer(numberLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

func (r *ratExpr) rat() (*big.Rat, error) {
	text := r.Num
	if r.Den != "" {
		text += "/" + r.Den
	}
	if r.Neg {
		text = "-" + text
	}
	return geom.ParseRat(text)
}

type streamReader struct {
	entries []*streamEntry
	pos     int
}

func newStreamReader(src []byte) (*streamReader, error) {
	stream, err := parseNumberStream.ParseBytes("", src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to tokenize input")
	}
	return &streamReader{entries: stream.Entries}, nil
}

func (s *streamReader) count(what string) (int, error) {
	if s.pos >= len(s.entries) {
		return 0, errors.Errorf("unexpected end of input reading %s", what)
	}
	e := s.entries[s.pos]
	s.pos++
	if e.Count == nil {
		return 0, errors.Errorf("entry %d: expected %s, found a point", s.pos, what)
	}
	n, err := strconv.Atoi(e.Count.Value)
	if err != nil {
		return 0, errors.Wrapf(err, "entry %d: invalid %s", s.pos, what)
	}
	return n, nil
}

func (s *streamReader) point(what string) (geom.Point, error) {
	if s.pos >= len(s.entries) {
		return geom.Point{}, errors.Errorf("unexpected end of input reading %s", what)
	}
	e := s.entries[s.pos]
	s.pos++
	if e.Point == nil {
		return geom.Point{}, errors.Errorf("entry %d: expected %s, found a count", s.pos, what)
	}
	x, err := e.Point.X.rat()
	if err != nil {
		return geom.Point{}, err
	}
	y, err := e.Point.Y.rat()
	if err != nil {
		return geom.Point{}, err
	}
	return geom.P(x, y), nil
}

func (s *streamReader) done() error {
	if s.pos != len(s.entries) {
		return errors.Errorf("%d trailing entries after the last section", len(s.entries)-s.pos)
	}
	return nil
}

// ReadProblem parses the problem text format: a polygon count, then per
// polygon a vertex count and its vertices, then a skeleton segment count
// and one "x1,y1 x2,y2" line per segment.
func ReadProblem(r io.Reader) (Problem, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return Problem{}, errors.Wrap(err, "failed to read problem")
	}
	in, err := newStreamReader(src)
	if err != nil {
		return Problem{}, err
	}

	p := NewProblem("")
	polys, err := in.count("polygon count")
	if err != nil {
		return Problem{}, err
	}
	for i := 0; i < polys; i++ {
		n, err := in.count("vertex count")
		if err != nil {
			return Problem{}, err
		}
		poly := make(geom.Polygon, 0, n)
		for k := 0; k < n; k++ {
			v, err := in.point("silhouette vertex")
			if err != nil {
				return Problem{}, err
			}
			poly = append(poly, v)
		}
		p.Silhouette = append(p.Silhouette, poly)
	}

	segs, err := in.count("skeleton count")
	if err != nil {
		return Problem{}, err
	}
	for i := 0; i < segs; i++ {
		a, err := in.point("skeleton endpoint")
		if err != nil {
			return Problem{}, err
		}
		b, err := in.point("skeleton endpoint")
		if err != nil {
			return Problem{}, err
		}
		p.Skeleton = append(p.Skeleton, geom.Seg(a, b))
	}
	return p, in.done()
}

// ReadSolution parses the solution text format.
func ReadSolution(r io.Reader) (Solution, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return Solution{}, errors.Wrap(err, "failed to read solution")
	}
	in, err := newStreamReader(src)
	if err != nil {
		return Solution{}, err
	}

	var s Solution
	n, err := in.count("source vertex count")
	if err != nil {
		return Solution{}, err
	}
	for i := 0; i < n; i++ {
		v, err := in.point("source vertex")
		if err != nil {
			return Solution{}, err
		}
		s.Source = append(s.Source, v)
	}

	m, err := in.count("facet count")
	if err != nil {
		return Solution{}, err
	}
	for i := 0; i < m; i++ {
		k, err := in.count("facet size")
		if err != nil {
			return Solution{}, err
		}
		facet := make([]int, k)
		for j := range facet {
			idx, err := in.count("vertex index")
			if err != nil {
				return Solution{}, err
			}
			if idx >= n {
				return Solution{}, errors.Errorf("facet %d: vertex index %d out of range", i, idx)
			}
			facet[j] = idx
		}
		s.Facets = append(s.Facets, facet)
	}

	for i := 0; i < n; i++ {
		v, err := in.point("destination vertex")
		if err != nil {
			return Solution{}, err
		}
		s.Destination = append(s.Destination, v)
	}
	return s, in.done()
}

// WriteTo writes the problem in its text format.
func (p Problem) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, len(p.Silhouette))
	for _, poly := range p.Silhouette {
		fmt.Fprintln(&buf, len(poly))
		for _, v := range poly {
			fmt.Fprintln(&buf, v)
		}
	}
	fmt.Fprintln(&buf, len(p.Skeleton))
	for _, s := range p.Skeleton {
		fmt.Fprintf(&buf, "%s %s\n", s.A, s.B)
	}
	return buf.WriteTo(w)
}

// WriteTo writes the solution in its text format.
func (s Solution) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, len(s.Source))
	for _, v := range s.Source {
		fmt.Fprintln(&buf, v)
	}
	fmt.Fprintln(&buf, len(s.Facets))
	for _, f := range s.Facets {
		parts := make([]string, 0, len(f)+1)
		parts = append(parts, strconv.Itoa(len(f)))
		for _, idx := range f {
			parts = append(parts, strconv.Itoa(idx))
		}
		fmt.Fprintln(&buf, strings.Join(parts, " "))
	}
	for _, v := range s.Destination {
		fmt.Fprintln(&buf, v)
	}
	return buf.WriteTo(w)
}

func (s Solution) String() string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}

// Size counts the non-whitespace characters of the text form.
func (s Solution) Size() int {
	n := 0
	for _, r := range s.String() {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
