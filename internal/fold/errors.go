package fold

import "github.com/pkg/errors"

var (
	// ErrInvariant marks a geometric contradiction: inputs that cannot come
	// from a real folding, or an internal computation that lost exactness.
	ErrInvariant = errors.New("fold invariant violated")

	// ErrInconsistentMarks is returned by Refold when the marked creases
	// cannot be folded flat together. The state is left unfolded.
	ErrInconsistentMarks = errors.New("inconsistent crease marks")
)

func invariantf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvariant, format, args...)
}
