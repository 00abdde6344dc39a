// Package geom is the exact rational geometry kernel: points, segments,
// polygons, half-plane clipping, convex hulls and planar arrangements.
//
// Every coordinate is a *big.Rat. Values handed out by this package are
// never mutated after construction, so points and polygons may share
// their rationals freely.
package geom

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// R returns the rational n/d.
func R(n, d int64) *big.Rat { return big.NewRat(n, d) }

// I returns the integer n as a rational.
func I(n int64) *big.Rat { return new(big.Rat).SetInt64(n) }

// ParseRat reads a rational written as "n", "-n" or "n/d".
func ParseRat(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty rational")
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errors.Errorf("invalid rational %q", s)
	}
	return r, nil
}

// MustRat is ParseRat for literals in tests and tables.
func MustRat(s string) *big.Rat {
	r, err := ParseRat(s)
	if err != nil {
		panic(err)
	}
	return r
}

// FormatRat prints r as "n" when it is an integer and "n/d" otherwise.
func FormatRat(r *big.Rat) string { return r.RatString() }

func add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func quo(a, b *big.Rat) *big.Rat { return new(big.Rat).Quo(a, b) }
func neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }

func minRat(a, b *big.Rat) *big.Rat {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func maxRat(a, b *big.Rat) *big.Rat {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// SqrtRat returns the exact square root of r when r is the square of a
// rational, i.e. when both its reduced numerator and denominator are
// perfect squares.
func SqrtRat(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	num, ok := sqrtInt(r.Num())
	if !ok {
		return nil, false
	}
	den, ok := sqrtInt(r.Denom())
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func sqrtInt(n *big.Int) (*big.Int, bool) {
	s := new(big.Int).Sqrt(n)
	if new(big.Int).Mul(s, s).Cmp(n) != 0 {
		return nil, false
	}
	return s, true
}
