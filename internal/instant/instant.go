package instant

import (
	"fmt"
	"math/big"
)

var (
	nanosPerSecond = big.NewInt(1_000_000_000)
	maxNanos       = big.NewInt(999_999_999)
	secondsPerDay  = big.NewInt(86_400)
)

// Instant is a point in time as epoch seconds plus nanoseconds.
//
// INVARIANT: Nanos is always in [0, 999_999_999]. Construct values through
// Normalize (or NormalizeInt) so the invariant holds.
type Instant struct {
	Seconds *big.Int
	Nanos   int32
}

// Normalize folds an arbitrary nanosecond count into seconds and returns a
// canonical Instant. nanos may be negative or exceed one billion; a nil
// argument is treated as zero. Neither argument is modified.
func Normalize(seconds, nanos *big.Int) Instant {
	s := new(big.Int)
	if seconds != nil {
		s.Set(seconds)
	}
	n := new(big.Int)
	if nanos != nil {
		n.Set(nanos)
	}

	if n.Cmp(nanosPerSecond) >= 0 {
		q, r := new(big.Int).QuoRem(n, nanosPerSecond, new(big.Int))
		s.Add(s, q)
		n = r
	}
	if n.Sign() < 0 {
		// borrow = ceil(-n / 1e9)
		borrow := new(big.Int).Neg(n)
		borrow.Add(borrow, maxNanos)
		borrow.Quo(borrow, nanosPerSecond)
		s.Sub(s, borrow)
		n.Add(n, new(big.Int).Mul(borrow, nanosPerSecond))
	}

	return Instant{Seconds: s, Nanos: int32(n.Int64())}
}

// NormalizeInt is Normalize for int64 operands.
func NormalizeInt(seconds, nanos int64) Instant {
	return Normalize(big.NewInt(seconds), big.NewInt(nanos))
}

// secs returns the seconds component, treating a nil pointer as zero.
func (i Instant) secs() *big.Int {
	if i.Seconds == nil {
		return new(big.Int)
	}
	return i.Seconds
}

// Equal reports whether i and o denote the same instant.
func (i Instant) Equal(o Instant) bool {
	return i.Nanos == o.Nanos && i.secs().Cmp(o.secs()) == 0
}

// String renders the instant as "<seconds>.<nanos>" with nine fraction digits.
func (i Instant) String() string {
	return fmt.Sprintf("%s.%09d", i.secs().String(), i.Nanos)
}
