package instant

import (
	"math/big"
	"regexp"

	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
)

// daysText is the only string form accepted for a day delta.
var daysText = regexp.MustCompile(`^-?\d+$`)

// ParseDaysDelta accepts an integer number or a string of decimal digits
// with an optional leading minus. Anything else, including "3.5" and " 5",
// is rejected.
func ParseDaysDelta(v ir.IRValue) (*big.Int, error) {
	bad := func() error {
		return inputerr.Parse(inputerr.ErrCodeInvalidDays, "days", "days must be an integer")
	}

	switch val := v.(type) {
	case ir.IRInt:
		return big.NewInt(int64(val)), nil
	case ir.IRNumber:
		r, ok := val.Rat()
		if !ok || !r.IsInt() {
			return nil, bad()
		}
		return new(big.Int).Set(r.Num()), nil
	case ir.IRString:
		s := string(val)
		if !daysText.MatchString(s) {
			return nil, bad()
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, bad()
		}
		return n, nil
	default:
		return nil, bad()
	}
}

// AddDays shifts i by a signed number of whole days. Nanoseconds are
// carried over unchanged.
func AddDays(i Instant, days *big.Int) Instant {
	shift := new(big.Int).Mul(days, secondsPerDay)
	return Normalize(shift.Add(shift, i.secs()), big.NewInt(int64(i.Nanos)))
}
