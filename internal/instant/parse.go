package instant

import (
	"errors"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
)

// ExampleISO is the accepted format quoted back in error messages.
const ExampleISO = "2025-08-17T00:00:00Z"

// isoLayouts are tried in order; the first that parses wins. Forms without
// an offset are read as UTC. Fractional seconds are accepted after the
// seconds field by time.Parse even though the layouts omit them.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// expandedYear matches the ISO-8601 expanded representation: a sign and six
// year digits, as in "+275760-09-13T00:00:00Z" or "-000001-01-01".
var expandedYear = regexp.MustCompile(`^([+-])(\d{6})(-.*)?$`)

var (
	integerText     = regexp.MustCompile(`^[+-]?\d+$`)
	millisPerSecond = big.NewInt(1000)
	nanosPerMilli   = big.NewInt(1_000_000)
)

// ParseDate converts a DateInput to a normalized Instant.
func ParseDate(in DateInput) (Instant, error) {
	switch v := in.(type) {
	case ISODate:
		return parseISO(v.Text)
	case EncodedDate:
		return firstSuccess(v.Text, decodeEncoded, parseISO)
	case StructuredDate:
		return fromStructured(v)
	default:
		return Instant{}, inputerr.Parse(inputerr.ErrCodeUnsupportedDate, "date", "unsupported date input")
	}
}

// attempt is one fallible parse of a date string.
type attempt func(text string) (Instant, error)

// skipError marks an attempt that did not recognize its input; the next
// attempt is tried. The wrapped error is reported only if no attempt
// recognizes the input.
type skipError struct {
	err error
}

func (e *skipError) Error() string { return e.err.Error() }
func (e *skipError) Unwrap() error { return e.err }

func skip(err error) error { return &skipError{err: err} }

// firstSuccess runs attempts in order and returns the first success. An
// attempt that recognizes its input but rejects it stops the chain.
func firstSuccess(text string, attempts ...attempt) (Instant, error) {
	var last error
	for _, try := range attempts {
		inst, err := try(text)
		if err == nil {
			return inst, nil
		}
		var se *skipError
		if !errors.As(err, &se) {
			return Instant{}, err
		}
		last = se.err
	}
	return Instant{}, last
}

// decodeEncoded reads a JSON object with a seconds field out of text.
func decodeEncoded(text string) (Instant, error) {
	v, err := ir.UnmarshalIRValue([]byte(text))
	if err != nil {
		return Instant{}, skip(invalidISO())
	}
	obj, ok := v.(ir.IRObject)
	if !ok {
		return Instant{}, skip(invalidISO())
	}
	seconds, ok := obj.Lookup("seconds")
	if !ok {
		return Instant{}, skip(invalidISO())
	}
	nanos, _ := obj.Lookup("nanos")
	return fromStructured(StructuredDate{Seconds: seconds, Nanos: nanos})
}

func fromStructured(sd StructuredDate) (Instant, error) {
	seconds, err := exactSeconds(sd.Seconds)
	if err != nil {
		return Instant{}, err
	}
	nanos, err := finiteNanos(sd.Nanos)
	if err != nil {
		return Instant{}, err
	}
	return Normalize(seconds, nanos), nil
}

func invalidISO() error {
	return inputerr.Parse(inputerr.ErrCodeInvalidDate, "date",
		"invalid ISO date string, expected a form like %q", ExampleISO)
}

// parseISO parses an ISO-8601 string at millisecond resolution.
func parseISO(text string) (Instant, error) {
	text = strings.TrimSpace(text)

	if m := expandedYear.FindStringSubmatch(text); m != nil {
		return parseExpandedISO(m[1], m[2], m[3])
	}

	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		return fromEpochMillis(t.Unix(), t.Nanosecond()), nil
	}
	return Instant{}, invalidISO()
}

// parseExpandedISO handles years outside 0000-9999. The month/day/time part
// is validated by time.Parse against a stand-in year with the same leap-year
// status, then placed on the real year with calendar arithmetic.
func parseExpandedISO(sign, digits, rest string) (Instant, error) {
	year, ok := new(big.Int).SetString(digits, 10)
	if !ok || (sign == "-" && year.Sign() == 0) {
		return Instant{}, invalidISO()
	}
	y := year.Int64()
	if sign == "-" {
		y = -y
	}

	standIn := "2001"
	if isLeapYear(y) {
		standIn = "2000"
	}
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, standIn+rest)
		if err != nil {
			continue
		}
		_, month, day := t.Date()
		hour, minute, second := t.Clock()
		_, offset := t.Zone()
		unix := daysFromCivil(y, int(month), day)*86400 +
			int64(hour)*3600 + int64(minute)*60 + int64(second) - int64(offset)
		return fromEpochMillis(unix, t.Nanosecond()), nil
	}
	return Instant{}, invalidISO()
}

// fromEpochMillis truncates to millisecond resolution, then splits epoch
// milliseconds with floor division so the remainder is never negative.
func fromEpochMillis(unix int64, nsec int) Instant {
	ms := new(big.Int).Mul(big.NewInt(unix), millisPerSecond)
	ms.Add(ms, big.NewInt(int64(nsec/1_000_000)))

	seconds, rem := new(big.Int).DivMod(ms, millisPerSecond, new(big.Int))
	return Normalize(seconds, rem.Mul(rem, nanosPerMilli))
}

// exactSeconds coerces a seconds value to an exact integer. Strings must be
// decimal integers; numbers must have an integral value.
func exactSeconds(v ir.IRValue) (*big.Int, error) {
	bad := func() error {
		return inputerr.Parse(inputerr.ErrCodeInvalidSeconds, "seconds",
			"seconds must be an integer, got %s", describe(v))
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
		text := strings.TrimSpace(string(val))
		if !integerText.MatchString(text) {
			return nil, bad()
		}
		n, ok := new(big.Int).SetString(strings.TrimPrefix(text, "+"), 10)
		if !ok {
			return nil, bad()
		}
		return n, nil
	default:
		return nil, bad()
	}
}

// finiteNanos coerces a nanos value to an integer count. Absent, null, and
// empty-string values mean zero. Fractional values are truncated toward zero.
func finiteNanos(v ir.IRValue) (*big.Int, error) {
	bad := func() error {
		return inputerr.Parse(inputerr.ErrCodeInvalidNanos, "nanos", "nanos must be finite")
	}

	switch val := v.(type) {
	case nil, ir.IRNull:
		return new(big.Int), nil
	case ir.IRInt:
		return big.NewInt(int64(val)), nil
	case ir.IRNumber:
		return truncate(val)
	case ir.IRString:
		text := strings.TrimPrefix(strings.TrimSpace(string(val)), "+")
		if text == "" {
			return new(big.Int), nil
		}
		num, err := ir.NewNumber(text)
		if err != nil {
			return nil, bad()
		}
		if n, ok := num.(ir.IRInt); ok {
			return big.NewInt(int64(n)), nil
		}
		return truncate(num.(ir.IRNumber))
	default:
		return nil, bad()
	}
}

func truncate(n ir.IRNumber) (*big.Int, error) {
	r, ok := n.Rat()
	if !ok {
		return nil, inputerr.Parse(inputerr.ErrCodeInvalidNanos, "nanos", "nanos must be finite")
	}
	return new(big.Int).Quo(r.Num(), r.Denom()), nil
}

// describe renders a value for an error message without dumping large input.
func describe(v ir.IRValue) string {
	switch val := v.(type) {
	case ir.IRString:
		s := string(val)
		if len(s) > 32 {
			s = s[:32] + "..."
		}
		return "\"" + s + "\""
	case ir.IRInt, ir.IRNumber:
		b, _ := ir.MarshalIRValue(val)
		if len(b) > 32 {
			return string(b[:32]) + "..."
		}
		return string(b)
	default:
		return ir.TypeName(v)
	}
}
