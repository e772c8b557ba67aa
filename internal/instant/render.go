package instant

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
)

// Result is the rendered form of an instant.
type Result struct {
	DateYMD   string    `json:"date_ymd"`
	DateISO   string    `json:"date_iso,omitempty"`
	Timestamp Timestamp `json:"timestamp"`
}

// Timestamp carries the exact instant. Seconds is a decimal string so that
// consumers with bounded numeric types do not lose precision.
type Timestamp struct {
	Seconds string `json:"seconds"`
	Nanos   int32  `json:"nanos"`
}

// IR converts the result to an IRObject for journaling and hashing.
func (r Result) IR() ir.IRObject {
	obj := ir.IRObject{
		"date_ymd": ir.IRString(r.DateYMD),
		"timestamp": ir.IRObject{
			"seconds": ir.IRString(r.Timestamp.Seconds),
			"nanos":   ir.IRInt(r.Timestamp.Nanos),
		},
	}
	if r.DateISO != "" {
		obj["date_iso"] = ir.IRString(r.DateISO)
	}
	return obj
}

// Render produces the UTC calendar date of i and, when withISO is set, the
// ISO-8601 timestamp truncated to whole seconds. Sub-second precision is
// kept only in Timestamp.Nanos.
func Render(i Instant, withISO bool) (Result, error) {
	days, secOfDay := new(big.Int).DivMod(i.secs(), secondsPerDay, new(big.Int))
	if !days.IsInt64() || days.Int64() > maxRenderDays || days.Int64() < -maxRenderDays {
		return Result{}, inputerr.Parse(inputerr.ErrCodeUnrenderable, "date",
			"date is outside the renderable range")
	}

	y, m, d := civilFromDays(days.Int64())
	res := Result{
		DateYMD: fmt.Sprintf("%s-%02d-%02d", formatYear(y), m, d),
		Timestamp: Timestamp{
			Seconds: i.secs().String(),
			Nanos:   i.Nanos,
		},
	}
	if withISO {
		sod := secOfDay.Int64()
		res.DateISO = fmt.Sprintf("%sT%02d:%02d:%02dZ", res.DateYMD, sod/3600, sod%3600/60, sod%60)
	}
	return res, nil
}

// FormatISO renders i as an ISO-8601 UTC string at millisecond resolution,
// e.g. "2025-08-17T00:00:00.250Z". Nanoseconds below one millisecond are
// dropped. ParseDate accepts every string FormatISO produces.
func FormatISO(i Instant) (string, error) {
	res, err := Render(i, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%03dZ", strings.TrimSuffix(res.DateISO, "Z"), i.Nanos/1_000_000), nil
}
