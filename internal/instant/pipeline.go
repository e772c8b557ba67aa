package instant

import "github.com/roach88/dayshift/internal/ir"

// Pipeline parses a date and a day delta, adds the days, and renders the
// result. The first failing step's error is returned; there is no partial
// result.
func Pipeline(date DateInput, days ir.IRValue, withISO bool) (Result, error) {
	start, err := ParseDate(date)
	if err != nil {
		return Result{}, err
	}
	delta, err := ParseDaysDelta(days)
	if err != nil {
		return Result{}, err
	}
	return Render(AddDays(start, delta), withISO)
}
