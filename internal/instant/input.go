package instant

import (
	"strings"

	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
)

// DateInput is a sealed union of the accepted date encodings.
// Only ISODate, EncodedDate, and StructuredDate implement it.
type DateInput interface {
	dateInput() // Sealed
}

// ISODate is an ISO-8601 timestamp string, e.g. "2025-08-17T00:00:00Z".
type ISODate struct {
	Text string
}

func (ISODate) dateInput() {}

// EncodedDate is a string holding a JSON-encoded {seconds, nanos} object.
// If the text does not decode to an object with a seconds field it is
// parsed as an ISO string instead.
type EncodedDate struct {
	Text string
}

func (EncodedDate) dateInput() {}

// StructuredDate is a {seconds, nanos} pair. Seconds may be a string or a
// number; Nanos is nil when absent.
type StructuredDate struct {
	Seconds ir.IRValue
	Nanos   ir.IRValue
}

func (StructuredDate) dateInput() {}

// DateInputFrom decides which encoding v carries. This is the only place the
// shape of a date value is inspected.
func DateInputFrom(v ir.IRValue) (DateInput, error) {
	switch val := v.(type) {
	case ir.IRString:
		text := strings.TrimSpace(string(val))
		if strings.HasPrefix(text, "{") {
			return EncodedDate{Text: text}, nil
		}
		return ISODate{Text: text}, nil
	case ir.IRObject:
		if seconds, ok := val.Lookup("seconds"); ok {
			nanos, _ := val.Lookup("nanos")
			return StructuredDate{Seconds: seconds, Nanos: nanos}, nil
		}
	}
	return nil, inputerr.Parse(inputerr.ErrCodeUnsupportedDate, "date",
		"unsupported date input: expected an ISO-8601 string or an object with seconds, got %s", ir.TypeName(v))
}
