package tokenlist

import (
	"strings"

	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
)

// Input is a sealed union of the accepted list encodings.
// Only Text and Items implement it.
type Input interface {
	listInput() // Sealed
}

// Text is a delimited string that must be tokenized.
type Text string

func (Text) listInput() {}

// Items is a list that is already discrete. Items are trimmed and empty
// entries dropped, but no quote or escape processing is applied.
type Items []string

func (Items) listInput() {}

// InputFrom decides which encoding v carries. Array elements are converted
// to their string form; null elements are dropped and nested arrays or
// objects are rejected.
func InputFrom(v ir.IRValue) (Input, error) {
	switch val := v.(type) {
	case ir.IRString:
		return Text(val), nil
	case ir.IRArray:
		items := make(Items, 0, len(val))
		for i, elem := range val {
			s, ok, scalar := itemString(elem)
			if !scalar {
				return nil, inputerr.Parse(inputerr.ErrCodeInvalidList, "input",
					"input[%d] must be a string, number, or boolean, got %s", i, ir.TypeName(elem))
			}
			if ok {
				items = append(items, s)
			}
		}
		return items, nil
	default:
		return nil, inputerr.Parse(inputerr.ErrCodeInvalidList, "input",
			"input must be a string or an array of strings, got %s", ir.TypeName(v))
	}
}

// itemString returns the string form of a scalar array element. ok is
// false for null; scalar is false for nested arrays and objects.
func itemString(v ir.IRValue) (s string, ok, scalar bool) {
	switch val := v.(type) {
	case ir.IRNull:
		return "", false, true
	case ir.IRString:
		return string(val), true, true
	case ir.IRInt, ir.IRNumber:
		b, err := ir.MarshalIRValue(val)
		return string(b), err == nil, err == nil
	case ir.IRBool:
		if val {
			return "true", true, true
		}
		return "false", true, true
	default:
		return "", false, false
	}
}

// keep trims items and drops the empty ones, preserving order and duplicates.
func keep(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
