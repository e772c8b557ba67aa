package harness

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/roach88/dayshift/internal/ir"
)

// AssertionError is returned when a case's outcome does not match its
// expectation.
type AssertionError struct {
	Case     string // Case name
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "case %q failed\n", e.Case)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// outcome is what a case produced: a result, or an error code and message.
type outcome struct {
	result  ir.IRObject
	code    string
	message string
}

func (o outcome) String() string {
	if o.code != "" {
		return fmt.Sprintf("error %s: %q", o.code, o.message)
	}
	return "result " + canonicalString(o.result)
}

// checkExpect compares got with the case's expectation. Results are
// compared by canonical bytes, so 1.50 and 1.5 differ.
func checkExpect(c Case, got outcome) error {
	want := c.Expect

	if want.Error != "" {
		if got.code == want.Error && (want.Message == "" || got.message == want.Message) {
			return nil
		}
		expected := "error " + want.Error
		if want.Message != "" {
			expected += fmt.Sprintf(": %q", want.Message)
		}
		return &AssertionError{Case: c.Name, Expected: expected, Actual: got.String()}
	}

	wantResult, _ := want.Result.Object()
	if got.code == "" && canonicalEqual(wantResult, got.result) {
		return nil
	}
	return &AssertionError{
		Case:     c.Name,
		Expected: "result " + canonicalString(wantResult),
		Actual:   got.String(),
	}
}

func canonicalEqual(a, b ir.IRObject) bool {
	ab, errA := ir.MarshalCanonical(a)
	bb, errB := ir.MarshalCanonical(b)
	return errA == nil && errB == nil && bytes.Equal(ab, bb)
}

func canonicalString(obj ir.IRObject) string {
	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		return fmt.Sprintf("<unencodable: %v>", err)
	}
	return string(data)
}
