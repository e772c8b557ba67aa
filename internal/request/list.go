package request

import (
	"net/url"
	"strings"

	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
	"github.com/roach88/dayshift/internal/tokenlist"
)

// List holds the raw input of a split-list evaluation: a string to tokenize
// or an array of already discrete items.
type List struct {
	Input ir.IRValue
}

// IR returns the request in the form ListFromJSON reads back.
func (r List) IR() ir.IRObject {
	return ir.IRObject{"input": r.Input}
}

// ListFromJSON extracts the input field of a JSON object body.
func ListFromJSON(body []byte) (List, error) {
	obj, err := DecodeObject(body)
	if err != nil {
		return List{}, err
	}
	return ListFromObject(obj)
}

// ListFromObject is ListFromJSON for an already decoded body.
func ListFromObject(obj ir.IRObject) (List, error) {
	if !supplied(obj, "input") {
		return List{}, inputerr.Missing(inputerr.ErrCodeMissingInput, "input")
	}
	return List{Input: obj["input"]}, nil
}

// ListFromText extracts list text from a raw body. A leading input key
// (`input:` or `input=`, optionally quoted) is removed; without one the
// whole body is the list.
func ListFromText(body string) (List, error) {
	return ListFromObject(TextObject(body))
}

// TextObject converts a raw list body to the request object that
// ListFromObject reads. Blank text becomes "", which reads as missing.
func TextObject(body string) ir.IRObject {
	text, _ := tokenlist.ExtractKeyed(body)
	if strings.TrimSpace(text) == "" {
		text = ""
	}
	return ir.IRObject{"input": ir.IRString(text)}
}

// ListObject converts form or query values to the request object that
// ListFromObject reads. A single value is text to tokenize; a repeated
// field is taken as discrete items.
func ListObject(values url.Values) ir.IRObject {
	inputs := values["input"]
	switch len(inputs) {
	case 0:
		return ir.IRObject{}
	case 1:
		return ir.IRObject{"input": ir.IRString(inputs[0])}
	default:
		items := make(ir.IRArray, len(inputs))
		for i, s := range inputs {
			items[i] = ir.IRString(s)
		}
		return ir.IRObject{"input": items}
	}
}

// ListFromValues extracts the input field of form or query values.
func ListFromValues(values url.Values) (List, error) {
	return ListFromObject(ListObject(values))
}
