package request

import (
	"net/url"

	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
)

// AddDays holds the raw inputs of an add-days evaluation.
type AddDays struct {
	// Date is a string or an object with seconds and optional nanos.
	Date ir.IRValue

	// Days is the day delta as sent.
	Days ir.IRValue

	// WithISO requests the date_iso field in the result.
	WithISO bool
}

// IR returns the request in the form AddDaysFromJSON reads back.
func (r AddDays) IR() ir.IRObject {
	obj := ir.IRObject{"date": r.Date, "days": r.Days}
	if r.WithISO {
		obj["iso"] = ir.IRBool(true)
	}
	return obj
}

// AddDaysFromJSON extracts an add-days request from a JSON object body. The
// date is read from the nested date field, falling back to top-level
// seconds and nanos fields.
func AddDaysFromJSON(body []byte) (AddDays, error) {
	obj, err := DecodeObject(body)
	if err != nil {
		return AddDays{}, err
	}
	return AddDaysFromObject(obj)
}

// AddDaysFromObject is AddDaysFromJSON for an already decoded body.
func AddDaysFromObject(obj ir.IRObject) (AddDays, error) {
	var req AddDays

	switch {
	case supplied(obj, "date"):
		req.Date = obj["date"]
	case supplied(obj, "seconds"):
		date := ir.IRObject{"seconds": obj["seconds"]}
		if nanos, ok := obj.Lookup("nanos"); ok {
			date["nanos"] = nanos
		}
		req.Date = date
	default:
		return AddDays{}, inputerr.Missing(inputerr.ErrCodeMissingDate, "date")
	}

	if !supplied(obj, "days") {
		return AddDays{}, inputerr.Missing(inputerr.ErrCodeMissingDays, "days")
	}
	req.Days = obj["days"]

	iso, err := isoFlag(obj)
	if err != nil {
		return AddDays{}, err
	}
	req.WithISO = iso
	return req, nil
}

// AddDaysObject converts form or query values to the request object that
// AddDaysFromObject reads. Every value arrives as a string.
func AddDaysObject(values url.Values) ir.IRObject {
	obj := ir.IRObject{}
	for _, key := range []string{"date", "days", "seconds", "nanos", "iso"} {
		if values.Has(key) {
			obj[key] = ir.IRString(values.Get(key))
		}
	}
	return obj
}

// AddDaysFromValues extracts an add-days request from form or query values.
func AddDaysFromValues(values url.Values) (AddDays, error) {
	return AddDaysFromObject(AddDaysObject(values))
}

// isoFlag reads the optional iso field. Booleans are taken as is; the
// strings "true", "1", "false", "0" and "" cover form values.
func isoFlag(obj ir.IRObject) (bool, error) {
	if !obj.Present("iso") {
		return false, nil
	}
	switch v := obj["iso"].(type) {
	case ir.IRBool:
		return bool(v), nil
	case ir.IRString:
		switch v {
		case "true", "1":
			return true, nil
		case "false", "0", "":
			return false, nil
		}
		return false, inputerr.Parse(inputerr.ErrCodeInvalidBody, "iso",
			"iso must be true or false, got %q", string(v))
	default:
		return false, inputerr.Parse(inputerr.ErrCodeInvalidBody, "iso",
			"iso must be true or false, got %s", ir.TypeName(v))
	}
}

// supplied reports whether key holds a value other than null or "".
func supplied(obj ir.IRObject, key string) bool {
	if !obj.Present(key) {
		return false
	}
	s, ok := obj[key].(ir.IRString)
	return !ok || s != ""
}

// DecodeObject decodes a JSON request body, which must be an object.
func DecodeObject(body []byte) (ir.IRObject, error) {
	v, err := ir.UnmarshalIRValue(body)
	if err != nil {
		return nil, inputerr.Parse(inputerr.ErrCodeInvalidBody, "body", "request body is not valid JSON")
	}
	obj, ok := v.(ir.IRObject)
	if !ok {
		return nil, inputerr.Parse(inputerr.ErrCodeInvalidBody, "body",
			"request body must be a JSON object, got %s", ir.TypeName(v))
	}
	return obj, nil
}
