package store

import (
	"database/sql"
	"fmt"

	"github.com/roach88/dayshift/internal/ir"
)

// marshalObject converts an IRObject to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON for deterministic serialization.
func marshalObject(obj ir.IRObject) (string, error) {
	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// nullableObject marshals obj, or returns NULL for a nil object.
func nullableObject(obj ir.IRObject) (sql.NullString, error) {
	if obj == nil {
		return sql.NullString{}, nil
	}
	data, err := marshalObject(obj)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: data, Valid: true}, nil
}

// unmarshalObject parses canonical JSON TEXT to IRObject.
// Numbers are decoded exactly via ir.UnmarshalIRValue, never through float64.
func unmarshalObject(data string) (ir.IRObject, error) {
	if data == "" || data == "{}" {
		return ir.IRObject{}, nil
	}
	v, err := ir.UnmarshalIRValue([]byte(data))
	if err != nil {
		return nil, err
	}
	obj, ok := v.(ir.IRObject)
	if !ok {
		return nil, fmt.Errorf("expected JSON object, got %s", ir.TypeName(v))
	}
	return obj, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
