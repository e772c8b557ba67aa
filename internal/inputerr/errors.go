// Package inputerr defines the two failure kinds shared by the timestamp
// engine and the list tokenizer.
//
// A ParseError means a value was present but malformed or of an unsupported
// shape. A ValidationError means a required value was missing before any
// parsing began. Both are local, never retried, and carry a caller-facing
// message that is relayed verbatim.
package inputerr

import (
	"errors"
	"fmt"
)

// Code identifies the error category.
type Code string

const (
	// ErrCodeInvalidDate indicates a string that is not an accepted ISO-8601 form.
	ErrCodeInvalidDate Code = "INVALID_DATE"

	// ErrCodeUnsupportedDate indicates a date input of an unsupported shape.
	ErrCodeUnsupportedDate Code = "UNSUPPORTED_DATE_INPUT"

	// ErrCodeInvalidSeconds indicates a seconds field that is not an exact integer.
	ErrCodeInvalidSeconds Code = "INVALID_SECONDS"

	// ErrCodeInvalidNanos indicates a nanos field that is not a finite number.
	ErrCodeInvalidNanos Code = "INVALID_NANOS"

	// ErrCodeInvalidDays indicates a day delta that is not an integer.
	ErrCodeInvalidDays Code = "INVALID_DAYS"

	// ErrCodeUnrenderable indicates an instant too far from the epoch to render.
	ErrCodeUnrenderable Code = "UNRENDERABLE_DATE"

	// ErrCodeInvalidList indicates list input of an unsupported shape.
	ErrCodeInvalidList Code = "INVALID_LIST_INPUT"

	// ErrCodeInvalidBody indicates a request body that could not be decoded.
	ErrCodeInvalidBody Code = "INVALID_BODY"

	// ErrCodeMissingDate indicates no date, seconds, or nanos was supplied.
	ErrCodeMissingDate Code = "MISSING_DATE"

	// ErrCodeMissingDays indicates no day delta was supplied.
	ErrCodeMissingDays Code = "MISSING_DAYS"

	// ErrCodeMissingInput indicates no list input was supplied.
	ErrCodeMissingInput Code = "MISSING_INPUT"
)

// ParseError reports malformed or unsupported input.
type ParseError struct {
	// Code identifies the error category.
	Code Code

	// Field names the offending input field, if any (e.g. "nanos").
	Field string

	// Message is the caller-facing description.
	Message string
}

// Error implements the error interface. Only the message is returned so
// callers can relay it verbatim.
func (e *ParseError) Error() string {
	return e.Message
}

// ValidationError reports a required field that was not supplied.
type ValidationError struct {
	Code    Code
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Parse creates a ParseError.
func Parse(code Code, field, format string, args ...any) *ParseError {
	return &ParseError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Missing creates a ValidationError for an absent required field.
func Missing(code Code, field string) *ValidationError {
	return &ValidationError{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// CodeOf extracts the error code from err. Returns "" for errors outside
// this taxonomy.
func CodeOf(err error) Code {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// Codes returns every code in the taxonomy.
func Codes() []Code {
	return []Code{
		ErrCodeInvalidDate,
		ErrCodeUnsupportedDate,
		ErrCodeInvalidSeconds,
		ErrCodeInvalidNanos,
		ErrCodeInvalidDays,
		ErrCodeUnrenderable,
		ErrCodeInvalidList,
		ErrCodeInvalidBody,
		ErrCodeMissingDate,
		ErrCodeMissingDays,
		ErrCodeMissingInput,
	}
}
