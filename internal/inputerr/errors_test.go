package inputerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorMessageIsVerbatim(t *testing.T) {
	err := Parse(ErrCodeInvalidNanos, "nanos", "nanos must be finite")

	assert.Equal(t, "nanos must be finite", err.Error())
	assert.Equal(t, ErrCodeInvalidNanos, err.Code)
	assert.Equal(t, "nanos", err.Field)
}

func TestMissingMessage(t *testing.T) {
	err := Missing(ErrCodeMissingDays, "days")

	assert.Equal(t, "days is required", err.Error())
	assert.Equal(t, ErrCodeMissingDays, err.Code)
}

func TestClassifiersSeeThroughWrapping(t *testing.T) {
	parse := fmt.Errorf("add days: %w", Parse(ErrCodeInvalidDays, "days", "days must be an integer"))
	missing := fmt.Errorf("add days: %w", Missing(ErrCodeMissingDate, "date"))
	other := errors.New("disk full")

	assert.True(t, IsParseError(parse))
	assert.False(t, IsValidationError(parse))
	assert.Equal(t, ErrCodeInvalidDays, CodeOf(parse))

	assert.True(t, IsValidationError(missing))
	assert.False(t, IsParseError(missing))
	assert.Equal(t, ErrCodeMissingDate, CodeOf(missing))

	assert.False(t, IsParseError(other))
	assert.False(t, IsValidationError(other))
	assert.Equal(t, Code(""), CodeOf(other))
}

func TestCodesAreDistinct(t *testing.T) {
	seen := map[Code]bool{}
	for _, c := range Codes() {
		assert.NotEmpty(t, c)
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 11)
}
