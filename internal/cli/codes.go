package cli

// Error codes for failures that are not input errors. Rejected input is
// reported with the input error's own code (INVALID_DAYS, MISSING_INPUT, ...).
const (
	ErrCodeNotFound    = "E005" // Journal entry not found
	ErrCodeTestFailed  = "E_TEST_FAILED"
	ErrCodeDeterminism = "E_DETERMINISM"
)
