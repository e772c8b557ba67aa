package ir

// Version constants for the IR schema and engine.
const (
	// IRVersion is the IR schema version.
	IRVersion = "1"

	// EngineVersion is the dayshift engine version recorded with each journal entry.
	EngineVersion = "0.1.0"
)
