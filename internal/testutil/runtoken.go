package testutil

// DefaultRunToken is used when a scenario does not name one.
const DefaultRunToken = "test-run-default"

// FixedRunGenerator returns the same run token every time, so the same
// scenario produces byte-identical evaluation IDs on every run.
//
// Unlike engine.FixedGenerator, which hands out tokens in sequence and
// panics when exhausted, this generator never runs out.
//
// Safe for concurrent use.
type FixedRunGenerator struct {
	token string
}

// NewFixedRunGenerator creates a generator for token, or DefaultRunToken
// if token is empty.
func NewFixedRunGenerator(token string) *FixedRunGenerator {
	if token == "" {
		token = DefaultRunToken
	}
	return &FixedRunGenerator{token: token}
}

// Generate returns the fixed run token.
func (g *FixedRunGenerator) Generate() string {
	return g.token
}
