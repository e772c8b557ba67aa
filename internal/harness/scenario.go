package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dayshift/internal/inputerr"
	"github.com/roach88/dayshift/internal/ir"
)

// Scenario is a named list of evaluation cases with expected outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunToken is stamped on every evaluation. If empty, defaults to
	// testutil.DefaultRunToken.
	RunToken string `yaml:"run_token,omitempty"`

	// Cases run in order, one evaluation each.
	Cases []Case `yaml:"cases"`
}

// Case is a single evaluation and its expected outcome.
type Case struct {
	// Name labels the case in failure messages and traces.
	Name string `yaml:"name"`

	// Op is the operation: add_days or split_list.
	Op ir.Operation `yaml:"op"`

	// Request is the request object. Exactly one of Request and Body is set.
	Request *Literal `yaml:"request,omitempty"`

	// Body is a raw text body for split_list.
	Body *string `yaml:"body,omitempty"`

	// Expect is the expected outcome.
	Expect Expect `yaml:"expect"`
}

// Expect holds either an exact result or an error code.
type Expect struct {
	// Result is compared exactly against the rendered result.
	Result *Literal `yaml:"result,omitempty"`

	// Error is the expected error code, e.g. INVALID_DAYS.
	Error string `yaml:"error,omitempty"`

	// Message, if set, must equal the error message.
	Message string `yaml:"message,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "expects:" for "expect:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i := range s.Cases {
		if err := validateCase(i, &s.Cases[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateCase(index int, c *Case) error {
	if c.Name == "" {
		return fmt.Errorf("cases[%d]: name is required", index)
	}
	if !c.Op.Valid() {
		return fmt.Errorf("cases[%d]: unknown op %q (want add_days or split_list)", index, c.Op)
	}

	switch {
	case c.Request != nil && c.Body != nil:
		return fmt.Errorf("cases[%d]: request and body are mutually exclusive", index)
	case c.Request == nil && c.Body == nil:
		return fmt.Errorf("cases[%d]: request or body is required", index)
	case c.Body != nil && c.Op != ir.OpSplitList:
		return fmt.Errorf("cases[%d]: body is only supported for split_list", index)
	}
	if _, ok := c.Request.Object(); c.Request != nil && !ok {
		return fmt.Errorf("cases[%d]: request must be a mapping", index)
	}

	e := c.Expect
	switch {
	case e.Result != nil && e.Error != "":
		return fmt.Errorf("cases[%d].expect: result and error are mutually exclusive", index)
	case e.Result == nil && e.Error == "":
		return fmt.Errorf("cases[%d].expect: result or error is required", index)
	case e.Message != "" && e.Error == "":
		return fmt.Errorf("cases[%d].expect: message requires error", index)
	}
	if _, ok := e.Result.Object(); e.Result != nil && !ok {
		return fmt.Errorf("cases[%d].expect: result must be a mapping", index)
	}
	if e.Error != "" && !knownCode(inputerr.Code(e.Error)) {
		return fmt.Errorf("cases[%d].expect: unknown error code %q", index, e.Error)
	}
	return nil
}

func knownCode(code inputerr.Code) bool {
	for _, c := range inputerr.Codes() {
		if c == code {
			return true
		}
	}
	return false
}
