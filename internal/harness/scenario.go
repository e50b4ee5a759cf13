package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a window function test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Specs lists CUE spec directories to compile and load.
	// Paths are relative to the scenario file location.
	Specs []string `yaml:"specs"`

	// CaseSensitive selects exact identifier matching.
	CaseSensitive bool `yaml:"case_sensitive,omitempty"`

	// Tables holds DDL run against a scratch SQLite database whose tables
	// join the catalog alongside spec relations.
	Tables []string `yaml:"tables,omitempty"`

	// Cases are checked in order.
	Cases []Case `yaml:"cases"`
}

// Case analyzes one query and checks the outcome.
type Case struct {
	// Query names a query declared in the specs.
	Query string `yaml:"query"`

	// Probe resolves across all window functions instead of the named one.
	Probe bool `yaml:"probe,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect is the expected outcome of a case. Either Fields/Kind/Function
// (success) or Error (failure) applies.
type Expect struct {
	// Function is the function that must accept the call.
	Function string `yaml:"function,omitempty"`

	// Fields lists the inferred row as "name:TYPE" in order, e.g.
	// "window_start:TIMESTAMP" or "id:BIGINT NOT NULL".
	Fields []string `yaml:"fields,omitempty"`

	// Kind is the expected struct kind of the inferred row.
	Kind string `yaml:"kind,omitempty"`

	// Error is the expected error code, e.g. "E201".
	Error string `yaml:"error,omitempty"`

	// Identifier is the unknown column or table named by the error.
	Identifier string `yaml:"identifier,omitempty"`

	// Message must appear in the error text.
	Message string `yaml:"message,omitempty"`
}

func (e Expect) wantsError() bool { return e.Error != "" }

// LoadScenario reads and parses a scenario YAML file, resolving spec paths
// relative to the file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving spec paths relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "case:" vs "cases:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve spec paths relative to base path BEFORE validation
	for i, specPath := range scenario.Specs {
		if !filepath.IsAbs(specPath) && basePath != "" {
			scenario.Specs[i] = filepath.Join(basePath, specPath)
		}
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

	if len(s.Specs) == 0 {
		return fmt.Errorf("specs list is required and must be non-empty")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for _, specPath := range s.Specs {
		if _, err := os.Stat(specPath); os.IsNotExist(err) {
			return fmt.Errorf("spec directory not found: %s", specPath)
		}
	}

	for i, c := range s.Cases {
		if c.Query == "" {
			return fmt.Errorf("cases[%d]: query is required", i)
		}
		if err := validateExpect(c.Expect); err != nil {
			return fmt.Errorf("cases[%d].expect: %w", i, err)
		}
	}

	return nil
}

func validateExpect(e Expect) error {
	success := len(e.Fields) > 0 || e.Kind != "" || e.Function != ""
	switch {
	case e.wantsError() && success:
		return fmt.Errorf("error cannot be combined with function, fields or kind")
	case !e.wantsError() && !success:
		return fmt.Errorf("one of function, fields, kind or error is required")
	case !e.wantsError() && (e.Identifier != "" || e.Message != ""):
		return fmt.Errorf("identifier and message require error")
	}
	return nil
}
