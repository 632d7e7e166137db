package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted operator session.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are applied to the form in order.
	Steps []Step `yaml:"steps"`

	// Expect holds the checks run after the last step.
	Expect Expect `yaml:"expect,omitempty"`
}

// Step is one operator action. Exactly one field is set.
type Step struct {
	Add    *AddStep `yaml:"add,omitempty"`
	Search *string  `yaml:"search,omitempty"`
	Select *int     `yaml:"select,omitempty"`
	Cure   bool     `yaml:"cure,omitempty"`
}

// AddStep is the text typed into the three input fields before Add.
type AddStep struct {
	Name    string `yaml:"name"`
	Code    string `yaml:"code"`
	Details string `yaml:"details"`
}

// Expect describes the state after the run.
// A nil field is not checked; an empty Rows slice asserts an empty grid.
type Expect struct {
	Notices []ExpectNotice `yaml:"notices,omitempty"`
	Rows    []ExpectRow    `yaml:"rows,omitempty"`
	Records *int           `yaml:"records,omitempty"`
}

// ExpectNotice matches one raised notice. An empty Message matches any.
type ExpectNotice struct {
	Kind    string `yaml:"kind"`
	Message string `yaml:"message,omitempty"`
}

// ExpectRow matches one grid row. Zero-valued fields are not compared.
type ExpectRow struct {
	ID      int64  `yaml:"id,omitempty"`
	Name    string `yaml:"name,omitempty"`
	Code    string `yaml:"code,omitempty"`
	Details string `yaml:"details,omitempty"`
	Status  string `yaml:"status,omitempty"`
}

// actionCount returns how many actions the step names.
func (s Step) actionCount() int {
	n := 0
	if s.Add != nil {
		n++
	}
	if s.Search != nil {
		n++
	}
	if s.Select != nil {
		n++
	}
	if s.Cure {
		n++
	}
	return n
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails the schema.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "step:" vs "steps:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks what the schema can't express precisely.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if n := step.actionCount(); n != 1 {
			return fmt.Errorf("steps[%d]: exactly one action required, got %d", i, n)
		}
	}

	return nil
}
