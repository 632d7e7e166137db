package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// FormatTrace renders a run as plain text: one block per step with the
// notices it raised and, for steps that refresh the grid, the grid itself.
// The output is deterministic for a given scenario.
func FormatTrace(name string, result *Result) []byte {
	var buf strings.Builder
	fmt.Fprintf(&buf, "scenario: %s\n", name)
	for _, event := range result.Trace {
		fmt.Fprintf(&buf, "step %d: %s\n", event.Step, event.Action)
		for _, n := range event.Notices {
			fmt.Fprintf(&buf, "  %s: %s\n", n.Kind, n.Message)
		}
		if event.Grid == "" {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(event.Grid, "\n"), "\n") {
			fmt.Fprintf(&buf, "    %s\n", line)
		}
	}
	return []byte(buf.String())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, FormatTrace(scenarioName, result))

	return nil
}
