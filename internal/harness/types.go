package harness

import (
	"github.com/roach88/healthrec/internal/form"
	"github.com/roach88/healthrec/internal/record"
)

// TraceEvent records one applied step and what it produced.
type TraceEvent struct {
	Step    int           `json:"step"`
	Action  string        `json:"action"`
	Notices []form.Notice `json:"notices,omitempty"`

	// Grid is the rendered grid after the step. Empty for add steps,
	// which do not refresh the grid.
	Grid string `json:"grid,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses match.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Notices is every notice raised during the run, in order.
	Notices []form.Notice `json:"notices"`

	// Rows is the grid after the last step.
	Rows []record.HealthRecord `json:"rows"`

	// Records is the number of rows in the store after the last step.
	Records int `json:"records"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Notices: []form.Notice{},
		Rows:    []record.HealthRecord{},
	}
}

// fail records an assertion failure.
func (r *Result) fail(err error) {
	r.Pass = false
	r.Errors = append(r.Errors, err.Error())
}
