package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/healthrec/internal/form"
	"github.com/roach88/healthrec/internal/store"
	"github.com/roach88/healthrec/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs scenarios with a deterministic clock and session token.
type Harness struct {
	store  *store.Store
	form   *form.Form
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// A non-nil error means the run could not complete (storage failure or an
// invalid step); failed expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}

	h, err := newHarness(scenario)
	if err != nil {
		return nil, err
	}
	defer h.store.Close()

	result := NewResult()
	for i, step := range scenario.Steps {
		event, err := h.apply(ctx, i, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, describeStep(step), err)
		}
		result.Trace = append(result.Trace, event)
		result.Notices = append(result.Notices, event.Notices...)
	}

	result.Rows = h.form.Rows()

	all, err := h.store.SearchByName(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	result.Records = len(all)

	checkExpectations(result, scenario.Expect)

	h.logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"steps", len(result.Trace))

	return result, nil
}

func newHarness(scenario *Scenario) (*Harness, error) {
	clock := testutil.NewDeterministicClock()

	st, err := store.Open(":memory:", store.WithClock(clock.Now))
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := form.New(st,
		form.WithSessionGenerator(testutil.NewFixedSessionGenerator("scenario-"+scenario.Name)),
		form.WithLogger(logger),
	)

	return &Harness{
		store:  st,
		form:   f,
		logger: logger,
	}, nil
}

// apply performs one step the way an operator would: fill the fields,
// then press the button.
func (h *Harness) apply(ctx context.Context, index int, step Step) (TraceEvent, error) {
	event := TraceEvent{Step: index, Action: describeStep(step)}

	var err error
	refresh := true
	switch {
	case step.Add != nil:
		h.form.Name = step.Add.Name
		h.form.Code = step.Add.Code
		h.form.Details = step.Add.Details
		err = h.form.Add(ctx)
		refresh = false
	case step.Search != nil:
		h.form.Query = *step.Search
		err = h.form.Search(ctx)
	case step.Select != nil:
		err = h.form.Select(*step.Select)
	case step.Cure:
		err = h.form.MarkSelectedCured(ctx)
	default:
		err = fmt.Errorf("step names no action")
	}
	if err != nil {
		return event, err
	}

	event.Notices = h.form.Notices()
	if refresh {
		var grid strings.Builder
		if err := h.form.Render(&grid); err != nil {
			return event, fmt.Errorf("render grid: %w", err)
		}
		event.Grid = grid.String()
	}
	return event, nil
}

// describeStep renders a step as a single trace line.
func describeStep(step Step) string {
	switch {
	case step.Add != nil:
		return fmt.Sprintf("add name=%q code=%q details=%q",
			step.Add.Name, step.Add.Code, step.Add.Details)
	case step.Search != nil:
		return fmt.Sprintf("search %q", *step.Search)
	case step.Select != nil:
		return fmt.Sprintf("select %d", *step.Select)
	case step.Cure:
		return "cure"
	}
	return "empty"
}
