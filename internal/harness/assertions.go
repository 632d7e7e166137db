package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/healthrec/internal/form"
	"github.com/roach88/healthrec/internal/record"
)

// AssertionError is returned when an expectation does not hold.
type AssertionError struct {
	Type     string // notices, rows, records
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// checkExpectations runs every expect clause and records failures on result.
func checkExpectations(result *Result, expect Expect) {
	if expect.Notices != nil {
		if err := assertNotices(result.Notices, expect.Notices); err != nil {
			result.fail(err)
		}
	}
	if expect.Rows != nil {
		if err := assertRows(result.Rows, expect.Rows); err != nil {
			result.fail(err)
		}
	}
	if expect.Records != nil && *expect.Records != result.Records {
		result.fail(&AssertionError{
			Type:     "records",
			Expected: fmt.Sprintf("%d records in store", *expect.Records),
			Actual:   fmt.Sprintf("%d records in store", result.Records),
		})
	}
}

// assertNotices checks the raised notices match the expected list in order.
func assertNotices(actual []form.Notice, expected []ExpectNotice) error {
	if len(actual) != len(expected) {
		return &AssertionError{
			Type:     "notices",
			Expected: fmt.Sprintf("%d notices", len(expected)),
			Actual:   fmt.Sprintf("%d notices %s", len(actual), formatNotices(actual)),
		}
	}

	for i, want := range expected {
		got := actual[i]
		if string(got.Kind) != want.Kind || (want.Message != "" && got.Message != want.Message) {
			return &AssertionError{
				Type:     "notices",
				Expected: fmt.Sprintf("notice %d is %s %q", i, want.Kind, want.Message),
				Actual:   fmt.Sprintf("notice %d is %s %q", i, got.Kind, got.Message),
			}
		}
	}
	return nil
}

// assertRows checks the grid row for row. Only non-zero expected fields
// are compared.
func assertRows(actual []record.HealthRecord, expected []ExpectRow) error {
	if len(actual) != len(expected) {
		return &AssertionError{
			Type:     "rows",
			Expected: fmt.Sprintf("%d rows", len(expected)),
			Actual:   fmt.Sprintf("%d rows", len(actual)),
		}
	}

	for i, want := range expected {
		if diff := diffRow(actual[i], want); diff != "" {
			return &AssertionError{
				Type:     "rows",
				Expected: fmt.Sprintf("row %d %s", i, diff),
				Actual:   fmt.Sprintf("row %d %s", i, formatRow(actual[i])),
			}
		}
	}
	return nil
}

// diffRow returns a description of the first mismatched field, or "".
func diffRow(got record.HealthRecord, want ExpectRow) string {
	switch {
	case want.ID != 0 && got.ID != want.ID:
		return fmt.Sprintf("id=%d", want.ID)
	case want.Name != "" && got.Name != want.Name:
		return fmt.Sprintf("name=%q", want.Name)
	case want.Code != "" && got.Code != want.Code:
		return fmt.Sprintf("code=%q", want.Code)
	case want.Details != "" && got.Details != want.Details:
		return fmt.Sprintf("details=%q", want.Details)
	case want.Status != "" && string(got.Status) != want.Status:
		return fmt.Sprintf("status=%s", want.Status)
	}
	return ""
}

func formatRow(r record.HealthRecord) string {
	return fmt.Sprintf("id=%d name=%q code=%q details=%q status=%s",
		r.ID, r.Name, r.Code, r.Details, r.Status)
}

func formatNotices(notices []form.Notice) string {
	parts := make([]string, len(notices))
	for i, n := range notices {
		parts[i] = fmt.Sprintf("%s %q", n.Kind, n.Message)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
