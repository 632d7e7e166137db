package record

import "fmt"

// TimestampLayout is the layout of HealthRecord.Timestamp.
// Matches rows written by earlier versions of the tool.
const TimestampLayout = "2006-01-02 15:04:05"

// Status is the lifecycle state of a record.
type Status string

const (
	StatusActive Status = "Active"
	StatusCured  Status = "Cured"
)

// Valid reports whether s is one of the two permitted values.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusCured
}

// ParseStatus converts a stored or displayed status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// HealthRecord is one patient health entry.
type HealthRecord struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Code      string `json:"code" yaml:"code"`
	Details   string `json:"details" yaml:"details"`
	Status    Status `json:"status" yaml:"status"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// Entry holds the operator-supplied fields of a new record.
// Status and Timestamp are never caller-controlled.
type Entry struct {
	Name    string
	Code    string
	Details string
}

// Clean returns e with every field passed through CleanText.
func (e Entry) Clean() Entry {
	return Entry{
		Name:    CleanText(e.Name),
		Code:    CleanText(e.Code),
		Details: CleanText(e.Details),
	}
}

// Complete reports whether the required fields are present.
func (e Entry) Complete() bool {
	return e.Name != "" && e.Code != ""
}
