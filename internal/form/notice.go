package form

import "fmt"

// NoticeKind classifies a Notice.
type NoticeKind string

const (
	// NoticeSuccess confirms a completed store mutation.
	NoticeSuccess NoticeKind = "success"
	// NoticeInfo reports a redundant action that was skipped.
	NoticeInfo NoticeKind = "info"
	// NoticeInputError reports a required field that was missing.
	NoticeInputError NoticeKind = "input_error"
	// NoticeSelectionError reports an action that needed a highlighted row.
	NoticeSelectionError NoticeKind = "selection_error"
)

// Blocking reports whether the kind aborted the action.
func (k NoticeKind) Blocking() bool {
	return k == NoticeInputError || k == NoticeSelectionError
}

// Notice is a message raised to the operator.
type Notice struct {
	Kind    NoticeKind `json:"kind" yaml:"kind"`
	Title   string     `json:"title" yaml:"title"`
	Message string     `json:"message" yaml:"message"`
}

func (n Notice) String() string {
	return fmt.Sprintf("%s: %s", n.Title, n.Message)
}

// Operator-facing messages.
var (
	noticeAdded = Notice{
		Kind: NoticeSuccess, Title: "Success",
		Message: "Record added successfully as Active.",
	}
	noticeAddMissing = Notice{
		Kind: NoticeInputError, Title: "Input Error",
		Message: "Name and Code are required.",
	}
	noticeSearchMissing = Notice{
		Kind: NoticeInputError, Title: "Input Error",
		Message: "Enter a patient name to search.",
	}
	noticeNoSelection = Notice{
		Kind: NoticeSelectionError, Title: "Selection Error",
		Message: "Select a record to mark as cured.",
	}
	noticeAlreadyCured = Notice{
		Kind: NoticeInfo, Title: "Info",
		Message: "This record is already marked as Cured.",
	}
	noticeCured = Notice{
		Kind: NoticeSuccess, Title: "Success",
		Message: "Record updated to Cured.",
	}
)
