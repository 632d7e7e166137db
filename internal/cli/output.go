package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Codes reported in CLIError.Code.
const (
	ErrCodeInput     = "E001" // name, code or search text missing
	ErrCodeNotFound  = "E002" // no record with that id
	ErrCodeStorage   = "E003" // database could not be opened, read or written
	ErrCodeArgument  = "E004" // malformed positional argument
	ErrCodeSelection = "E005" // nothing highlighted to cure
)

// CLIResponse is the envelope every --format json command writes.
type CLIResponse struct {
	Status  string    `json:"status"` // "ok" or "error"
	Session string    `json:"session,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
}

// CLIError describes a failure inside a CLIResponse.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OutputFormatter writes command results as text or as a JSON envelope.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool

	// ErrWriter receives VerboseLog output; Writer is used when nil.
	ErrWriter io.Writer

	// Session is stamped on JSON envelopes when set.
	Session string
}

func (f *OutputFormatter) isJSON() bool { return f.Format == "json" }

func (f *OutputFormatter) encode(resp CLIResponse) error {
	resp.Session = f.Session
	return json.NewEncoder(f.Writer).Encode(resp)
}

// Success writes data. Text output prints it with fmt.Println.
func (f *OutputFormatter) Success(data any) error {
	if f.isJSON() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error writes a coded error. details are printed in text mode only
// with --verbose.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.isJSON() {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}
	if _, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message); err != nil {
		return err
	}
	if f.Verbose && details != nil {
		_, err := fmt.Fprintf(f.Writer, "Details: %v\n", details)
		return err
	}
	return nil
}

// Fail writes a coded error and returns the ExitError the command should
// return. cause, when non-nil, is reported as the error details.
func (f *OutputFormatter) Fail(exitCode int, code, message string, cause error) error {
	var details any
	if cause != nil {
		details = cause.Error()
	}
	if err := f.Error(code, message, details); err != nil {
		return err
	}
	if cause == nil {
		return NewExitError(exitCode, message)
	}
	return WrapExitError(exitCode, message, cause)
}

// VerboseLog writes a diagnostic line under --verbose. It goes to
// ErrWriter so JSON on Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
