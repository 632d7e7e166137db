package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/healthrec/internal/form"
	"github.com/roach88/healthrec/internal/record"
	"github.com/roach88/healthrec/internal/store"
)

// runCommand executes a subcommand built by newCmd against opts.
func runCommand(t *testing.T, newCmd func(*RootOptions) *cobra.Command, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newCmd(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func testOptions(t *testing.T, format string) *RootOptions {
	t.Helper()
	return &RootOptions{
		Format:   format,
		Database: filepath.Join(t.TempDir(), "health_records.db"),
	}
}

func addPatient(t *testing.T, opts *RootOptions, name, code, details string) {
	t.Helper()
	_, err := runCommand(t, NewAddCommand, opts, "--name", name, "--code", code, "--details", details)
	require.NoError(t, err)
}

func TestAddCommand(t *testing.T) {
	opts := testOptions(t, "text")

	out, err := runCommand(t, NewAddCommand, opts, "--name", "Jane Doe", "--code", "P001", "--details", "flu")
	require.NoError(t, err)
	assert.Equal(t, "Success: Record added successfully as Active.\n", out)
}

func TestAddCommandJSON(t *testing.T) {
	opts := testOptions(t, "json")

	out, err := runCommand(t, NewAddCommand, opts, "--name", "Jane Doe", "--code", "P001")
	require.NoError(t, err)

	var resp struct {
		Status  string    `json:"status"`
		Session string    `json:"session"`
		Data    AddResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Session)
	require.Len(t, resp.Data.Notices, 1)
	assert.Equal(t, "Record added successfully as Active.", resp.Data.Notices[0].Message)
}

func TestAddCommandMissingFields(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no name", []string{"--code", "P001"}},
		{"no code", []string{"--name", "Jane Doe"}},
		{"blank name", []string{"--name", "   ", "--code", "P001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t, "text")

			out, err := runCommand(t, NewAddCommand, opts, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "Error [E001]: Name and Code are required.")

			out, err = runCommand(t, NewSearchCommand, opts, "a")
			require.NoError(t, err)
			assert.Contains(t, out, "(no records)", "nothing was stored")
		})
	}
}

func TestAddCommandBadDatabase(t *testing.T) {
	opts := &RootOptions{Format: "text", Database: filepath.Join(t.TempDir(), "missing", "dir", "x.db")}

	_, err := runCommand(t, NewAddCommand, opts, "--name", "Jane Doe", "--code", "P001")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestSearchCommand(t *testing.T) {
	opts := testOptions(t, "text")
	addPatient(t, opts, "Jane Doe", "P001", "flu")
	addPatient(t, opts, "Jane Smith", "P002", "cold")
	addPatient(t, opts, "John Roe", "P003", "")

	out, err := runCommand(t, NewSearchCommand, opts, "jane")
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "ID")
	assert.Contains(t, string(lines[1]), "Jane Smith")
	assert.Contains(t, string(lines[2]), "Jane Doe")
	assert.NotContains(t, out, "John Roe")
}

func TestSearchCommandJSON(t *testing.T) {
	opts := testOptions(t, "json")
	addPatient(t, opts, "Jane Doe", "P001", "flu")

	out, err := runCommand(t, NewSearchCommand, opts, "Jane", "Doe")
	require.NoError(t, err)

	var resp struct {
		Data SearchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Jane Doe", resp.Data.Query)
	require.Len(t, resp.Data.Rows, 1)
	assert.Equal(t, record.StatusActive, resp.Data.Rows[0].Status)
	assert.Equal(t, "flu", resp.Data.Rows[0].Details)
}

func TestSearchCommandBlankQuery(t *testing.T) {
	opts := testOptions(t, "text")

	out, err := runCommand(t, NewSearchCommand, opts, "  ")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Enter a patient name to search.")
}

func TestSearchCommandNoArgs(t *testing.T) {
	_, err := runCommand(t, NewSearchCommand, testOptions(t, "text"))
	require.Error(t, err)
}

func TestCureCommand(t *testing.T) {
	opts := testOptions(t, "text")
	addPatient(t, opts, "Jane Doe", "P001", "flu")
	addPatient(t, opts, "Jane Smith", "P002", "cold")

	out, err := runCommand(t, NewCureCommand, opts, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Success: Record updated to Cured.")
	assert.Contains(t, out, "Cured")

	out, err = runCommand(t, NewSearchCommand, opts, "Jane")
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "Active", "Jane Smith untouched")
	assert.Contains(t, string(lines[2]), "Cured")
}

func TestCureCommandAlreadyCured(t *testing.T) {
	opts := testOptions(t, "json")
	addPatient(t, opts, "Jane Doe", "P001", "flu")

	_, err := runCommand(t, NewCureCommand, opts, "1")
	require.NoError(t, err)

	out, err := runCommand(t, NewCureCommand, opts, "1")
	require.NoError(t, err)

	var resp struct {
		Data CureResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, record.StatusCured, resp.Data.Record.Status)
	require.Len(t, resp.Data.Notices, 1)
	assert.Equal(t, "This record is already marked as Cured.", resp.Data.Notices[0].Message)
}

func TestCureCommandNotFound(t *testing.T) {
	opts := testOptions(t, "text")

	out, err := runCommand(t, NewCureCommand, opts, "42")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]: record 42 not found")
}

func TestCureCommandInvalidID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		t.Run(raw, func(t *testing.T) {
			_, err := runCommand(t, NewCureCommand, testOptions(t, "text"), "--", raw)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), "invalid record id")
		})
	}
}

// decodeError parses a JSON error envelope.
func decodeError(t *testing.T, out string) CLIError {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestCureCommandInvalidIDJSON(t *testing.T) {
	out, err := runCommand(t, NewCureCommand, testOptions(t, "json"), "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	e := decodeError(t, out)
	assert.Equal(t, ErrCodeArgument, e.Code)
	assert.Equal(t, `invalid record id "abc"`, e.Message)
}

func TestCureCommandNotFoundJSON(t *testing.T) {
	out, err := runCommand(t, NewCureCommand, testOptions(t, "json"), "9")
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, out).Code)
}

func TestStorageFailureJSON(t *testing.T) {
	opts := &RootOptions{Format: "json", Database: filepath.Join(t.TempDir(), "missing", "dir", "x.db")}

	for name, newCmd := range map[string]func(*RootOptions) *cobra.Command{
		"add":    NewAddCommand,
		"search": NewSearchCommand,
		"cure":   NewCureCommand,
	} {
		t.Run(name, func(t *testing.T) {
			args := map[string][]string{
				"add":    {"--name", "Jane Doe", "--code", "P001"},
				"search": {"Jane"},
				"cure":   {"1"},
			}[name]

			out, err := runCommand(t, newCmd, opts, args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			e := decodeError(t, out)
			assert.Equal(t, ErrCodeStorage, e.Code)
			assert.Equal(t, "failed to open database", e.Message)
			assert.NotEmpty(t, e.Details)
		})
	}
}

func TestSearchCommandBlankQueryJSON(t *testing.T) {
	out, err := runCommand(t, NewSearchCommand, testOptions(t, "json"), " ")
	require.Error(t, err)
	assert.Equal(t, ErrCodeInput, decodeError(t, out).Code)
}

func TestCureCommandLegacyName(t *testing.T) {
	opts := testOptions(t, "text")

	st, err := store.Open(opts.Database)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	// A row written by an older program: decomposed accent, trailing space.
	db, err := sql.Open("sqlite3", opts.Database)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO records (name, code, details, status, timestamp)
		VALUES (?, 'L1', NULL, 'Active', '2020-01-01 08:00:00')`, "Jose\u0301 ")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := runCommand(t, NewCureCommand, opts, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Success: Record updated to Cured.")

	st, err = store.Open(opts.Database)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, record.StatusCured, got.Status)
}

func TestNoticeCode(t *testing.T) {
	assert.Equal(t, ErrCodeInput, noticeCode(form.NoticeInputError))
	assert.Equal(t, ErrCodeSelection, noticeCode(form.NoticeSelectionError))
}

func TestRejectNotices(t *testing.T) {
	buf := &bytes.Buffer{}
	s := &session{out: &OutputFormatter{Format: "json", Writer: buf}}

	assert.NoError(t, s.rejectNotices([]form.Notice{{Kind: form.NoticeSuccess, Message: "ok"}}))
	assert.Empty(t, buf.String())

	err := s.rejectNotices([]form.Notice{
		{Kind: form.NoticeSuccess, Message: "Record updated to Cured."},
		{Kind: form.NoticeInputError, Message: "Enter a patient name to search."},
	})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	e := decodeError(t, buf.String())
	assert.Equal(t, ErrCodeInput, e.Code)
	assert.Equal(t, "Enter a patient name to search.", e.Message)
}
