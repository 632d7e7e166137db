package cli

import (
	"log/slog"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/roach88/healthrec/internal/form"
	"github.com/roach88/healthrec/internal/store"
)

// session is an open store with a form on top, for one command run.
type session struct {
	store *store.Store
	form  *form.Form
	out   *OutputFormatter
}

// openSession opens the configured database and builds a form over it.
// The caller must call close.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	out := newFormatter(opts, cmd)

	out.VerboseLog("opening database %s", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}

	f := form.New(st)
	out.Session = f.Session()
	return &session{store: st, form: f, out: out}, nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// storageError reports a failed store call; the command exits with
// ExitCommandError.
func (s *session) storageError(message string, err error) error {
	return s.out.Fail(ExitCommandError, ErrCodeStorage, message, err)
}

func (s *session) close() {
	if err := s.store.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// rejectNotices writes the first blocking notice as an error and returns
// the matching ExitFailure. It returns nil when no notice blocks.
func (s *session) rejectNotices(notices []form.Notice) error {
	for _, n := range notices {
		if n.Kind.Blocking() {
			return s.out.Fail(ExitFailure, noticeCode(n.Kind), n.Message, nil)
		}
	}
	return nil
}

// noticeCode maps a blocking notice kind to its error code.
func noticeCode(kind form.NoticeKind) string {
	if kind == form.NoticeSelectionError {
		return ErrCodeSelection
	}
	return ErrCodeInput
}

// noticeView is the JSON shape of a notice.
type noticeView struct {
	Kind    form.NoticeKind `json:"kind"`
	Message string          `json:"message"`
}

func viewNotices(notices []form.Notice) []noticeView {
	return lo.Map(notices, func(n form.Notice, _ int) noticeView {
		return noticeView{Kind: n.Kind, Message: n.Message}
	})
}
