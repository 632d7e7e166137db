package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/healthrec/internal/form"
	"github.com/roach88/healthrec/internal/record"
	"github.com/roach88/healthrec/internal/store"
)

// CureResult is the JSON payload of a cure.
type CureResult struct {
	Record  record.HealthRecord `json:"record"`
	Notices []noticeView        `json:"notices"`
}

// NewCureCommand creates the cure command.
func NewCureCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cure <id>",
		Short: "Mark a record as Cured",
		Long: `Mark the record with the given id as Cured.

The record is looked up by id, shown and highlighted in the grid, then
marked the same way the window's button does. A record
that is already Cured is reported and left alone.

Example:
  healthrec cure 1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCure(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCure(opts *RootOptions, rawID string, cmd *cobra.Command) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return newFormatter(opts, cmd).Fail(ExitCommandError, ErrCodeArgument,
			fmt.Sprintf("invalid record id %q", rawID), nil)
	}

	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	rec, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return s.out.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("record %d not found", id), nil)
	}
	if err != nil {
		return s.storageError("failed to read record", err)
	}

	// Show the looked-up row directly so a legacy name that a name search
	// would not match can still be highlighted. The search field gets the
	// name for the refresh that follows a cure.
	s.form.Query = rec.Name
	s.form.Show([]record.HealthRecord{rec})
	if err := s.form.SelectID(id); err != nil {
		return WrapExitError(ExitCommandError, "select record", err)
	}
	if err := s.form.MarkSelectedCured(ctx); err != nil {
		return s.storageError("failed to mark record cured", err)
	}

	notices := s.form.Notices()
	if err := s.rejectNotices(notices); err != nil {
		return err
	}

	rec, err = s.store.Get(ctx, id)
	if err != nil {
		return s.storageError("failed to read record", err)
	}

	if opts.Format == "json" {
		return s.out.Success(CureResult{Record: rec, Notices: viewNotices(notices)})
	}
	for _, n := range notices {
		fmt.Fprintln(s.out.Writer, n.String())
	}
	return form.RenderRows(s.out.Writer, []record.HealthRecord{rec}, -1)
}
