package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/healthrec/internal/record"
)

// SearchResult is the JSON payload of a search.
type SearchResult struct {
	Query string                `json:"query"`
	Rows  []record.HealthRecord `json:"rows"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search records by patient name",
		Long: `List every record whose patient name contains the given text,
newest first. Matching ignores ASCII case.

Example:
  healthrec search Jane
  healthrec search "Jane D" --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(rootOpts, strings.Join(args, " "), cmd)
		},
	}

	return cmd
}

func runSearch(opts *RootOptions, query string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	s.form.Query = query
	if err := s.form.Search(cmd.Context()); err != nil {
		return s.storageError("search failed", err)
	}

	if err := s.rejectNotices(s.form.Notices()); err != nil {
		return err
	}

	if opts.Format == "json" {
		return s.out.Success(SearchResult{Query: query, Rows: s.form.Rows()})
	}
	return s.form.Render(s.out.Writer)
}
