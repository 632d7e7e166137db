package cli

import (
	"github.com/spf13/cobra"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Name    string
	Code    string
	Details string
}

// AddResult is the JSON payload of a successful add.
type AddResult struct {
	Notices []noticeView `json:"notices"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a patient record",
		Long: `Add a patient health record with status Active.

Name and code are required; details are optional.

Example:
  healthrec add --name "Jane Doe" --code P001 --details flu`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "patient name")
	cmd.Flags().StringVar(&opts.Code, "code", "", "patient code")
	cmd.Flags().StringVar(&opts.Details, "details", "", "free-text details")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	s.form.Name = opts.Name
	s.form.Code = opts.Code
	s.form.Details = opts.Details
	if err := s.form.Add(cmd.Context()); err != nil {
		return s.storageError("failed to add record", err)
	}

	notices := s.form.Notices()
	if err := s.rejectNotices(notices); err != nil {
		return err
	}

	if opts.Format == "json" {
		return s.out.Success(AddResult{Notices: viewNotices(notices)})
	}
	for _, n := range notices {
		if err := s.out.Success(n.String()); err != nil {
			return err
		}
	}
	return nil
}
