package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command. Deleting removes only the
// given ids; other records sharing the same details are untouched.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete documents by id",
		Long: `Delete one or more document entries by id.

Unknown ids are skipped silently; deleting the same id twice is harmless.

Example:
  dtslog delete 1a2b3c_d4e5f6 9z8y7x_w6v5u4`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runDelete(opts *RootOptions, cmd *cobra.Command, ids []string) error {
	s, cleanup, err := openStore(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	removed, err := s.DeleteAll(ids)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to delete documents", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.SuccessText(
		fmt.Sprintf("Deleted %d record(s).", removed),
		map[string]int{"deleted": removed},
	)
}
