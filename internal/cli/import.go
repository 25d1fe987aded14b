package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/dtslog/internal/csvio"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import documents from a CSV file",
		Long: `Import document entries from a CSV file.

The first row must be a header; column names are matched case-insensitively
against the known aliases (e.g. "Date Forwarded" maps to date, "Type" to
kind). Rows blank across every mapped column are skipped. Supplied ids are
kept unless they collide with an existing record.

On a read or parse failure nothing is written.

Example:
  dtslog import backup.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runImport(opts *RootOptions, cmd *cobra.Command, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read import file", err)
	}

	rows, err := csvio.Import(string(text))
	if err != nil {
		return WrapExitError(ExitFailure, "failed to import CSV, please check the file format", err)
	}

	s, cleanup, err := openStore(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	imported, err := s.Merge(rows)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to merge imported rows", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.SuccessText(
		fmt.Sprintf("Imported %d record(s).", imported),
		map[string]int{"imported": imported},
	)
}
