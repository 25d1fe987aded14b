package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/dtslog/internal/query"
	"github.com/roach88/dtslog/internal/record"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	View     string
	Search   string
	Date     string
	DateFrom string
	DateTo   string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents in a view",
		Long: `List document entries, optionally filtered.

--search matches case-insensitively across all display fields. --date is
an exact match; --from/--to bound an inclusive date range. All active
filters must match.

Example:
  dtslog list --view forward --search budget --from 2024-01-01 --to 2024-01-31`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.View, "view", "forward", "view to list (forward|received)")
	cmd.Flags().StringVar(&opts.Search, "search", "", "free-text filter")
	cmd.Flags().StringVar(&opts.Date, "date", "", "exact date filter (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.DateFrom, "from", "", "start of date range (inclusive)")
	cmd.Flags().StringVar(&opts.DateTo, "to", "", "end of date range (inclusive)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	view, err := parseView(opts.View)
	if err != nil {
		return err
	}

	s, cleanup, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	docs, err := s.Filtered(view, query.Filters{
		Text:     opts.Search,
		Date:     opts.Date,
		DateFrom: opts.DateFrom,
		DateTo:   opts.DateTo,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load documents", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if f.Format == "json" {
		return f.Success(docs)
	}

	if len(docs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
		return nil
	}
	return writeTable(cmd, docs)
}

func writeTable(cmd *cobra.Command, docs []record.DocumentRecord) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDTS NO\tFROM\tDETAILS\tRECEIVED BY\tTO\tDATE")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.DTSNo, d.FromOffice, oneLine(d.Details), d.ReceivedBy, d.ToOffice, d.Date)
	}
	return w.Flush()
}

// oneLine collapses embedded newlines for the terminal table; stored and
// exported details keep them verbatim.
func oneLine(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", " / "), "\n", " / ")
}
