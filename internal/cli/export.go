package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/dtslog/internal/export"
	"github.com/roach88/dtslog/internal/query"
	"github.com/roach88/dtslog/internal/record"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Fmt      string
	Out      string
	View     string
	Search   string
	Date     string
	DateFrom string
	DateTo   string
}

// exportExtensions maps export formats to their conventional file
// extensions. The excel and word formats are HTML under the hood; the
// extensions are what spreadsheet and word applications open by default.
var exportExtensions = map[string]string{
	"csv":   "csv",
	"excel": "xls",
	"word":  "doc",
	"print": "html",
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered view to a file",
		Long: `Export the filtered view of a table.

Formats: csv (BOM-prefixed, spreadsheet-safe), excel (HTML .xls),
word (HTML .doc), print (A4 print/PDF layout with signature blocks).

The output path defaults to documents_<view>_<date>.<ext> in the current
directory. Exporting an empty result set is an error: adjust the filters
first.

Example:
  dtslog export --fmt csv --view forward --search budget`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fmt, "fmt", "csv", "export format (csv|excel|word|print)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "output path (default documents_<view>_<date>.<ext>)")
	cmd.Flags().StringVar(&opts.View, "view", "forward", "view to export (forward|received)")
	cmd.Flags().StringVar(&opts.Search, "search", "", "free-text filter")
	cmd.Flags().StringVar(&opts.Date, "date", "", "exact date filter (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.DateFrom, "from", "", "start of date range (inclusive)")
	cmd.Flags().StringVar(&opts.DateTo, "to", "", "end of date range (inclusive)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	ext, ok := exportExtensions[opts.Fmt]
	if !ok {
		return NewExitError(ExitCommandError, "invalid format "+opts.Fmt+": must be csv, excel, word, or print")
	}

	view, err := parseView(opts.View)
	if err != nil {
		return err
	}

	s, cleanup, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	filters := query.Filters{
		Text:     opts.Search,
		Date:     opts.Date,
		DateFrom: opts.DateFrom,
		DateTo:   opts.DateTo,
	}
	docs, err := s.Filtered(view, filters)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load documents", err)
	}
	if len(docs) == 0 {
		return NewExitError(ExitFailure, "no rows to export, adjust your filters first")
	}

	scope := "All"
	if filters.Active() {
		scope = "All (Filtered)"
	}
	content, err := renderExport(opts.Fmt, view, scope, docs)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to render export", err)
	}

	out := opts.Out
	if out == "" {
		out = export.Filename(view, ext, time.Now())
	}
	if err := os.WriteFile(out, []byte(content), 0644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write export file", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.SuccessText(
		fmt.Sprintf("Exported %d record(s) to %s", len(docs), out),
		map[string]any{"records": len(docs), "file": out},
	)
}

func renderExport(format string, view record.Kind, scope string, docs []record.DocumentRecord) (string, error) {
	switch format {
	case "csv":
		return export.CSV(docs)
	case "excel":
		return export.ExcelDocument(docs), nil
	case "word":
		return export.WordDocument(docs), nil
	case "print":
		return export.PrintDocument(export.Title(view, scope), docs), nil
	}
	return "", fmt.Errorf("unknown export format %q", format)
}
