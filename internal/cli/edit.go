package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/dtslog/internal/record"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Kind       string
	DTSNo      string
	FromOffice string
	Details    string
	ReceivedBy string
	ToOffice   string
	Date       string
}

// NewEditCommand creates the edit command.
//
// Edit loads the current record, overlays only the flags the user set,
// and stores the result as a full replacement. Switching a record to
// received clears its DTS number and destination office.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing document",
		Long: `Edit an existing document entry by id.

Only the flags you pass change; everything else keeps its stored value.

Example:
  dtslog edit 1a2b3c_d4e5f6 --details "Revised memo" --date 2024-02-01`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "record kind (forward|received)")
	cmd.Flags().StringVar(&opts.DTSNo, "dts", "", "DTS tracking number")
	cmd.Flags().StringVar(&opts.FromOffice, "from", "", "originating office or person")
	cmd.Flags().StringVar(&opts.Details, "details", "", "document details")
	cmd.Flags().StringVar(&opts.ReceivedBy, "received-by", "", "recipient name")
	cmd.Flags().StringVar(&opts.ToOffice, "to", "", "destination office")
	cmd.Flags().StringVar(&opts.Date, "date", "", "date (YYYY-MM-DD)")

	return cmd
}

func runEdit(opts *EditOptions, cmd *cobra.Command, id string) error {
	s, cleanup, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	docs, err := s.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load documents", err)
	}

	var rec record.DocumentRecord
	found := false
	for _, d := range docs {
		if d.ID == id {
			rec, found = d, true
			break
		}
	}
	if !found {
		return NewExitError(ExitFailure, "no document with id "+id)
	}

	flags := cmd.Flags()
	if flags.Changed("kind") {
		view, err := parseView(opts.Kind)
		if err != nil {
			return err
		}
		rec.Kind = view
	}
	if flags.Changed("dts") {
		rec.DTSNo = opts.DTSNo
	}
	if flags.Changed("from") {
		rec.FromOffice = opts.FromOffice
	}
	if flags.Changed("details") {
		rec.Details = opts.Details
	}
	if flags.Changed("received-by") {
		rec.ReceivedBy = opts.ReceivedBy
	}
	if flags.Changed("to") {
		rec.ToOffice = opts.ToOffice
	}
	if flags.Changed("date") {
		rec.Date = opts.Date
	}

	// Received documents carry no DTS number or destination office.
	if rec.Kind == record.KindReceived {
		rec.DTSNo = ""
		rec.ToOffice = ""
	}

	if err := s.Update(rec); err != nil {
		return WrapExitError(ExitCommandError, "failed to save changes", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.SuccessText("Changes saved.", rec)
}
