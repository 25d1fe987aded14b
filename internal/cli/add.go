package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/dtslog/internal/record"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	DTSNo      string
	FromOffice string
	Details    string
	ReceivedBy string
	ToOffice   string
	Date       string
}

// NewAddCommand creates the add command, which records a forwarded
// document.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a forwarded document",
		Long: `Record a forwarded document entry.

The date defaults to today. The id is assigned by the store.

Example:
  dtslog add --dts DTS-2024-001 --from "Records" --details "Budget memo" --to "Accounting"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd, record.DocumentRecord{
				Kind:       record.KindForward,
				DTSNo:      opts.DTSNo,
				FromOffice: opts.FromOffice,
				Details:    opts.Details,
				ReceivedBy: opts.ReceivedBy,
				ToOffice:   opts.ToOffice,
				Date:       opts.Date,
			})
		},
	}

	addRecordFlags(cmd, opts, true)
	return cmd
}

// NewReceiveCommand creates the receive command, which records a received
// document. Received documents carry no DTS number and no destination
// office.
func NewReceiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Record a received document",
		Long: `Record a received document entry.

Received documents have no DTS number and no destination office.

Example:
  dtslog receive --from "Provincial Office" --details "Endorsement letter" --received-by "M. Santos"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd, record.DocumentRecord{
				Kind:       record.KindReceived,
				FromOffice: opts.FromOffice,
				Details:    opts.Details,
				ReceivedBy: opts.ReceivedBy,
				Date:       opts.Date,
			})
		},
	}

	addRecordFlags(cmd, opts, false)
	return cmd
}

func addRecordFlags(cmd *cobra.Command, opts *AddOptions, forward bool) {
	if forward {
		cmd.Flags().StringVar(&opts.DTSNo, "dts", "", "DTS tracking number")
		cmd.Flags().StringVar(&opts.ToOffice, "to", "", "destination office")
	}
	cmd.Flags().StringVar(&opts.FromOffice, "from", "", "originating office or person")
	cmd.Flags().StringVar(&opts.Details, "details", "", "document details (may contain newlines)")
	cmd.Flags().StringVar(&opts.ReceivedBy, "received-by", "", "recipient name")
	cmd.Flags().StringVar(&opts.Date, "date", "", "date (YYYY-MM-DD, default today)")
}

func runAdd(opts *AddOptions, cmd *cobra.Command, rec record.DocumentRecord) error {
	if rec.Date == "" {
		rec.Date = time.Now().Format("2006-01-02")
	}

	s, cleanup, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	added, err := s.Add(rec)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to save document", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.SuccessText("Saved "+string(added.Kind)+" document "+added.ID, added)
}
