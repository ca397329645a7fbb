package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/mem/trace"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "summary <recording.sqlite3>",
		Short:        "List the runs stored in a recording",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := datarecording.NewReader(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()

			summaries, err := trace.LoadSummaries(cmd.Context(), reader)
			if err != nil {
				return err
			}

			return writeSummaries(cmd.OutOrStdout(), summaries)
		},
	}
}

func writeSummaries(w io.Writer, summaries []trace.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "RUN\tFRAMES\tPAGE SIZE\tREFERENCES\tFAULTS\tEVICTIONS\tFAULT RATE")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			s.RunID, s.NumFrames, s.PageSize,
			s.NumReferences, s.Faults, s.Evictions, s.FaultRateString())
	}

	return tw.Flush()
}
