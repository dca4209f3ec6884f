package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phinze/pointerflow/internal/recorder"
)

var inspectEvents bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize a recorded event stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVarP(&inspectEvents, "events", "e", false, "also list every event")
}

func runInspect(cmd *cobra.Command, args []string) error {
	evs, err := recorder.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%d events in %s\n\n", len(evs), args[0])

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WINDOW\tPOINTER\tTYPE\tDOWN\tMOVE\tUP\tFIRST\tLAST\tMAX PRESSURE")
	for _, s := range recorder.Summarize(evs) {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%d\t(%.1f, %.1f)\t(%.1f, %.1f)\t%.3f\n",
			s.Window, s.ID, s.Type, s.Down, s.Move, s.Up,
			s.First.X, s.First.Y, s.Last.X, s.Last.Y, s.MaxPressure)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !inspectEvents {
		return nil
	}
	fmt.Fprintln(out)
	p := &printer{out: out}
	return p.Consume(evs)
}
