package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chapters/internal/platform/tui"
)

var funnelCmd = &cobra.Command{
	Use:   "funnel",
	Short: "View recorded milestones",
	Long:  `Shows how many readers started, progressed through and completed each chapter.`,
	Args:  cobra.NoArgs,
	RunE:  runFunnel,
}

func runFunnel(_ *cobra.Command, _ []string) error {
	rt, err := setup(false)
	if err != nil {
		return err
	}
	defer rt.close()

	if rt.store == nil {
		return errors.New("milestone database is unavailable")
	}
	opts := rt.options()
	return tui.RunFunnel(rt.store, opts.Width, opts.Height)
}
