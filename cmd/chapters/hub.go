package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chapters/internal/platform/tui"
)

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Start the interactive chapter picker",
	Long: `Pick chapters from a list grouped by part. The journey panel and the
funnel view are one key away.`,
	Args: cobra.NoArgs,
	RunE: runHub,
}

func runHub(_ *cobra.Command, _ []string) error {
	rt, err := setup(true)
	if err != nil {
		return err
	}
	defer rt.close()

	return tui.RunHub(rt.options())
}
