package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chapters/internal/platform/tui"
)

var journeyCmd = &cobra.Command{
	Use:   "journey",
	Short: "Walk the 17-chapter journey",
	Long: `Walk the book from the intro through every chapter, the three pacing
gates, the decision lab and both offers.

Gates stay closed until the chapters before them are complete.`,
	Args: cobra.NoArgs,
	RunE: runJourney,
}

func runJourney(_ *cobra.Command, _ []string) error {
	rt, err := setup(false)
	if err != nil {
		return err
	}
	defer rt.close()

	return tui.RunJourney(rt.options())
}
