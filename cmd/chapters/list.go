package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chapters/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all chapters",
	Long:  `Shows every manifest chapter grouped by part, with its system status.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	if err := registry.Validate(); err != nil {
		return err
	}

	status := make(map[string]registry.Status)
	maxIDLen := 2 // "ID" header
	for _, e := range registry.List() {
		status[e.ID] = e.Status
		maxIDLen = max(maxIDLen, len(e.ID))
	}

	for _, g := range registry.Manifest().Groups() {
		fmt.Println(g.Part.Label)
		for _, ch := range g.Chapters {
			fmt.Printf("  %2d  %-*s  %-10s  %s\n", ch.Index, maxIDLen, ch.ID, status[ch.ID], ch.Title)
		}
		fmt.Println()
	}

	fmt.Println("Run 'chapters play <number|id>' to open a chapter.")
	return nil
}
