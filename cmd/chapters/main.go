// chapters is an interactive, chapter-by-chapter terminal experience for a
// 17-chapter business book.
//
// Usage:
//
//	chapters list              - List chapters and their status
//	chapters play <chapter>    - Open one chapter
//	chapters journey           - Walk the 17-chapter journey with its gates
//	chapters hub               - Pick chapters interactively
//	chapters serve             - Start SSH server for remote readers
//	chapters funnel            - Show recorded funnel milestones
//
// Global flags:
//
//	--config <path>     - Settings YAML (default: search ~/.chapters/configs, ./configs)
//	--fps <rate>        - Frame rate of the scene engine
//	--db <path>         - Milestone database path
//	--log-level <level> - debug, info, warn or error
//	--no-chime          - Disable the activation chime
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import chapters to register them
	_ "github.com/vovakirdan/tui-chapters/internal/chapters/ch01"
	_ "github.com/vovakirdan/tui-chapters/internal/chapters/scaffold"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagNoChime  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chapters",
	Short: "Chapters - read a business book as interactive terminal scenes",
	Long: `Chapters turns each chapter of the book into a short sequence of
animated scenes. Click the glowing marker (or press enter) to move on.

Available commands:
  list     - Show all chapters and whether they are ready
  play     - Open one chapter directly
  journey  - Walk the 17-chapter journey with its pacing gates
  hub      - Interactive chapter picker
  serve    - Start SSH server for remote readers
  funnel   - View recorded milestones

Examples:
  chapters list
  chapters play 1
  chapters play ch-01-the-vocabulary-advantage
  chapters hub
  chapters serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from settings)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to milestone database (empty = from settings)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (empty = from settings)")
	rootCmd.PersistentFlags().BoolVar(&flagNoChime, "no-chime", false, "Disable the activation chime")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(journeyCmd)
	rootCmd.AddCommand(hubCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(funnelCmd)
}
