package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chapters/internal/platform/tui"
	"github.com/vovakirdan/tui-chapters/internal/registry"
	"github.com/vovakirdan/tui-chapters/internal/scene"
)

var flagScenes string

var playCmd = &cobra.Command{
	Use:   "play <chapter>",
	Short: "Open a chapter",
	Long: `Open one chapter by number or id.

Controls:
  Click marker / Enter - Scene action
  R                    - Replay chapter
  Esc/B                - Back
  Q/Ctrl+C             - Quit
  ?                    - More keys

Examples:
  chapters play 1
  chapters play ch-01-the-vocabulary-advantage
  chapters play 7 --no-chime
  chapters play 1 --scenes ./my-scenes.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagScenes, "scenes", "", "Path to a scene table YAML replacing the chapter's scenes")
}

// resolveChapter accepts a 1-based chapter number or a chapter id.
func resolveChapter(arg string) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		ch, ok := registry.Manifest().ChapterByIndex(n - 1)
		if !ok {
			return "", fmt.Errorf("%w: chapter %d", registry.ErrUnknownChapter, n)
		}
		arg = ch.ID
	}
	if !registry.Exists(arg) {
		return "", fmt.Errorf("%w: %q (run 'chapters list')", registry.ErrUnknownChapter, arg)
	}
	return arg, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	id, err := resolveChapter(args[0])
	if err != nil {
		return err
	}

	rt, err := setup(true)
	if err != nil {
		return err
	}
	defer rt.close()

	opts := rt.options()
	if flagScenes != "" {
		table, err := scene.Load(flagScenes)
		if err != nil {
			return err
		}
		opts.Scenes = table
	}
	return tui.RunStory(id, opts)
}
