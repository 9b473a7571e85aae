package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-chapters/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chapters SSH server",
	Long: `Start an SSH server that lets readers open chapters remotely.

Each SSH connection gets its own hub, stories and journey.
Milestones are stored per-server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses ssh.host_key from settings (generated if missing)

Examples:
  chapters serve                           # Listen on the configured address
  chapters serve --ssh :2222               # Listen on port 2222
  chapters serve --host-key ./my_host_key  # Use specific host key

Readers can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (empty = from settings)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (empty = from settings)")
}

func runServe(_ *cobra.Command, _ []string) error {
	rt, err := setup(false)
	if err != nil {
		return err
	}
	defer rt.close()

	if flagSSHAddr != "" {
		rt.settings.SSH.Addr = flagSSHAddr
	}
	if flagHostKey != "" {
		rt.settings.SSH.HostKey = flagHostKey
	}

	server, err := tui.NewSSHServer(rt.settings, rt.store, rt.logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting chapters SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
