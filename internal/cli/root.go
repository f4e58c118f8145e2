// Package cli wires configuration, logging, sampling and the terminal UI
// behind the ptop command.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/ptop/internal/config"
)

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ptop",
		Short: "Interactive process and resource monitor",
		Long: `ptop shows live CPU, memory and process information in the terminal.

Processes can be filtered, sorted and terminated, and alert rules can watch
a process for CPU or memory use above a threshold, or for its exit.

Examples:
  ptop
  ptop --sort mem --filter postgres
  ptop --interval 500ms --signal term
  ptop --json --format yaml
  PTOP_INTERVAL=2 ptop --json-stream`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ptop/config.yaml)")
	config.RegisterFlags(cmd.Flags())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
