// Package cli wires vtokend's cobra commands, adapted from the teacher's
// internal/cli (root/version/server) narrowed to this program's single
// job: load a vtokend.toml, wire the service graph, and submit encoded
// instructions through the router.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "vtokend",
	Short:   "vtokend - token program core runtime",
	Long:    `vtokend routes encoded token-program instructions through the verification dispatcher, rate engine, receipts, and distribution components, backed by a pebble/bbolt/memory account store.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to rootCmd and runs it. Called once by
// cmd/vtokend's main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "path to vtokend.toml (env and defaults apply if omitted)")
}
