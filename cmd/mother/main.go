// Package main provides the entry point for the mother CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jade-codes/mother/cmd/mother/commands"
)

var (
	verbose bool
	quiet   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mother",
		Short: "mother builds a queryable semantic graph of a source repository",
		Long: `mother scans a source repository with real language servers and stores the
resulting files, symbols, and references as a graph keyed by commit, then lets
you query that graph from the CLI or expose it to an agent over MCP.

Commands:
  scan    Scan a repository at its current commit and populate the graph
  query   Run a read-only query against the graph
  mcp     Start an MCP server exposing query operations as tools
  diff    Compare the graph across two commits (not yet implemented)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output")
	rootCmd.PersistentFlags().String("config", "", "configuration file path (default: .mother.yaml in CWD or $HOME)")

	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(commands.NewDiffCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
