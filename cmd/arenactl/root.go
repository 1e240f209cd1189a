// Command arenactl is an operator tool for chain files: it lives outside
// the core allocator (which exposes no CLI of its own, per its external
// interfaces contract) the same way hivectl sits outside hivekit's core
// package as a consumer of its public API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	jsonOut bool
	prefix  string
)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "Create and inspect chainarena chain files",
	Long: `arenactl creates, inspects and dumps the on-disk chains produced by
the chainarena allocator: a chain file is nothing more than the flat bytes
of its prefix, allocator header and block sequence, so arenactl reads and
writes them directly through the same Manager the library uses.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "Chain prefix (defaults to empty)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}
