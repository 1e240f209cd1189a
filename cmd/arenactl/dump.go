package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chainarena"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	var pos, length uint64
	cmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Hex-dump a byte range of a chain",
		Long: `dump reads length bytes starting at chain position pos and prints
them as hex, for looking at a block's raw contents without going through
a container's decoder.

Example:
  arenactl dump arena.dat --pos 64 --length 32`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], pos, length)
		},
	}
	cmd.Flags().Uint64Var(&pos, "pos", 0, "Chain position to start at")
	cmd.Flags().Uint64Var(&length, "length", 32, "Number of bytes to dump")
	return cmd
}

func runDump(path string, pos, length uint64) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	defer f.Close()

	m := chainarena.NewManager()
	chain, err := m.CreateFile(f, []byte(prefix))
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	defer m.Destroy(chain)

	b, err := m.ReadAt(chain, pos, length)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	printInfo("%s\n", hex.Dump(b))
	return nil
}
