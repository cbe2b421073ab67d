package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aezell/sprite-differ/pkg/differ/textdiff"
)

var fileCmd = &cobra.Command{
	Use:   "file <before> <after>",
	Short: "Line diff of two files",
	Long: `Compute a line-based diff between two files and print it in unified
format, or as JSON with -o json.`,
	Args: cobra.ExactArgs(2),
	RunE: runFileDiff,
}

func init() {
	rootCmd.AddCommand(fileCmd)
}

// runFileDiff diffs two files directly.
func runFileDiff(_ *cobra.Command, args []string) error {
	before, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	after, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	fd := textdiff.Diff(args[1], string(before), string(after))

	switch viper.GetString("output") {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(fd)
	default:
		if len(fd.Hunks) == 0 {
			printInfo("Files are identical.")
			return nil
		}
		fmt.Print(fd.Unified())
		printInfo("%s", fd.Stat())
	}
	return nil
}
