package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aezell/sprite-differ/pkg/differ/compare"
	"github.com/aezell/sprite-differ/pkg/differ/manifest"
	"github.com/aezell/sprite-differ/pkg/differ/output"
	"github.com/aezell/sprite-differ/pkg/differ/textdiff"
	"github.com/aezell/sprite-differ/pkg/differ/types"
)

var diffCmd = &cobra.Command{
	Use:   "diff <checkpoint-a> <checkpoint-b>",
	Short: "Compare two checkpoint manifests",
	Long: `Compare two checkpoints and report added, modified, and deleted paths
along with byte deltas and a similarity score.

Each argument is either a checkpoint ID in the store or a path to a
manifest JSON file. With --content, modified text files are read from
each manifest's base path and their line diffs are included.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

var (
	diffContent     bool
	diffRootA       string
	diffRootB       string
	diffInteractive bool
)

func init() {
	diffCmd.Flags().BoolVarP(&diffContent, "content", "c", false, "include line diffs of modified files")
	diffCmd.Flags().StringVar(&diffRootA, "root-a", "", "read before-side file contents from this directory (default: manifest base path)")
	diffCmd.Flags().StringVar(&diffRootB, "root-b", "", "read after-side file contents from this directory (default: manifest base path)")
	diffCmd.Flags().BoolVarP(&diffInteractive, "interactive", "i", false, "browse the diff in an interactive viewer")
	rootCmd.AddCommand(diffCmd)
}

// runDiff compares two checkpoints and prints the result.
func runDiff(_ *cobra.Command, args []string) error {
	manifestA, err := resolveManifest(args[0])
	if err != nil {
		return fmt.Errorf("failed to load checkpoint %q: %w", args[0], err)
	}
	manifestB, err := resolveManifest(args[1])
	if err != nil {
		return fmt.Errorf("failed to load checkpoint %q: %w", args[1], err)
	}

	result := compare.Compare(manifestA, manifestB)

	report := &output.Report{Result: result}
	if diffContent {
		report.FileDiffs = contentDiffs(result, manifestA, manifestB)
	}

	if diffInteractive {
		return runDiffViewer(report)
	}

	return printReport(report)
}

// resolveManifest loads a manifest from a file path if one exists there,
// otherwise from the checkpoint store by ID.
func resolveManifest(ref string) (*manifest.Manifest, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return manifest.Load(ref)
	}

	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return s.Get(ref)
}

// contentDiffs computes line diffs for every modified file whose content
// can be read on both sides. Unreadable and binary files are skipped.
func contentDiffs(result *compare.Result, a, b *manifest.Manifest) []*textdiff.FileDiff {
	rootA := diffRootA
	if rootA == "" {
		rootA = a.BasePath
	}
	rootB := diffRootB
	if rootB == "" {
		rootB = b.BasePath
	}

	var diffs []*textdiff.FileDiff
	for _, change := range result.Changes {
		if change.Status != compare.StatusModified {
			continue
		}

		before, err := readTextFile(filepath.Join(rootA, change.Path))
		if err != nil {
			printVerbose("skipping content diff for %s: %v", change.Path, err)
			continue
		}
		after, err := readTextFile(filepath.Join(rootB, change.Path))
		if err != nil {
			printVerbose("skipping content diff for %s: %v", change.Path, err)
			continue
		}

		diffs = append(diffs, textdiff.Diff(change.Path, before, after))
	}
	return diffs
}

// maxContentDiffSize bounds files read for content diffing. The diff
// engine's DP table makes very large inputs impractical.
const maxContentDiffSize = 8 * types.MiB

// readTextFile reads a file for content diffing, rejecting files that are
// too large or appear to be binary.
func readTextFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > maxContentDiffSize {
		return "", fmt.Errorf("file too large for content diff (%s)", types.FormatSize(info.Size()))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", fmt.Errorf("binary file")
	}
	return string(data), nil
}

// printReport formats and prints a report using the configured formatter.
func printReport(report *output.Report) error {
	outFormat := viper.GetString("output")
	if outFormat == "" {
		outFormat = "pretty"
	}

	formatter, err := output.Get(outFormat)
	if err != nil {
		return fmt.Errorf("unknown output format %q: available formats are %v", outFormat, output.Available())
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, report); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(buf.String())
	return nil
}
