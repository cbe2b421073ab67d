package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aezell/sprite-differ/pkg/differ/compare"
	"github.com/aezell/sprite-differ/pkg/differ/config"
	"github.com/aezell/sprite-differ/pkg/differ/manifest"
	"github.com/aezell/sprite-differ/pkg/differ/output"
	"github.com/aezell/sprite-differ/pkg/differ/scanner"
	"github.com/aezell/sprite-differ/pkg/differ/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Report checkpoint changes as they happen",
	Long: `Capture an initial checkpoint of a directory tree, then watch it for
filesystem changes. After each burst of changes settles, the tree is
rescanned and the diff against the previous state is printed.

Press Ctrl-C to stop watching.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// runWatch watches a directory and prints a diff after each settled burst
// of changes.
func runWatch(_ *cobra.Command, args []string) error {
	absPath, err := resolveDir(args[0])
	if err != nil {
		return err
	}

	opts, err := buildScanOptions(absPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		printInfo("\nStopping watch...")
		cancel()
	}()

	printInfo("Capturing initial checkpoint of %s...", absPath)
	result, err := scanner.New(opts).Scan(ctx)
	if err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}
	previous := result.Manifest
	printInfo("Watching %s (%d files). Press Ctrl-C to stop.", absPath, previous.TotalFiles)

	debounceMS := viper.GetInt("watch.debounce_ms")
	if debounceMS <= 0 {
		debounceMS = config.DefaultWatchDebounce
	}

	watcher, err := watch.New(time.Duration(debounceMS) * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Watch(absPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	onChange := func(paths []string) {
		printVerbose("%d paths changed, rescanning...", len(paths))
		previous = reportChanges(ctx, opts, previous)
	}

	if err := watcher.Run(ctx, onChange); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

// reportChanges rescans the tree, prints the diff against prev, and
// returns the new manifest. On scan failure prev is returned unchanged so
// the next burst diffs against the last good state.
func reportChanges(ctx context.Context, opts scanner.Options, prev *manifest.Manifest) *manifest.Manifest {
	// Keep the previous checkpoint ID lineage out of the rescan.
	rescanOpts := opts
	rescanOpts.CheckpointID = ""

	result, err := scanner.New(rescanOpts).Scan(ctx)
	if err != nil {
		if ctx.Err() == nil {
			printError("rescan failed: %v", err)
		}
		return prev
	}

	diff := compare.Compare(prev, result.Manifest)
	if len(diff.Changes) == 0 {
		printVerbose("No manifest changes detected")
		return result.Manifest
	}

	printInfo("\n[%s]", time.Now().Format("15:04:05"))
	if err := printReport(&output.Report{Result: diff}); err != nil {
		printError("failed to print diff: %v", err)
	}

	return result.Manifest
}
