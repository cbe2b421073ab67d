package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aezell/sprite-differ/pkg/differ/config"
	"github.com/aezell/sprite-differ/pkg/differ/scanner"
	"github.com/aezell/sprite-differ/pkg/differ/store"
	"github.com/aezell/sprite-differ/pkg/differ/tuner"
	"github.com/aezell/sprite-differ/pkg/differ/types"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <path>",
	Short: "Capture a checkpoint manifest of a directory tree",
	Long: `Walk a directory tree and record every file and directory into a
checkpoint manifest, hashing file contents with SHA-256.

The manifest is saved to the checkpoint store by default. Use --out to
write it to a JSON file instead of (or in addition to) the store.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

var (
	snapshotID      string
	snapshotSprite  string
	snapshotOut     string
	snapshotNoStore bool
)

func init() {
	snapshotCmd.Flags().StringVar(&snapshotID, "id", "", "checkpoint identifier (default: generated UUID)")
	snapshotCmd.Flags().StringVar(&snapshotSprite, "sprite", "", "sprite name to record in the manifest")
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "", "write the manifest to this JSON file")
	snapshotCmd.Flags().BoolVar(&snapshotNoStore, "no-store", false, "skip saving the manifest to the checkpoint store")
	rootCmd.AddCommand(snapshotCmd)
}

// runSnapshot captures a checkpoint manifest of the given path.
func runSnapshot(_ *cobra.Command, args []string) error {
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
		printInfo("\nInterrupted, stopping scan...")
		cancel()
	}()

	var bar *pb.ProgressBar
	if !getQuiet() {
		bar = pb.New64(0)
		bar.SetWriter(os.Stderr)
		bar.Start()
		opts.OnProgress = func(p types.ScanProgress) {
			bar.SetTotal(p.FilesScanned)
			bar.SetCurrent(p.FilesHashed)
		}
	}

	result, err := scanner.New(opts).Scan(ctx)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			printInfo("Snapshot cancelled")
			return nil
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	m := result.Manifest

	if snapshotOut != "" {
		if err := m.Save(snapshotOut); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		printVerbose("Manifest written to %s", snapshotOut)
	}

	if !snapshotNoStore {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Put(m); err != nil {
			return fmt.Errorf("failed to store checkpoint: %w", err)
		}
	}

	printInfo("Checkpoint %s: %d files, %d dirs, %s in %s",
		m.CheckpointID, m.TotalFiles, m.TotalDirs,
		types.FormatSize(m.TotalSize), result.Elapsed.Round(time.Millisecond))

	for _, scanErr := range result.Errors {
		printVerbose("scan error at %s: %s", scanErr.Path, scanErr.Error)
	}
	if len(result.Errors) > 0 {
		printInfo("%d paths could not be fully read (run with -v for details)", len(result.Errors))
	}

	return nil
}

// buildScanOptions assembles scanner options from flags and config.
func buildScanOptions(absPath string) (scanner.Options, error) {
	maxHashStr := viper.GetString("max_hash_size")
	if maxHashStr == "" {
		maxHashStr = config.DefaultMaxHashSize
	}
	maxHashSize, err := types.ParseSize(maxHashStr)
	if err != nil {
		return scanner.Options{}, fmt.Errorf("invalid max-hash-size %q: %w", maxHashStr, err)
	}

	workers := viper.GetInt("hash_workers")
	resources, err := tuner.Detect()
	if err != nil {
		printVerbose("Failed to detect system resources, using defaults: %v", err)
		resources = tuner.SystemResources{
			CPUCores:     4,
			TotalRAM:     8 * types.GiB,
			AvailableRAM: 4 * types.GiB,
		}
	}

	var optConfig tuner.OptimalConfig
	if workers > 0 {
		optConfig = tuner.CalculateWithOverrides(resources, workers)
	} else {
		optConfig = tuner.Calculate(resources)
	}

	printVerbose("System: %d CPUs, %s RAM, %s available",
		resources.CPUCores,
		types.FormatSize(resources.TotalRAM),
		types.FormatSize(resources.AvailableRAM))
	printVerbose("Config: %d hash workers, queue size %d",
		optConfig.HashWorkers, optConfig.QueueSize)

	return scanner.Options{
		ScanOptions: types.ScanOptions{
			Root:         absPath,
			CheckpointID: snapshotID,
			Sprite:       snapshotSprite,
			Exclude:      viper.GetStringSlice("exclude"),
			HashWorkers:  optConfig.HashWorkers,
			MaxHashSize:  maxHashSize,
		},
	}, nil
}

// resolveDir expands and validates a directory path argument.
func resolveDir(path string) (string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path: %w", err)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("path does not exist: %s", abs)
		}
		return "", fmt.Errorf("cannot access path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", abs)
	}
	return abs, nil
}

// openStore opens the checkpoint store at the configured path.
func openStore() (*store.Store, error) {
	path := viper.GetString("store.path")
	if path == "" {
		path = config.DefaultStorePath()
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint store at %s: %w", path, err)
	}
	return s, nil
}
