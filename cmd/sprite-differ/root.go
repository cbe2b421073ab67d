package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aezell/sprite-differ/pkg/differ/config"
	"github.com/aezell/sprite-differ/pkg/differ/logging"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "sprite-differ",
		Short: "Snapshot and diff sprite checkpoint filesystems",
		Long: `Sprite-differ captures checkpoint manifests of a sprite's filesystem
and compares them to show exactly what changed between two checkpoints.

A snapshot walks the filesystem, hashing file contents into a manifest.
A diff compares two manifests and reports added, modified, and deleted
paths, byte deltas, and a similarity score. Content diffs show per-file
line changes for modified text files.

Examples:
  sprite-differ snapshot /var/sprites/web-1       # Capture a checkpoint
  sprite-differ diff ckpt-001 ckpt-002            # Diff two stored checkpoints
  sprite-differ diff a.json b.json -o json        # Diff manifest files as JSON
  sprite-differ file old.txt new.txt              # Line diff of two files
  sprite-differ watch /var/sprites/web-1          # Report changes as they happen
  sprite-differ history                           # List stored checkpoints`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/sprite-differ/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "pretty", "output format (pretty, plain, json, jsonl, yaml)")
	rootCmd.PersistentFlags().StringSliceP("exclude", "e", nil, "exclude patterns (can be specified multiple times)")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "override hash worker count (0=auto)")
	rootCmd.PersistentFlags().String("max-hash-size", "", "skip hashing files larger than this (e.g., 256M, 1G)")
	rootCmd.PersistentFlags().String("store", "", "checkpoint store directory")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Bind flags to viper
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("hash_workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("max_hash_size", rootCmd.PersistentFlags().Lookup("max-hash-size"))
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Set config name and type
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		// Add config paths in order of precedence
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "sprite-differ"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "sprite-differ"))
		}
	}

	// Set environment variable prefix and enable auto env binding
	viper.SetEnvPrefix("SPRITE_DIFFER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Set defaults from config package
	viper.SetDefault("exclude", config.DefaultExclusions)
	viper.SetDefault("hash_workers", config.DefaultHashWorkers)
	viper.SetDefault("max_hash_size", config.DefaultMaxHashSize)
	viper.SetDefault("store.path", config.DefaultStorePath())
	viper.SetDefault("store.retention_days", config.DefaultRetentionDays)
	viper.SetDefault("watch.debounce_ms", config.DefaultWatchDebounce)

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()

	initLogging()
}

// initLogging configures the logging system from flags and config.
func initLogging() {
	cfg := logging.DefaultConfig()

	if level := viper.GetString("logging.level"); level != "" {
		cfg.Level = level
	}
	if path := viper.GetString("logging.path"); path != "" {
		cfg.Path = path
	}
	if getVerbose() {
		cfg.Level = "debug"
		cfg.ConsoleLevel = "debug"
	}

	if err := logging.Init(cfg); err != nil {
		// Logging failure is not fatal; loggers stay silent.
		printVerbose("Failed to initialize logging: %v", err)
	}
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		_ = logging.Close()
	}()
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
