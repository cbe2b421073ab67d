package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aezell/sprite-differ/pkg/differ/config"
	"github.com/aezell/sprite-differ/pkg/differ/manifest"
	"github.com/aezell/sprite-differ/pkg/differ/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored checkpoints",
	Long: `List the checkpoints saved in the store, newest first.

Each snapshot saved to the store appears here and can be referenced by
its checkpoint ID in 'sprite-differ diff'.`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show details of a stored checkpoint",
	Long:  `Display detailed information about a stored checkpoint by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old checkpoints",
	Long:  `Remove checkpoints older than the retention period.`,
	RunE:  runHistoryClean,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of checkpoints to show")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyCleanCmd)
	rootCmd.AddCommand(historyCmd)
}

// runHistory lists stored checkpoints.
func runHistory(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	infos, err := s.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list checkpoints: %w", err)
	}

	if len(infos) == 0 {
		printInfo("No checkpoints found.")
		printInfo("Run 'sprite-differ snapshot <path>' to capture one.")
		return nil
	}

	fmt.Printf("\n%-36s  %-16s  %-20s  %-8s  %-10s\n", "ID", "SPRITE", "CREATED", "FILES", "SIZE")
	fmt.Println(strings.Repeat("-", 100))

	for _, info := range infos {
		sprite := info.Sprite
		if sprite == "" {
			sprite = "-"
		}
		fmt.Printf("%-36s  %-16s  %-20s  %-8d  %-10s\n",
			truncateString(info.CheckpointID, 36),
			truncateString(sprite, 16),
			info.CreatedAt.Format("2006-01-02 15:04:05"),
			info.TotalFiles,
			types.FormatSize(info.TotalSize),
		)
	}

	fmt.Println(strings.Repeat("-", 100))
	fmt.Printf("\nShowing %d checkpoints. Use --limit to see more.\n", len(infos))
	fmt.Println("Use 'sprite-differ diff <id-a> <id-b>' to compare two checkpoints.")

	return nil
}

// runHistoryShow displays details of a stored checkpoint.
func runHistoryShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	m, err := s.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to get checkpoint: %w", err)
	}

	fmt.Println("\nCheckpoint Details")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("ID:         %s\n", m.CheckpointID)
	if m.Sprite != "" {
		fmt.Printf("Sprite:     %s\n", m.Sprite)
	}
	fmt.Printf("Created:    %s\n", m.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Base path:  %s\n", m.BasePath)
	fmt.Printf("Files:      %d\n", m.TotalFiles)
	fmt.Printf("Dirs:       %d\n", m.TotalDirs)
	fmt.Printf("Total size: %s\n", types.FormatSize(m.TotalSize))

	if len(m.Files) > 0 {
		fmt.Println("\nLargest files:")
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("%-12s  %s\n", "SIZE", "PATH")
		fmt.Println(strings.Repeat("-", 60))

		for _, entry := range largestFiles(m.Files, 20) {
			fmt.Printf("%-12s  %s\n", types.FormatSize(entry.Size), entry.Path)
		}
	}

	return nil
}

// runHistoryClean removes checkpoints past the retention period.
func runHistoryClean(cmd *cobra.Command, args []string) error {
	retentionDays := viper.GetInt("store.retention_days")
	if retentionDays <= 0 {
		retentionDays = config.DefaultRetentionDays
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	printInfo("Removing checkpoints older than %d days...", retentionDays)

	removed, err := s.Cleanup(retentionDays)
	if err != nil {
		return fmt.Errorf("failed to clean checkpoints: %w", err)
	}

	printInfo("Removed %d checkpoints.", removed)
	return nil
}

// largestFiles returns up to limit file entries, largest first.
func largestFiles(entries []manifest.Entry, limit int) []manifest.Entry {
	files := make([]manifest.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsFile() {
			files = append(files, entry)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].Size != files[j].Size {
			return files[i].Size > files[j].Size
		}
		return files[i].Path < files[j].Path
	})
	if len(files) > limit {
		files = files[:limit]
	}
	return files
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
