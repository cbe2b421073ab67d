package main

import (
	"fmt"

	"github.com/aezell/sprite-differ/cmd/sprite-differ/tui"
	"github.com/aezell/sprite-differ/pkg/differ/output"
)

// runDiffViewer launches the interactive diff viewer.
func runDiffViewer(report *output.Report) error {
	if err := tui.Run(report); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
