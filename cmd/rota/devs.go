package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"reviewrota/internal/domain/rotation"
)

var devsCmd = &cobra.Command{
	Use:   "devs",
	Short: "Rotate reviewers for individual developers.",
	Long: `Assigns each developer in the Developers tab a fresh reviewer set,
honoring preferred reviewers, the experienced-reviewer guarantee and load
balancing across the run.`,
	Run: func(cmd *cobra.Command, _ []string) {
		os.Exit(rotate(cmd.Context(), rotation.ModeDevelopers))
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(devsCmd)
}

func rotate(ctx context.Context, mode rotation.Mode) int {
	if ctx == nil {
		ctx = context.Background()
	}
	a, cleanup, err := newApp(ctx)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return 2
	}
	defer cleanup()

	return a.runRotation(ctx, mode, manualRun)
}
