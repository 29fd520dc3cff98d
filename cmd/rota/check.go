package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reviewrota/internal/domain/rotation"
)

var checkMode string

// checkCmd answers "is a rotation due yet?" for the scheduler: exit 0
// when due, 1 when not. The last-rotation date is taken from
// ROTA_LAST_ROTATION_DATE when set (the CI variable the workflow keeps),
// otherwise from the newest dated column of the first spreadsheet.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a rotation is due.",
	Run: func(cmd *cobra.Command, _ []string) {
		os.Exit(check(cmd.Context()))
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	checkCmd.Flags().StringVar(&checkMode, "mode", "devs", "roster to check: devs or teams")
	rootCmd.AddCommand(checkCmd)
}

func check(ctx context.Context) int {
	if ctx == nil {
		ctx = context.Background()
	}
	a, cleanup, err := newApp(ctx)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return 2
	}
	defer cleanup()

	mode := rotation.ModeDevelopers
	if checkMode == "teams" {
		mode = rotation.ModeTeams
	}

	now := time.Now()
	due, last, err := a.rotationDue(ctx, mode, now)
	if err != nil {
		a.log.Error("due check failed", zap.Error(err))
		return 2
	}

	if a.gha != nil {
		a.gha.SetOutput("rotation_needed", fmt.Sprintf("%t", due))
	}

	if due {
		if last.IsZero() {
			a.log.Info("no previous rotation found, rotation is due")
		} else {
			a.log.Info("rotation is due",
				zap.String("last_rotation", last.Format(rotation.DateLayout)))
		}
		return 0
	}

	a.log.Info("rotation not due yet",
		zap.String("last_rotation", last.Format(rotation.DateLayout)),
		zap.String("next_due", rotation.NextDue(last, a.cfg.MinDaysBetweenRuns).Format(rotation.DateLayout)),
	)
	return 1
}

func (a *app) rotationDue(ctx context.Context, mode rotation.Mode, now time.Time) (bool, time.Time, error) {
	if a.cfg.LastRotationDate != "" {
		last, err := rotation.ParseRotationHeader(a.cfg.LastRotationDate)
		if err != nil {
			// An unreadable date means no trustworthy previous run.
			a.log.Warn("invalid last rotation date, treating as first run",
				zap.String("value", a.cfg.LastRotationDate))
			return true, time.Time{}, nil
		}
		return rotation.Due(last, now, a.cfg.MinDaysBetweenRuns), last, nil
	}

	repo := a.repoFor(a.cfg.SpreadsheetIDs[0])
	svc := rotation.NewService(repo, a.bus, a.rnd)
	return svc.RotationDue(ctx, mode, now, a.cfg.MinDaysBetweenRuns)
}
