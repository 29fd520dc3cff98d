package main

import (
	"context"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"reviewrota/internal/app/config"
	"reviewrota/internal/domain"
	"reviewrota/internal/domain/rotation"
	"reviewrota/internal/infrastructure/async"
	"reviewrota/internal/infrastructure/logging"
	"reviewrota/internal/infrastructure/sheets"
)

type randSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (rs *randSource) Shuffle(n int, swap func(i, j int)) {
	rs.mu.Lock()
	rs.r.Shuffle(n, swap)
	rs.mu.Unlock()
}

// app holds everything a command needs: config, logger, sheets client,
// event bus and randomness. One app is built per invocation.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	client *sheets.Client
	bus    *async.AsyncEventBus
	rnd    domain.RandomSource
	gha    *githubactions.Action
}

func newApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	log, err := logging.NewLogger()
	if err != nil {
		return nil, nil, err
	}

	client, err := sheets.NewClient(ctx, cfg.CredentialsFile, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}

	bus := async.NewAsyncEventBus(ctx, 2, log)

	a := &app{
		cfg:    cfg,
		log:    log,
		client: client,
		bus:    bus,
		rnd:    &randSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		a.gha = githubactions.New()
	}

	cleanup := func() {
		bus.Close()
		_ = log.Sync()
	}
	return a, cleanup, nil
}

func (a *app) defaults() rotation.Settings {
	return rotation.Settings{
		DefaultReviewerNumber: a.cfg.DefaultReviewerNumber,
		ExperiencedDevelopers: a.cfg.ExperiencedDevelopers,
	}
}

func (a *app) repoFor(spreadsheetID string) *sheets.Repository {
	return sheets.NewRepository(a.client, spreadsheetID, a.defaults(), a.log)
}

// runRotation processes every configured spreadsheet and returns the exit
// code: 0 when all succeeded, 1 on partial failure, 2 when everything
// failed. A failed spreadsheet gets an exception column so the failure is
// visible where the results would have been.
func (a *app) runRotation(ctx context.Context, mode rotation.Mode, manual bool) int {
	var succeeded, failed int

	for _, id := range a.cfg.SpreadsheetIDs {
		repo := a.repoFor(id)
		svc := rotation.NewService(repo, a.bus, a.rnd)

		var (
			assignments []rotation.Assignment
			err         error
		)
		if mode == rotation.ModeTeams {
			assignments, err = svc.RotateTeams(ctx, manual)
		} else {
			assignments, err = svc.RotateDevelopers(ctx, manual)
		}

		if err != nil {
			failed++
			a.log.Error("rotation failed",
				zap.String("spreadsheet", id),
				zap.String("mode", string(mode)),
				zap.Error(err),
			)
			if recErr := repo.RecordFailure(ctx, mode, err); recErr != nil {
				a.log.Warn("could not record failure in sheet", zap.Error(recErr))
			}
			if a.gha != nil {
				a.gha.Errorf("%s rotation failed for spreadsheet %s: %v", mode, id, err)
			}
			continue
		}

		succeeded++
		a.log.Info("rotation completed",
			zap.String("spreadsheet", id),
			zap.String("mode", string(mode)),
			zap.Int("entities", len(assignments)),
			zap.Bool("manual", manual),
		)
		if a.gha != nil {
			a.gha.Noticef("Assigned reviewers to %d entities (%s) in spreadsheet %s",
				len(assignments), mode, id)
		}
	}

	switch {
	case failed == 0:
		return 0
	case succeeded > 0:
		return 1
	default:
		return 2
	}
}
