package rotation

import (
	"context"
	"time"

	"reviewrota/internal/domain"
	"reviewrota/internal/domain/roster"
)

type Service interface {
	// RotateDevelopers runs one full developer rotation: load, select for
	// every developer in roster order, persist. Entities earlier in the
	// roster influence the load seen by later ones.
	RotateDevelopers(ctx context.Context, manual bool) ([]Assignment, error)

	// RotateTeams runs one full team rotation. Any team whose candidate
	// pool cannot cover its reviewer count aborts the run before anything
	// is persisted.
	RotateTeams(ctx context.Context, manual bool) ([]Assignment, error)

	// RotationDue reports whether a new rotation is due, and the date of
	// the last one (zero when none was found).
	RotationDue(ctx context.Context, mode Mode, now time.Time, minDays int) (bool, time.Time, error)
}

type service struct {
	repo   Repository
	events domain.EventBus
	rnd    domain.RandomSource
}

func NewService(repo Repository, events domain.EventBus, rnd domain.RandomSource) Service {
	return &service{repo: repo, events: events, rnd: rnd}
}

func (s *service) RotateDevelopers(ctx context.Context, manual bool) ([]Assignment, error) {
	devs, err := s.repo.LoadDevelopers(ctx)
	if err != nil {
		return nil, s.failed(ctx, ModeDevelopers, err)
	}
	if err := roster.ValidateDevelopers(devs); err != nil {
		return nil, s.failed(ctx, ModeDevelopers, err)
	}

	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return nil, s.failed(ctx, ModeDevelopers, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, s.failed(ctx, ModeDevelopers, err)
	}

	history, err := s.repo.AssignmentHistory(ctx, ModeDevelopers)
	if err != nil {
		return nil, s.failed(ctx, ModeDevelopers, err)
	}

	names := roster.Names(devs)
	tracker := NewLoadTracker(names, history)
	selector := NewSelector(s.rnd, settings)

	assignments := make([]Assignment, 0, len(devs))
	for i := range devs {
		picks := selector.ReviewersForDeveloper(devs[i], names, tracker)
		devs[i].Reviewers = picks
		assignments = append(assignments, NewAssignment(devs[i].Name, picks))
	}

	if err := s.repo.SaveAssignments(ctx, ModeDevelopers, assignments, manual); err != nil {
		return nil, s.failed(ctx, ModeDevelopers, err)
	}

	s.completed(ctx, ModeDevelopers, len(assignments), manual)
	return assignments, nil
}

func (s *service) RotateTeams(ctx context.Context, manual bool) ([]Assignment, error) {
	teams, err := s.repo.LoadTeams(ctx)
	if err != nil {
		return nil, s.failed(ctx, ModeTeams, err)
	}
	if err := roster.ValidateTeams(teams); err != nil {
		return nil, s.failed(ctx, ModeTeams, err)
	}

	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return nil, s.failed(ctx, ModeTeams, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, s.failed(ctx, ModeTeams, err)
	}
	if len(settings.ExperiencedDevelopers) == 0 {
		return nil, s.failed(ctx, ModeTeams, &domain.DomainError{
			Code:    domain.ErrorCodeInvalidConfig,
			Message: "experienced developers must be configured for team rotation",
		})
	}

	history, err := s.repo.AssignmentHistory(ctx, ModeTeams)
	if err != nil {
		return nil, s.failed(ctx, ModeTeams, err)
	}

	tracker := NewLoadTracker(teamCandidates(teams, settings), history)
	selector := NewSelector(s.rnd, settings)

	assignments := make([]Assignment, 0, len(teams))
	for i := range teams {
		picks, err := selector.ReviewersForTeam(teams[i], tracker)
		if err != nil {
			return nil, s.failed(ctx, ModeTeams, err)
		}
		teams[i].Reviewers = picks
		assignments = append(assignments, NewAssignment(teams[i].Name, picks))
	}

	if err := s.repo.SaveAssignments(ctx, ModeTeams, assignments, manual); err != nil {
		return nil, s.failed(ctx, ModeTeams, err)
	}

	s.completed(ctx, ModeTeams, len(assignments), manual)
	return assignments, nil
}

func (s *service) RotationDue(ctx context.Context, mode Mode, now time.Time, minDays int) (bool, time.Time, error) {
	header, err := s.repo.LastRotationHeader(ctx, mode)
	if err != nil {
		return false, time.Time{}, err
	}
	if header == "" {
		return true, time.Time{}, nil
	}
	last, err := ParseRotationHeader(header)
	if err != nil {
		// Unparseable header means no trustworthy previous rotation.
		return true, time.Time{}, nil
	}
	return Due(last, now, minDays), last, nil
}

// teamCandidates is every name the team selector may pick: team members
// plus the experienced pool.
func teamCandidates(teams []roster.Team, settings Settings) []string {
	var out []string
	for _, t := range teams {
		for _, m := range t.Members {
			if !containsName(out, m) {
				out = append(out, m)
			}
		}
	}
	for _, n := range settings.ExperiencedDevelopers {
		if !containsName(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func (s *service) completed(ctx context.Context, mode Mode, entities int, manual bool) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, domain.Event{
		Type: domain.EventRotationCompleted,
		Payload: map[string]any{
			"mode":     string(mode),
			"entities": entities,
			"manual":   manual,
		},
	})
}

func (s *service) failed(ctx context.Context, mode Mode, err error) error {
	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type: domain.EventRotationFailed,
			Payload: map[string]any{
				"mode":  string(mode),
				"error": err.Error(),
			},
		})
	}
	return err
}
