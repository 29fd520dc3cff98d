package rotation_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"reviewrota/internal/domain"
	"reviewrota/internal/domain/roster"
	"reviewrota/internal/domain/rotation"
)

type eventBusFake struct {
	events []domain.Event
}

func (e *eventBusFake) Publish(_ context.Context, ev domain.Event) {
	e.events = append(e.events, ev)
}

type savedRotation struct {
	mode        rotation.Mode
	assignments []rotation.Assignment
	manual      bool
}

type repoFake struct {
	settings   rotation.Settings
	devs       []roster.Developer
	teams      []roster.Team
	history    map[rotation.Mode]map[string]int
	lastHeader map[rotation.Mode]string

	saved    []savedRotation
	failures []error
}

func newRepoFake() *repoFake {
	return &repoFake{
		settings:   rotation.Settings{DefaultReviewerNumber: 1},
		history:    map[rotation.Mode]map[string]int{},
		lastHeader: map[rotation.Mode]string{},
	}
}

func (r *repoFake) LoadSettings(context.Context) (rotation.Settings, error) {
	return r.settings, nil
}

func (r *repoFake) LoadDevelopers(context.Context) ([]roster.Developer, error) {
	return append([]roster.Developer{}, r.devs...), nil
}

func (r *repoFake) LoadTeams(context.Context) ([]roster.Team, error) {
	return append([]roster.Team{}, r.teams...), nil
}

func (r *repoFake) AssignmentHistory(_ context.Context, mode rotation.Mode) (map[string]int, error) {
	return r.history[mode], nil
}

func (r *repoFake) LastRotationHeader(_ context.Context, mode rotation.Mode) (string, error) {
	return r.lastHeader[mode], nil
}

func (r *repoFake) SaveAssignments(_ context.Context, mode rotation.Mode, assignments []rotation.Assignment, manual bool) error {
	r.saved = append(r.saved, savedRotation{mode: mode, assignments: assignments, manual: manual})
	return nil
}

func (r *repoFake) RecordFailure(_ context.Context, _ rotation.Mode, cause error) error {
	r.failures = append(r.failures, cause)
	return nil
}

func TestService_RotateDevelopers_AssignsEveryone(t *testing.T) {
	repo := newRepoFake()
	repo.settings = settings(2, "D")
	repo.devs = []roster.Developer{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"},
	}
	events := &eventBusFake{}
	svc := rotation.NewService(repo, events, newSeededRand(1))

	assignments, err := svc.RotateDevelopers(context.Background(), false)
	if err != nil {
		t.Fatalf("RotateDevelopers error: %v", err)
	}
	if len(assignments) != 4 {
		t.Fatalf("expected 4 assignments, got %d", len(assignments))
	}
	for _, a := range assignments {
		if len(a.Reviewers) != 2 {
			t.Fatalf("expected 2 reviewers for %s, got %v", a.EntityID, a.Reviewers)
		}
		if containsName(a.Reviewers, a.EntityID) {
			t.Fatalf("%s assigned to review themselves", a.EntityID)
		}
		if !sort.StringsAreSorted(a.Reviewers) {
			t.Fatalf("reviewers for %s not sorted: %v", a.EntityID, a.Reviewers)
		}
		// D is the only experienced developer, so everyone except D
		// (whose pool has no experienced candidate) must get them.
		if a.EntityID != "D" && !containsName(a.Reviewers, "D") {
			t.Fatalf("experienced reviewer D missing for %s: %v", a.EntityID, a.Reviewers)
		}
	}

	if len(repo.saved) != 1 || repo.saved[0].mode != rotation.ModeDevelopers || repo.saved[0].manual {
		t.Fatalf("expected one scheduled developer save, got %+v", repo.saved)
	}
	if len(events.events) != 1 || events.events[0].Type != domain.EventRotationCompleted {
		t.Fatalf("expected rotation.completed event, got %+v", events.events)
	}
}

func TestService_RotateDevelopers_DuplicateEntity(t *testing.T) {
	repo := newRepoFake()
	repo.devs = []roster.Developer{{Name: "A"}, {Name: "A"}}
	events := &eventBusFake{}
	svc := rotation.NewService(repo, events, newSeededRand(1))

	_, err := svc.RotateDevelopers(context.Background(), false)
	if err == nil {
		t.Fatal("expected error")
	}
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeDuplicateEntity {
		t.Fatalf("expected DUPLICATE_ENTITY, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Fatal("nothing must be persisted on a failed run")
	}
	if len(events.events) != 1 || events.events[0].Type != domain.EventRotationFailed {
		t.Fatalf("expected rotation.failed event, got %+v", events.events)
	}
}

func TestService_RotateDevelopers_InvalidDefault(t *testing.T) {
	repo := newRepoFake()
	repo.settings = settings(0)
	repo.devs = []roster.Developer{{Name: "A"}, {Name: "B"}}
	svc := rotation.NewService(repo, &eventBusFake{}, newSeededRand(1))

	_, err := svc.RotateDevelopers(context.Background(), false)
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeInvalidConfig {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestService_RotateTeams_AssignsEveryTeam(t *testing.T) {
	repo := newRepoFake()
	repo.settings = settings(2, "X", "Y", "Z")
	repo.teams = []roster.Team{
		{Name: "empty"},
		{Name: "small", Members: []string{"M1"}},
		{Name: "big", Members: []string{"M1", "M2", "M3"}},
	}
	repo.history[rotation.ModeTeams] = map[string]int{"X": 1}
	events := &eventBusFake{}
	svc := rotation.NewService(repo, events, newSeededRand(3))

	assignments, err := svc.RotateTeams(context.Background(), true)
	if err != nil {
		t.Fatalf("RotateTeams error: %v", err)
	}
	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assignments))
	}
	for _, a := range assignments {
		if len(a.Reviewers) != 2 {
			t.Fatalf("expected 2 reviewers for %s, got %v", a.EntityID, a.Reviewers)
		}
	}
	if !containsName(assignments[1].Reviewers, "M1") {
		t.Fatalf("team member M1 missing for small team: %v", assignments[1].Reviewers)
	}

	if len(repo.saved) != 1 || !repo.saved[0].manual {
		t.Fatalf("expected one manual team save, got %+v", repo.saved)
	}
}

func TestService_RotateTeams_RequiresExperiencedDevelopers(t *testing.T) {
	repo := newRepoFake()
	repo.settings = settings(2)
	repo.teams = []roster.Team{{Name: "core", Members: []string{"M1", "M2"}}}
	svc := rotation.NewService(repo, &eventBusFake{}, newSeededRand(1))

	_, err := svc.RotateTeams(context.Background(), false)
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeInvalidConfig {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestService_RotateTeams_ShortfallAbortsRun(t *testing.T) {
	repo := newRepoFake()
	repo.settings = settings(3, "X")
	repo.teams = []roster.Team{
		{Name: "ok", Members: []string{"M1", "M2", "M3"}},
		{Name: "starved"},
	}
	events := &eventBusFake{}
	svc := rotation.NewService(repo, events, newSeededRand(1))

	_, err := svc.RotateTeams(context.Background(), false)
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeSelectionShortfall {
		t.Fatalf("expected SELECTION_SHORTFALL, got %v", err)
	}
	if de.Entity != "starved" {
		t.Fatalf("error must name the starved team, got %q", de.Entity)
	}
	if len(repo.saved) != 0 {
		t.Fatal("a shortfall must abort before persisting anything")
	}
}

func TestService_RotationDue(t *testing.T) {
	repo := newRepoFake()
	svc := rotation.NewService(repo, &eventBusFake{}, newSeededRand(1))
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	due, last, err := svc.RotationDue(context.Background(), rotation.ModeDevelopers, now, 15)
	if err != nil || !due || !last.IsZero() {
		t.Fatalf("no header must mean due: due=%t last=%v err=%v", due, last, err)
	}

	repo.lastHeader[rotation.ModeDevelopers] = "20-08-2026"
	due, _, err = svc.RotationDue(context.Background(), rotation.ModeDevelopers, now, 15)
	if err != nil || due {
		t.Fatalf("recent rotation must not be due: due=%t err=%v", due, err)
	}

	repo.lastHeader[rotation.ModeDevelopers] = "01-08-2026 / Manual Run on: 20-08-2026"
	due, last, err = svc.RotationDue(context.Background(), rotation.ModeDevelopers, now, 15)
	if err != nil || !due {
		t.Fatalf("manual header keeps the scheduled date: due=%t err=%v", due, err)
	}
	if got := last.Format(rotation.DateLayout); got != "01-08-2026" {
		t.Fatalf("expected scheduled date 01-08-2026, got %s", got)
	}

	repo.lastHeader[rotation.ModeDevelopers] = "Exception 20-08-2026"
	due, _, err = svc.RotationDue(context.Background(), rotation.ModeDevelopers, now, 15)
	if err != nil || !due {
		t.Fatalf("unparseable header must mean due: due=%t err=%v", due, err)
	}
}
