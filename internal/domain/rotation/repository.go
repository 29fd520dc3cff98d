package rotation

import (
	"context"

	"reviewrota/internal/domain/roster"
)

// Mode distinguishes the two rosters a spreadsheet carries. Load counters
// are kept per mode: reviewing a developer and reviewing a team are
// different duties.
type Mode string

const (
	ModeDevelopers Mode = "developers"
	ModeTeams      Mode = "teams"
)

// Repository is the durable-store seam. The domain never talks to the
// spreadsheet directly; it gets materialized rosters and history in, and
// hands materialized assignments out.
type Repository interface {
	LoadSettings(ctx context.Context) (Settings, error)
	LoadDevelopers(ctx context.Context) ([]roster.Developer, error)
	LoadTeams(ctx context.Context) ([]roster.Team, error)

	// AssignmentHistory returns reviewer->count from the most recent
	// rotation column, used to seed the load tracker.
	AssignmentHistory(ctx context.Context, mode Mode) (map[string]int, error)

	// LastRotationHeader returns the newest rotation column header, or
	// "" when no rotation has been recorded yet.
	LastRotationHeader(ctx context.Context, mode Mode) (string, error)

	// SaveAssignments inserts a new dated column, or updates the current
	// one when manual is set.
	SaveAssignments(ctx context.Context, mode Mode, assignments []Assignment, manual bool) error

	// RecordFailure writes an exception column so a failed run is visible
	// in the sheet itself.
	RecordFailure(ctx context.Context, mode Mode, cause error) error
}
