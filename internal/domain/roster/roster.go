package roster

import (
	"reviewrota/internal/domain"
)

// ValidateDevelopers rejects rosters with duplicate or empty names before
// any selection runs.
func ValidateDevelopers(devs []Developer) error {
	seen := make(map[string]struct{}, len(devs))
	for _, d := range devs {
		if d.Name == "" {
			return &domain.DomainError{
				Code:    domain.ErrorCodeSheetFormat,
				Message: "developer with empty name",
			}
		}
		if _, ok := seen[d.Name]; ok {
			return &domain.DomainError{
				Code:    domain.ErrorCodeDuplicateEntity,
				Entity:  d.Name,
				Message: "developer listed twice in roster",
			}
		}
		seen[d.Name] = struct{}{}
	}
	return nil
}

func ValidateTeams(teams []Team) error {
	seen := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		if t.Name == "" {
			return &domain.DomainError{
				Code:    domain.ErrorCodeSheetFormat,
				Message: "team with empty name",
			}
		}
		if _, ok := seen[t.Name]; ok {
			return &domain.DomainError{
				Code:    domain.ErrorCodeDuplicateEntity,
				Entity:  t.Name,
				Message: "team listed twice in roster",
			}
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}

// Names returns developer names in roster order.
func Names(devs []Developer) []string {
	out := make([]string, 0, len(devs))
	for _, d := range devs {
		out = append(out, d.Name)
	}
	return out
}
