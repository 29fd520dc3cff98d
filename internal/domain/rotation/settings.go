package rotation

import (
	"fmt"

	"reviewrota/internal/domain"
)

// Settings is the resolved run configuration: the default reviewer count
// and the experienced-developer partition. Values come from the
// spreadsheet's Config tab, falling back to process configuration.
type Settings struct {
	DefaultReviewerNumber int
	ExperiencedDevelopers []string
}

func (s Settings) Validate() error {
	if s.DefaultReviewerNumber < 1 {
		return &domain.DomainError{
			Code: domain.ErrorCodeInvalidConfig,
			Message: fmt.Sprintf(
				"default reviewer number must be a positive integer, got %d",
				s.DefaultReviewerNumber,
			),
		}
	}
	return nil
}

// ReviewerNumberFor resolves the effective count for one entity:
// the per-entity override when set, the default otherwise.
func (s Settings) ReviewerNumberFor(override int) int {
	if override > 0 {
		return override
	}
	return s.DefaultReviewerNumber
}

func (s Settings) IsExperienced(name string) bool {
	for _, n := range s.ExperiencedDevelopers {
		if n == name {
			return true
		}
	}
	return false
}

// ExperiencedIn keeps only experienced developers that are present in the
// given pool, preserving pool order.
func (s Settings) ExperiencedIn(pool []string) []string {
	var out []string
	for _, name := range pool {
		if s.IsExperienced(name) {
			out = append(out, name)
		}
	}
	return out
}
