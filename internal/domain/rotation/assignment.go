package rotation

import "sort"

// Assignment is the result of one selection: the entity and its reviewer
// set. Created fresh each run, never mutated afterward; persistence is the
// sink's concern.
type Assignment struct {
	EntityID  string
	Reviewers []string
}

// NewAssignment records a reviewer set for an entity. Reviewer names are
// sorted so output is stable regardless of pick order.
func NewAssignment(entityID string, reviewers []string) Assignment {
	sorted := append([]string(nil), reviewers...)
	sort.Strings(sorted)
	return Assignment{EntityID: entityID, Reviewers: sorted}
}
