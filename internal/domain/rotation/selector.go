package rotation

import (
	"fmt"

	"reviewrota/internal/domain"
	"reviewrota/internal/domain/roster"
)

// Selector picks reviewer sets for one entity at a time. All randomness
// goes through the injected RandomSource, so a seeded source makes whole
// runs reproducible.
type Selector struct {
	rnd      domain.RandomSource
	settings Settings
}

func NewSelector(rnd domain.RandomSource, settings Settings) *Selector {
	return &Selector{rnd: rnd, settings: settings}
}

// ReviewersForDeveloper picks reviewers for an individual developer:
//
//  1. preferred reviewers first, chosen uniformly when there are more
//     than needed;
//  2. remaining slots filled from the rest of the pool, least-loaded
//     first with random tie-breaking;
//  3. if no pick is experienced and an experienced candidate exists,
//     one non-preferred pick is swapped for a random experienced one.
//
// The count is clamped to the available pool, and the developer is never
// a candidate for themselves. Every final pick increments the tracker.
func (s *Selector) ReviewersForDeveloper(dev roster.Developer, all []string, tracker *LoadTracker) []string {
	pool := subtract(all, []string{dev.Name})

	k := s.settings.ReviewerNumberFor(dev.ReviewerNumber)
	if k > len(pool) {
		k = len(pool)
	}

	preferred := intersect(dev.PreferredReviewers, pool)

	var selected []string
	if len(preferred) >= k {
		selected = s.pickUniform(preferred, k)
	} else {
		selected = append(selected, preferred...)
		rest := subtract(pool, preferred)
		selected = append(selected, s.pickBalanced(tracker, rest, k-len(selected))...)
	}

	selected = s.ensureExperienced(selected, preferred, pool)

	for _, name := range selected {
		tracker.Increment(name)
	}
	return selected
}

// ensureExperienced enforces the at-least-one-experienced-reviewer rule by
// replacement, never by addition: a random non-preferred pick is swapped
// for a random experienced candidate. When every pick came from the
// preferred list, preference wins and the rule is skipped.
func (s *Selector) ensureExperienced(selected, preferred, pool []string) []string {
	for _, name := range selected {
		if s.settings.IsExperienced(name) {
			return selected
		}
	}

	candidates := s.settings.ExperiencedIn(subtract(pool, selected))
	if len(candidates) == 0 {
		return selected
	}

	var replaceable []int
	for i, name := range selected {
		if !containsName(preferred, name) {
			replaceable = append(replaceable, i)
		}
	}
	if len(replaceable) == 0 {
		return selected
	}

	s.rnd.Shuffle(len(replaceable), func(i, j int) {
		replaceable[i], replaceable[j] = replaceable[j], replaceable[i]
	})
	selected[replaceable[0]] = s.pickUniform(candidates, 1)[0]
	return selected
}

// ReviewersForTeam picks reviewers for a team depending on how its member
// count relates to the required count:
//
//   - no members: all picks come from experienced developers outside the
//     team, least-loaded first;
//   - fewer members than required: every member is picked, the rest come
//     from the outside experienced pool;
//   - enough members: picks come from the members, least-loaded first.
//
// A pool that cannot cover the required count is an error, never a
// silently short assignment.
func (s *Selector) ReviewersForTeam(team roster.Team, tracker *LoadTracker) ([]string, error) {
	k := s.settings.ReviewerNumberFor(team.ReviewerNumber)
	members := dedupe(team.Members)
	experienced := subtract(s.settings.ExperiencedDevelopers, members)

	var selected []string
	switch {
	case len(members) == 0:
		if len(experienced) < k {
			return nil, shortfallError(team.Name, k, len(experienced))
		}
		selected = s.pickBalanced(tracker, experienced, k)

	case len(members) < k:
		selected = append(selected, members...)
		need := k - len(members)
		if len(experienced) < need {
			return nil, shortfallError(team.Name, k, len(members)+len(experienced))
		}
		selected = append(selected, s.pickBalanced(tracker, experienced, need)...)

	default:
		selected = s.pickBalanced(tracker, members, k)
	}

	for _, name := range selected {
		tracker.Increment(name)
	}
	return selected, nil
}

// pickUniform chooses up to n items uniformly at random.
func (s *Selector) pickUniform(items []string, n int) []string {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	out := append([]string(nil), items...)
	s.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// pickBalanced chooses up to n items tier by tier: the least-loaded
// candidates first, shuffled within each tier so equally loaded
// candidates are picked uniformly.
func (s *Selector) pickBalanced(tracker *LoadTracker, items []string, n int) []string {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	remaining := append([]string(nil), items...)
	out := make([]string, 0, n)
	for len(out) < n {
		tier := tracker.LeastLoaded(remaining)
		s.rnd.Shuffle(len(tier), func(i, j int) { tier[i], tier[j] = tier[j], tier[i] })
		for _, name := range tier {
			if len(out) == n {
				break
			}
			out = append(out, name)
		}
		remaining = subtract(remaining, tier)
	}
	return out
}

func shortfallError(team string, required, available int) error {
	return &domain.DomainError{
		Code:   domain.ErrorCodeSelectionShortfall,
		Entity: team,
		Message: fmt.Sprintf(
			"need %d reviewers but only %d candidates available", required, available,
		),
	}
}

func containsName(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

// subtract returns a−b preserving a's order.
func subtract(a, b []string) []string {
	var out []string
	for _, n := range a {
		if !containsName(b, n) {
			out = append(out, n)
		}
	}
	return out
}

// intersect returns elements of a present in b, deduplicated, in a's order.
func intersect(a, b []string) []string {
	var out []string
	for _, n := range a {
		if containsName(b, n) && !containsName(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func dedupe(a []string) []string {
	var out []string
	for _, n := range a {
		if !containsName(out, n) {
			out = append(out, n)
		}
	}
	return out
}
