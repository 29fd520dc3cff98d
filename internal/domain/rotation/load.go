package rotation

// LoadTracker holds per-reviewer assignment counts for one run. It is
// seeded from prior-run history and mutated after every pick, so entities
// later in the roster see the load produced by earlier ones. It is never
// persisted; the next run rebuilds it from the durable store.
type LoadTracker struct {
	counts map[string]int
}

// NewLoadTracker seeds counts from history, defaulting unseen names to 0.
// History entries for names outside the roster are kept as-is: they can
// still be picked as experienced reviewers in team mode.
func NewLoadTracker(names []string, history map[string]int) *LoadTracker {
	counts := make(map[string]int, len(names)+len(history))
	for name, n := range history {
		counts[name] = n
	}
	for _, name := range names {
		if _, ok := counts[name]; !ok {
			counts[name] = 0
		}
	}
	return &LoadTracker{counts: counts}
}

func (t *LoadTracker) Count(name string) int {
	return t.counts[name]
}

func (t *LoadTracker) Increment(name string) {
	t.counts[name]++
}

// LeastLoaded returns the subset of candidates holding the minimum count.
// Ties are left unresolved; the selector breaks them randomly.
func (t *LoadTracker) LeastLoaded(candidates []string) []string {
	if len(candidates) == 0 {
		return nil
	}
	min := t.counts[candidates[0]]
	for _, c := range candidates[1:] {
		if n := t.counts[c]; n < min {
			min = n
		}
	}
	var out []string
	for _, c := range candidates {
		if t.counts[c] == min {
			out = append(out, c)
		}
	}
	return out
}
