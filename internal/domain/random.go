package domain

// RandomSource abstracts the randomness used by selection so runs are
// reproducible under a seeded source in tests. Production wires an
// unseeded math/rand behind it.
type RandomSource interface {
	Shuffle(n int, swap func(i, j int))
}
