package rules

// Rand is the only source of randomness a simulation uses. *math/rand.Rand
// satisfies it, so seeding one gives a reproducible run.
type Rand interface {
	Float64() float64
}

// uniform returns a value in [a, b).
func uniform(r Rand, a, b float64) float64 {
	return a + r.Float64()*(b-a)
}
