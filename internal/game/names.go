package game

import "math/rand/v2"

// survivorNames is the pool a new session draws its player's name from.
var survivorNames = []string{
	"Jack", "Tom", "Ben", "Luke", "Sam",
	"Emma", "Olivia", "Isla", "Ava", "Sophia",
	"Rowan", "Avery", "Kai", "Riley", "Quinn",
	"Jordan", "Morgan", "Taylor", "Reese", "Casey",
	"Harry", "Daniel", "Grace", "Freya", "Lily",
	"Phoenix", "Sage", "River", "Emery", "Finley",
}

// RandomName draws a survivor name from the built-in pool.
func RandomName(rng *rand.Rand) string {
	return survivorNames[rng.IntN(len(survivorNames))]
}
