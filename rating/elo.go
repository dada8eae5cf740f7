// Package rating implements the Elo update used both for seeding and for
// settling match results.
package rating

import "math"

// DefaultKFactor is used when a category does not set its own k-factor.
const DefaultKFactor = 32

// Expected returns the expected score of a player rated a against a player rated b.
func Expected(a, b int) float64 {
	return 1 / (1 + math.Pow(10, float64(b-a)/400))
}

// ApplyResult returns both new ratings after a decided match. Ratings are not
// clamped, so a very weak player may in principle drop below zero.
func ApplyResult(ratingA, ratingB int, winnerIsA bool, kFactor int) (int, int) {
	if kFactor <= 0 {
		kFactor = DefaultKFactor
	}
	expectedA := Expected(ratingA, ratingB)
	expectedB := 1 - expectedA

	actualA, actualB := 0.0, 1.0
	if winnerIsA {
		actualA, actualB = 1.0, 0.0
	}

	k := float64(kFactor)
	newA := int(math.Round(float64(ratingA) + k*(actualA-expectedA)))
	newB := int(math.Round(float64(ratingB) + k*(actualB-expectedB)))
	return newA, newB
}
