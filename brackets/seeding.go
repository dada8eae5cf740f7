package brackets

import (
	"cmp"
	"slices"

	"github.com/Dosada05/tabletennis/models"
)

// SeedByRating returns a copy of players ordered by rating, highest first.
// Equal ratings keep their input order, so callers pass players in
// registration order to make earlier entries the better seed.
func SeedByRating(players []*models.Player) []*models.Player {
	seeded := make([]*models.Player, len(players))
	copy(seeded, players)
	slices.SortStableFunc(seeded, func(a, b *models.Player) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return seeded
}
