package services

import (
	"time"

	"github.com/Dosada05/tabletennis/models"
)

// IsEligible checks a player against the category's gender, age and rating bounds.
// Age is counted in whole years at now.
func IsEligible(player *models.Player, category *models.Category, now time.Time) bool {
	if player == nil || category == nil {
		return false
	}

	if category.Gender != models.GenderMixed && player.Gender != category.Gender {
		return false
	}

	age := player.AgeAt(now)
	if category.AgeMin != nil && age < *category.AgeMin {
		return false
	}
	if category.AgeMax != nil && age > *category.AgeMax {
		return false
	}

	if category.RatingMin != nil && player.Rating < *category.RatingMin {
		return false
	}
	if category.RatingMax != nil && player.Rating > *category.RatingMax {
		return false
	}
	return true
}
