package models

import "time"

// DefaultRating is the Elo rating every new player starts with.
const DefaultRating = 1000

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderMixed  Gender = "mixed" // only valid on categories
)

// Player представляет игрока клуба. Рейтинг меняется только через обработку результатов матчей.
type Player struct {
	ID        int       `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Rating    int       `json:"rating" db:"rating"`
	BirthDate time.Time `json:"birth_date" db:"birth_date"`
	Gender    Gender    `json:"gender" db:"gender"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AgeAt returns the player's age in whole years at the given moment.
func (p *Player) AgeAt(now time.Time) int {
	years := now.Year() - p.BirthDate.Year()
	if now.Month() < p.BirthDate.Month() ||
		(now.Month() == p.BirthDate.Month() && now.Day() < p.BirthDate.Day()) {
		years--
	}
	return years
}
