package models

import "time"

// CategoryFormat определяет схему проведения категории турнира.
type CategoryFormat string

const (
	FormatSingleElimination     CategoryFormat = "SINGLE_ELIMINATION"
	FormatGroupsThenElimination CategoryFormat = "GROUPS_THEN_ELIMINATION"
	FormatRoundRobin            CategoryFormat = "ROUND_ROBIN"
)

func (f CategoryFormat) Valid() bool {
	switch f {
	case FormatSingleElimination, FormatGroupsThenElimination, FormatRoundRobin:
		return true
	}
	return false
}

// CategoryStatus представляет статусы категории, соответствующие ENUM в БД.
type CategoryStatus string

const (
	StatusRegistration       CategoryStatus = "REGISTRATION"
	StatusRegistrationClosed CategoryStatus = "REGISTRATION_CLOSED"
	StatusGroupStage         CategoryStatus = "GROUP_STAGE"
	StatusInProgress         CategoryStatus = "IN_PROGRESS"
	StatusCompleted          CategoryStatus = "COMPLETED"
)

func (s CategoryStatus) Valid() bool {
	switch s {
	case StatusRegistration, StatusRegistrationClosed, StatusGroupStage, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

const (
	DefaultGroupSize         = 4
	DefaultAdvancingPerGroup = 2
)

// Category is one competition inside a tournament (e.g. "Men's singles U1400").
type Category struct {
	ID                int            `json:"id" db:"id"`
	Name              string         `json:"name" db:"name"`
	Format            CategoryFormat `json:"format" db:"format"`
	Status            CategoryStatus `json:"status" db:"status"`
	Gender            Gender         `json:"gender" db:"gender"`
	AgeMin            *int           `json:"age_min,omitempty" db:"age_min"`
	AgeMax            *int           `json:"age_max,omitempty" db:"age_max"`
	RatingMin         *int           `json:"rating_min,omitempty" db:"rating_min"`
	RatingMax         *int           `json:"rating_max,omitempty" db:"rating_max"`
	Capacity          int            `json:"capacity" db:"capacity"`
	KFactor           *int           `json:"k_factor,omitempty" db:"k_factor"`
	GroupSize         int            `json:"group_size" db:"group_size"`
	AdvancingPerGroup int            `json:"advancing_per_group" db:"advancing_per_group"`
	StartDate         time.Time      `json:"start_date" db:"start_date"`
	WinnerPlayerID    *int           `json:"winner_player_id,omitempty" db:"winner_player_id"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`

	Registrations []Registration `json:"registrations" db:"-"`
}

func (c *Category) EffectiveGroupSize() int {
	if c.GroupSize <= 0 {
		return DefaultGroupSize
	}
	return c.GroupSize
}

func (c *Category) EffectiveAdvancingPerGroup() int {
	if c.AdvancingPerGroup <= 0 {
		return DefaultAdvancingPerGroup
	}
	return c.AdvancingPerGroup
}

// IsRegistered reports whether the player already holds a registration.
func (c *Category) IsRegistered(playerID int) bool {
	for _, r := range c.Registrations {
		if r.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Registration связывает игрока с категорией. Уникальна по (category_id, player_id).
type Registration struct {
	CategoryID   int       `json:"category_id" db:"category_id"`
	PlayerID     int       `json:"player_id" db:"player_id"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}
