package models

import "time"

type MatchStage string

const (
	StageGroup    MatchStage = "GROUP"
	StageKnockout MatchStage = "KNOCKOUT"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "SCHEDULED"
	MatchStatusCompleted MatchStatus = "COMPLETED"
)

// SetScore holds the points of one set, from player1's and player2's side.
type SetScore struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// Match is a single game between two slots. A nil slot is a bracket node whose
// player is not known yet.
type Match struct {
	ID          int         `json:"id" db:"id"`
	CategoryID  int         `json:"category_id" db:"category_id"`
	Stage       MatchStage  `json:"stage" db:"stage"`
	Round       int         `json:"round" db:"round"`
	Position    int         `json:"position" db:"position"`
	Player1ID   *int        `json:"player1_id,omitempty" db:"player1_id"`
	Player2ID   *int        `json:"player2_id,omitempty" db:"player2_id"`
	Status      MatchStatus `json:"status" db:"status"`
	Sets        []SetScore  `json:"sets" db:"sets"`
	Player1Sets int         `json:"player1_sets" db:"player1_sets"`
	Player2Sets int         `json:"player2_sets" db:"player2_sets"`
	WinnerID    *int        `json:"winner_id,omitempty" db:"winner_id"`
	GroupID     *int        `json:"group_id,omitempty" db:"group_id"`

	// Куда уходит победитель: матч (Round+1, NextPosition), слот WinnerToSlot (1 или 2).
	NextPosition *int `json:"next_position,omitempty" db:"next_position"`
	WinnerToSlot *int `json:"winner_to_slot,omitempty" db:"winner_to_slot"`

	Player1RatingBefore *int       `json:"player1_rating_before,omitempty" db:"player1_rating_before"`
	Player1RatingAfter  *int       `json:"player1_rating_after,omitempty" db:"player1_rating_after"`
	Player2RatingBefore *int       `json:"player2_rating_before,omitempty" db:"player2_rating_before"`
	Player2RatingAfter  *int       `json:"player2_rating_after,omitempty" db:"player2_rating_after"`
	CompletedAt         *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
}

func (m *Match) IsCompleted() bool {
	return m.Status == MatchStatusCompleted
}

// HasBothPlayers reports whether both slots are decided.
func (m *Match) HasBothPlayers() bool {
	return m.Player1ID != nil && m.Player2ID != nil
}
