package models

import "time"

// RatingHistoryRecord is one append-only ledger entry per (match, player).
type RatingHistoryRecord struct {
	ID           int       `json:"id" db:"id"`
	PlayerID     int       `json:"player_id" db:"player_id"`
	MatchID      int       `json:"match_id" db:"match_id"`
	CategoryID   int       `json:"category_id" db:"category_id"`
	OpponentID   int       `json:"opponent_id" db:"opponent_id"`
	RatingBefore int       `json:"rating_before" db:"rating_before"`
	RatingAfter  int       `json:"rating_after" db:"rating_after"`
	Delta        int       `json:"delta" db:"delta"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
