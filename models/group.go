package models

import "time"

type Group struct {
	ID         int       `json:"id" db:"id"`
	CategoryID int       `json:"category_id" db:"category_id"`
	Name       string    `json:"name" db:"name"`
	PlayerIDs  []int     `json:"player_ids" db:"player_ids"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	// Заполняется генератором; в строке группы не хранится.
	Matches []*Match `json:"matches,omitempty" db:"-"`
}

// GroupStanding is one row of a group table as shown to players.
type GroupStanding struct {
	GroupID  int `json:"group_id"`
	PlayerID int `json:"player_id"`
	Played   int `json:"played"`
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	Points   int `json:"points"`
	SetsWon  int `json:"sets_won"`
	SetsLost int `json:"sets_lost"`
	SetDiff  int `json:"set_difference"`
	Rank     int `json:"rank"`
}

type GroupTable struct {
	Group     *Group          `json:"group"`
	Standings []GroupStanding `json:"standings"`
}
