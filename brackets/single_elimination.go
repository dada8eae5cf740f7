package brackets

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"github.com/Dosada05/tabletennis/models"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*Bracket, error) {
	if params.Category == nil {
		return nil, errors.New("single elimination: category is required")
	}
	if len(params.Players) < 2 {
		return nil, fmt.Errorf("not enough participants to generate a single elimination bracket (found %d, min 2 required)", len(params.Players))
	}
	return &Bracket{Matches: BuildKnockoutBracket(playerIDs(params.Players), params.Category.ID)}, nil
}

// BuildKnockoutBracket builds every knockout match through the final for
// players seeded best first.
//
// When the field is not a power of two the top bracketSize-n seeds get a bye
// into round 2 and everybody else plays a preliminary round 1, best remaining
// seed against worst remaining seed. Byes take the round 2 slots in seed order
// (player1, then player2, match by match); preliminary winner k is linked to
// the k-th slot left open after that.
func BuildKnockoutBracket(seeded []int, categoryID int) []*models.Match {
	n := len(seeded)
	if n < 2 {
		return []*models.Match{}
	}

	bracketSize := nextPowerOfTwo(n)
	mainSlots := bracketSize / 2
	matches := make([]*models.Match, 0, n-1)

	if n == bracketSize {
		for i := 0; i < n/2; i++ {
			m := newKnockoutMatch(categoryID, 1, i+1)
			m.Player1ID = intPtr(seeded[i])
			m.Player2ID = intPtr(seeded[n-1-i])
			matches = append(matches, m)
		}
		matches = append(matches, emptyRounds(categoryID, 2, n/4)...)
		linkByPosition(matches)
		return matches
	}

	numByes := bracketSize - n
	prelim := seeded[numByes:]
	prelimMatches := make([]*models.Match, 0, len(prelim)/2)
	for k := 0; k < len(prelim)/2; k++ {
		m := newKnockoutMatch(categoryID, 1, k+1)
		m.Player1ID = intPtr(prelim[k])
		m.Player2ID = intPtr(prelim[len(prelim)-1-k])
		prelimMatches = append(prelimMatches, m)
	}

	later := emptyRounds(categoryID, 2, mainSlots/2)
	mainRound := later[:mainSlots/2]

	for slot, playerID := range seeded[:numByes] {
		m := mainRound[slot/2]
		if slot%2 == 0 {
			m.Player1ID = intPtr(playerID)
		} else {
			m.Player2ID = intPtr(playerID)
		}
	}
	for k, m := range prelimMatches {
		slot := numByes + k
		m.NextPosition = intPtr(slot/2 + 1)
		m.WinnerToSlot = intPtr(slot%2 + 1)
	}

	matches = append(matches, prelimMatches...)
	matches = append(matches, later...)
	linkByPosition(matches)
	return matches
}

// emptyRounds creates rounds of TBD matches starting at round first with
// count matches, halving until the final.
func emptyRounds(categoryID, first, count int) []*models.Match {
	var out []*models.Match
	for round := first; count >= 1; round, count = round+1, count/2 {
		for pos := 1; pos <= count; pos++ {
			out = append(out, newKnockoutMatch(categoryID, round, pos))
		}
	}
	return out
}

// linkByPosition links every non-final match without an explicit target to
// (round+1, ceil(position/2)).
func linkByPosition(matches []*models.Match) {
	lastRound := 0
	for _, m := range matches {
		if m.Round > lastRound {
			lastRound = m.Round
		}
	}
	for _, m := range matches {
		if m.Round == lastRound || m.NextPosition != nil {
			continue
		}
		m.NextPosition = intPtr((m.Position + 1) / 2)
		if m.Position%2 == 1 {
			m.WinnerToSlot = intPtr(1)
		} else {
			m.WinnerToSlot = intPtr(2)
		}
	}
}

func newKnockoutMatch(categoryID, round, position int) *models.Match {
	return &models.Match{
		CategoryID: categoryID,
		Stage:      models.StageKnockout,
		Round:      round,
		Position:   position,
		Status:     models.MatchStatusScheduled,
		Sets:       []models.SetScore{},
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
