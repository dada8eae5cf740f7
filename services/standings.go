package services

import (
	"cmp"
	"slices"

	"github.com/Dosada05/tabletennis/models"
)

const (
	pointsPerWin  = 2
	pointsPerLoss = 1
)

// ComputeStandings builds the group table shown to players: points
// (2 per win, 1 per loss), then wins, then set difference. Equal rows keep
// the group's seed order.
func ComputeStandings(group *models.Group, matches []*models.Match) []models.GroupStanding {
	rows := make(map[int]*models.GroupStanding, len(group.PlayerIDs))
	for _, id := range group.PlayerIDs {
		rows[id] = &models.GroupStanding{GroupID: group.ID, PlayerID: id}
	}

	for _, m := range matches {
		if !m.IsCompleted() || m.WinnerID == nil || !m.HasBothPlayers() {
			continue
		}
		p1, ok1 := rows[*m.Player1ID]
		p2, ok2 := rows[*m.Player2ID]
		if !ok1 || !ok2 {
			continue
		}
		p1.Played++
		p2.Played++
		p1.SetsWon += m.Player1Sets
		p1.SetsLost += m.Player2Sets
		p2.SetsWon += m.Player2Sets
		p2.SetsLost += m.Player1Sets
		if *m.WinnerID == *m.Player1ID {
			p1.Wins++
			p2.Losses++
		} else {
			p2.Wins++
			p1.Losses++
		}
	}

	table := make([]models.GroupStanding, 0, len(group.PlayerIDs))
	for _, id := range group.PlayerIDs {
		row := rows[id]
		row.Points = row.Wins*pointsPerWin + row.Losses*pointsPerLoss
		row.SetDiff = row.SetsWon - row.SetsLost
		table = append(table, *row)
	}

	slices.SortStableFunc(table, func(a, b models.GroupStanding) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(b.SetDiff, a.SetDiff)
	})
	for i := range table {
		table[i].Rank = i + 1
	}
	return table
}

// rankByWins orders group members by completed-match wins only. Ties keep the
// group's seed order. Qualifier promotion uses this, not ComputeStandings.
func rankByWins(group *models.Group, matches []*models.Match) []int {
	wins := make(map[int]int, len(group.PlayerIDs))
	for _, m := range matches {
		if m.IsCompleted() && m.WinnerID != nil {
			wins[*m.WinnerID]++
		}
	}
	ranked := slices.Clone(group.PlayerIDs)
	slices.SortStableFunc(ranked, func(a, b int) int {
		return cmp.Compare(wins[b], wins[a])
	})
	return ranked
}
