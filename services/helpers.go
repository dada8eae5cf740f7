package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tabletennis/brackets"
	"github.com/Dosada05/tabletennis/models"
	"github.com/Dosada05/tabletennis/repositories"
)

// translateRepoError maps repository sentinels onto service errors and wraps
// everything else unchanged.
func translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrRegistrationNotFound):
		return ErrRegistrationNotFound
	case errors.Is(err, repositories.ErrGroupNotFound):
		return fmt.Errorf("group: %w", ErrNotFound)
	case errors.Is(err, repositories.ErrCategoryNameConflict):
		return ErrCategoryNameConflict
	case errors.Is(err, repositories.ErrRegistrationInvalid):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

// orderByIDs returns players in the order of ids, skipping ids that were not loaded.
func orderByIDs(players []*models.Player, ids []int) []*models.Player {
	byID := make(map[int]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	ordered := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// saveBracket inserts generated groups with their matches, then the remaining
// knockout matches. Group matches get their group id stamped before insert.
func saveBracket(ctx context.Context, exec repositories.SQLExecutor, groupRepo repositories.GroupRepository, matchRepo repositories.MatchRepository, b *brackets.Bracket) error {
	grouped := make(map[*models.Match]bool)
	for _, g := range b.Groups {
		if err := groupRepo.Create(ctx, exec, g); err != nil {
			return fmt.Errorf("failed to save group %s: %w", g.Name, err)
		}
		for _, m := range g.Matches {
			groupID := g.ID
			m.GroupID = &groupID
			if err := matchRepo.Create(ctx, exec, m); err != nil {
				return fmt.Errorf("failed to save match %d of group %s: %w", m.Position, g.Name, err)
			}
			grouped[m] = true
		}
	}
	for _, m := range b.Matches {
		if grouped[m] {
			continue
		}
		if err := matchRepo.Create(ctx, exec, m); err != nil {
			return fmt.Errorf("failed to save match r%d/p%d: %w", m.Round, m.Position, err)
		}
	}
	return nil
}

func registrationPlayerIDs(regs []models.Registration) []int {
	ids := make([]int, len(regs))
	for i, r := range regs {
		ids[i] = r.PlayerID
	}
	return ids
}
