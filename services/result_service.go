package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tabletennis/brackets"
	"github.com/Dosada05/tabletennis/models"
	"github.com/Dosada05/tabletennis/rating"
	"github.com/Dosada05/tabletennis/repositories"
)

type ResultService interface {
	// SubmitResult records the set scores of a match, settles both ratings and
	// moves the category forward. Submitting a completed match again corrects it.
	SubmitResult(ctx context.Context, categoryID, matchID int, sets []models.SetScore) (*models.Category, error)
}

type resultService struct {
	categoryRepo     repositories.CategoryRepository
	registrationRepo repositories.RegistrationRepository
	playerRepo       repositories.PlayerRepository
	groupRepo        repositories.GroupRepository
	matchRepo        repositories.MatchRepository
	historyRepo      repositories.RatingHistoryRepository
	tx               repositories.Transactor
	locks            *Locks
	archiver         ArchiveService // nil отключает архив
	logger           *slog.Logger
	now              func() time.Time
}

func NewResultService(
	categoryRepo repositories.CategoryRepository,
	registrationRepo repositories.RegistrationRepository,
	playerRepo repositories.PlayerRepository,
	groupRepo repositories.GroupRepository,
	matchRepo repositories.MatchRepository,
	historyRepo repositories.RatingHistoryRepository,
	tx repositories.Transactor,
	locks *Locks,
	archiver ArchiveService,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		categoryRepo:     categoryRepo,
		registrationRepo: registrationRepo,
		playerRepo:       playerRepo,
		groupRepo:        groupRepo,
		matchRepo:        matchRepo,
		historyRepo:      historyRepo,
		tx:               tx,
		locks:            locks,
		archiver:         archiver,
		logger:           logger,
		now:              time.Now,
	}
}

// aggregateSets counts sets won by each side.
func aggregateSets(sets []models.SetScore) (p1Sets, p2Sets int, err error) {
	if len(sets) == 0 {
		return 0, 0, fmt.Errorf("%w: at least one set is required", ErrInvalidScore)
	}
	for i, set := range sets {
		if set.P1 < 0 || set.P2 < 0 {
			return 0, 0, fmt.Errorf("%w: set %d has a negative score", ErrInvalidScore, i+1)
		}
		switch {
		case set.P1 > set.P2:
			p1Sets++
		case set.P2 > set.P1:
			p2Sets++
		default:
			return 0, 0, fmt.Errorf("%w: set %d is drawn %d:%d", ErrInvalidScore, i+1, set.P1, set.P2)
		}
	}
	if p1Sets == p2Sets {
		return 0, 0, fmt.Errorf("%w: sets are tied %d:%d", ErrInvalidScore, p1Sets, p2Sets)
	}
	return p1Sets, p2Sets, nil
}

func requiredStatus(stage models.MatchStage) models.CategoryStatus {
	if stage == models.StageGroup {
		return models.StatusGroupStage
	}
	return models.StatusInProgress
}

// decidesChampion reports whether match is the one that settles the winner of
// category: the knockout final, or any match of a single round robin.
func decidesChampion(category *models.Category, match *models.Match) bool {
	switch match.Stage {
	case models.StageKnockout:
		return match.NextPosition == nil
	case models.StageGroup:
		return category.Format == models.FormatRoundRobin
	}
	return false
}

// checkResultStatus rejects a result the category can not take in its
// current status. A COMPLETED category still accepts a correction of the
// match that decided its champion.
func checkResultStatus(category *models.Category, match *models.Match, correction bool) error {
	want := requiredStatus(match.Stage)
	if category.Status == want {
		return nil
	}
	if correction && category.Status == models.StatusCompleted && decidesChampion(category, match) {
		return nil
	}
	return fmt.Errorf("%w: %s match needs category status %s, got %s", ErrInvalidState, match.Stage, want, category.Status)
}

func (s *resultService) SubmitResult(ctx context.Context, categoryID, matchID int, sets []models.SetScore) (*models.Category, error) {
	unlock := s.locks.LockCategory(categoryID)
	defer unlock()

	var (
		result    *models.Category
		completed bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, exec repositories.SQLExecutor) error {
		category, err := s.categoryRepo.GetByIDForUpdate(ctx, exec, categoryID)
		if err != nil {
			return translateRepoError(err)
		}
		match, err := s.matchRepo.GetByIDForUpdate(ctx, exec, matchID)
		if err != nil {
			return translateRepoError(err)
		}
		if match.CategoryID != categoryID {
			return ErrMatchNotFound
		}
		correction := match.IsCompleted()
		if err := checkResultStatus(category, match, correction); err != nil {
			return err
		}
		if !match.HasBothPlayers() {
			return ErrMatchNotReady
		}
		p1Sets, p2Sets, err := aggregateSets(sets)
		if err != nil {
			return err
		}

		var next *models.Match
		if match.Stage == models.StageKnockout && match.NextPosition != nil {
			next, err = s.matchRepo.GetKnockoutMatch(ctx, exec, categoryID, match.Round+1, *match.NextPosition)
			if err != nil {
				return fmt.Errorf("failed to load next match of %d: %w", match.ID, translateRepoError(err))
			}
			if correction && next.IsCompleted() {
				return ErrMatchLocked
			}
		}

		unlockPlayers := s.locks.LockPlayers(*match.Player1ID, *match.Player2ID)
		defer unlockPlayers()

		if err := s.settle(ctx, exec, category, match, sets, p1Sets, p2Sets, correction); err != nil {
			return err
		}

		switch match.Stage {
		case models.StageKnockout:
			completed, err = s.advanceKnockout(ctx, exec, category, match, next)
		case models.StageGroup:
			completed, err = s.finishGroupsIfDone(ctx, exec, category, match)
		}
		if err != nil {
			return err
		}

		regs, err := s.registrationRepo.ListByCategory(ctx, exec, categoryID)
		if err != nil {
			return fmt.Errorf("failed to load registrations of category %d: %w", categoryID, err)
		}
		category.Registrations = regs
		result = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed && s.archiver != nil {
		if location, archErr := s.archiver.ArchiveCategory(ctx, categoryID); archErr != nil {
			s.logger.ErrorContext(ctx, "failed to archive completed category",
				slog.Int("category_id", categoryID),
				slog.Any("error", archErr),
			)
		} else {
			s.logger.InfoContext(ctx, "category archived",
				slog.Int("category_id", categoryID),
				slog.String("location", location),
			)
		}
	}
	return result, nil
}

// settle writes the score and the Elo outcome of match. A correction first
// takes back the rating change the previous result made.
func (s *resultService) settle(ctx context.Context, exec repositories.SQLExecutor, category *models.Category, match *models.Match, sets []models.SetScore, p1Sets, p2Sets int, correction bool) error {
	p1ID, p2ID := *match.Player1ID, *match.Player2ID
	players, err := s.playerRepo.ListByIDs(ctx, exec, []int{p1ID, p2ID}, true)
	if err != nil {
		return fmt.Errorf("failed to lock players of match %d: %w", match.ID, err)
	}
	ordered := orderByIDs(players, []int{p1ID, p2ID})
	if len(ordered) != 2 {
		return ErrPlayerNotFound
	}
	p1, p2 := ordered[0], ordered[1]

	base1, base2 := p1.Rating, p2.Rating
	if correction {
		base1 -= ratingDelta(match.Player1RatingBefore, match.Player1RatingAfter)
		base2 -= ratingDelta(match.Player2RatingBefore, match.Player2RatingAfter)
	}

	kFactor := rating.DefaultKFactor
	if category.KFactor != nil {
		kFactor = *category.KFactor
	}
	p1Wins := p1Sets > p2Sets
	new1, new2 := rating.ApplyResult(base1, base2, p1Wins, kFactor)

	winnerID := p2ID
	if p1Wins {
		winnerID = p1ID
	}
	completedAt := s.now()
	match.Status = models.MatchStatusCompleted
	match.Sets = sets
	match.Player1Sets = p1Sets
	match.Player2Sets = p2Sets
	match.WinnerID = &winnerID
	match.Player1RatingBefore, match.Player1RatingAfter = &base1, &new1
	match.Player2RatingBefore, match.Player2RatingAfter = &base2, &new2
	match.CompletedAt = &completedAt
	if err := s.matchRepo.UpdateResult(ctx, exec, match); err != nil {
		return fmt.Errorf("failed to save result of match %d: %w", match.ID, translateRepoError(err))
	}

	sides := []struct {
		player     *models.Player
		opponentID int
		newRating  int
	}{
		{p1, p2ID, new1},
		{p2, p1ID, new2},
	}
	for _, side := range sides {
		delta := side.newRating - side.player.Rating
		if correction && delta == 0 {
			continue
		}
		if err := s.playerRepo.UpdateRating(ctx, exec, side.player.ID, side.newRating); err != nil {
			return fmt.Errorf("failed to update rating of player %d: %w", side.player.ID, translateRepoError(err))
		}
		rec := &models.RatingHistoryRecord{
			PlayerID:     side.player.ID,
			MatchID:      match.ID,
			CategoryID:   category.ID,
			OpponentID:   side.opponentID,
			RatingBefore: side.player.Rating,
			RatingAfter:  side.newRating,
			Delta:        delta,
		}
		if err := s.historyRepo.Append(ctx, exec, rec); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "match result recorded",
		slog.Int("category_id", category.ID),
		slog.Int("match_id", match.ID),
		slog.Int("winner_id", winnerID),
		slog.Bool("correction", correction),
		slog.Int("player1_rating", new1),
		slog.Int("player2_rating", new2),
	)
	return nil
}

func ratingDelta(before, after *int) int {
	if before == nil || after == nil {
		return 0
	}
	return *after - *before
}

// advanceKnockout moves the winner into the linked slot, or finishes the
// category when match is the final.
func (s *resultService) advanceKnockout(ctx context.Context, exec repositories.SQLExecutor, category *models.Category, match, next *models.Match) (bool, error) {
	if next == nil {
		return true, s.complete(ctx, exec, category, eventFinalComplete, *match.WinnerID)
	}

	p1, p2 := next.Player1ID, next.Player2ID
	winner := *match.WinnerID
	if match.WinnerToSlot != nil && *match.WinnerToSlot == 2 {
		p2 = &winner
	} else {
		p1 = &winner
	}
	if err := s.matchRepo.UpdateParticipants(ctx, exec, next.ID, p1, p2); err != nil {
		return false, fmt.Errorf("failed to advance winner of match %d: %w", match.ID, translateRepoError(err))
	}
	return false, nil
}

// complete finishes category with championID. An already COMPLETED category
// (a corrected final) keeps its status and only gets the champion rewritten.
func (s *resultService) complete(ctx context.Context, exec repositories.SQLExecutor, category *models.Category, event categoryEvent, championID int) error {
	recrowned := category.Status == models.StatusCompleted
	if !recrowned {
		status, err := nextStatus(category.Format, category.Status, event)
		if err != nil {
			return err
		}
		if err := s.categoryRepo.UpdateStatus(ctx, exec, category.ID, status); err != nil {
			return translateRepoError(err)
		}
		category.Status = status
	}
	if err := s.categoryRepo.UpdateWinner(ctx, exec, category.ID, &championID); err != nil {
		return translateRepoError(err)
	}
	category.WinnerPlayerID = &championID

	s.logger.InfoContext(ctx, "category completed",
		slog.Int("category_id", category.ID),
		slog.Int("champion_id", championID),
		slog.Bool("corrected", recrowned),
	)
	return nil
}

// finishGroupsIfDone closes the group stage once every group match is played.
// GROUPS_THEN_ELIMINATION promotes qualifiers into a fresh knockout bracket;
// ROUND_ROBIN crowns the wins leader. It reports whether the category completed.
func (s *resultService) finishGroupsIfDone(ctx context.Context, exec repositories.SQLExecutor, category *models.Category, updated *models.Match) (bool, error) {
	stage := models.StageGroup
	matches, err := s.matchRepo.ListByCategory(ctx, exec, category.ID, &stage)
	if err != nil {
		return false, err
	}
	for i, m := range matches {
		if m.ID == updated.ID {
			matches[i] = updated
		}
		if !matches[i].IsCompleted() {
			return false, nil
		}
	}

	groups, err := s.groupRepo.ListByCategory(ctx, exec, category.ID)
	if err != nil {
		return false, err
	}
	if len(groups) == 0 {
		return false, fmt.Errorf("category %d has group matches but no groups", category.ID)
	}
	attachGroupMatches(groups, matches)

	if category.Format == models.FormatRoundRobin {
		ranked := rankByWins(groups[0], groups[0].Matches)
		return true, s.complete(ctx, exec, category, eventGroupsComplete, ranked[0])
	}

	return false, s.promoteQualifiers(ctx, exec, category, groups)
}

func (s *resultService) promoteQualifiers(ctx context.Context, exec repositories.SQLExecutor, category *models.Category, groups []*models.Group) error {
	status, err := nextStatus(category.Format, category.Status, eventGroupsComplete)
	if err != nil {
		return err
	}

	advancing := category.EffectiveAdvancingPerGroup()
	qualifierIDs := make([]int, 0, len(groups)*advancing)
	for _, g := range groups {
		ranked := rankByWins(g, g.Matches)
		qualifierIDs = append(qualifierIDs, ranked[:min(advancing, len(ranked))]...)
	}
	if len(qualifierIDs) < 2 {
		return ErrInsufficientQualifiers
	}

	players, err := s.playerRepo.ListByIDs(ctx, exec, qualifierIDs, false)
	if err != nil {
		return fmt.Errorf("failed to load qualifiers of category %d: %w", category.ID, err)
	}
	pool := brackets.SeedByRating(orderByIDs(players, qualifierIDs))

	generator := brackets.NewSingleEliminationGenerator()
	bracket, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{Category: category, Players: pool})
	if err != nil {
		return fmt.Errorf("%s failed for category %d: %w", generator.GetName(), category.ID, err)
	}

	if _, err := s.matchRepo.DeleteByCategoryAndStage(ctx, exec, category.ID, models.StageKnockout); err != nil {
		return err
	}
	if err := saveBracket(ctx, exec, s.groupRepo, s.matchRepo, bracket); err != nil {
		return err
	}
	if err := s.categoryRepo.UpdateStatus(ctx, exec, category.ID, status); err != nil {
		return translateRepoError(err)
	}
	category.Status = status

	s.logger.InfoContext(ctx, "group stage finished, knockout bracket built",
		slog.Int("category_id", category.ID),
		slog.Int("qualifiers", len(pool)),
		slog.Int("matches", len(bracket.Matches)),
	)
	return nil
}
