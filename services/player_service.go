package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/tabletennis/models"
	"github.com/Dosada05/tabletennis/repositories"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

type CreatePlayerInput struct {
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	BirthDate time.Time     `json:"birth_date"`
	Gender    models.Gender `json:"gender"`
	// Rating is the starting rating; models.DefaultRating when omitted.
	Rating *int `json:"rating,omitempty"`
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, playerID int) (*models.Player, error)
	GetRatingHistory(ctx context.Context, playerID int, limit int) ([]*models.RatingHistoryRecord, error)
}

type playerService struct {
	playerRepo  repositories.PlayerRepository
	historyRepo repositories.RatingHistoryRepository
	logger      *slog.Logger
}

func NewPlayerService(playerRepo repositories.PlayerRepository, historyRepo repositories.RatingHistoryRepository, logger *slog.Logger) PlayerService {
	return &playerService{
		playerRepo:  playerRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: first_name and last_name are required", ErrValidationFailed)
	}
	if input.Gender != models.GenderMale && input.Gender != models.GenderFemale {
		return nil, fmt.Errorf("%w: gender must be male or female", ErrValidationFailed)
	}
	if input.BirthDate.IsZero() {
		return nil, fmt.Errorf("%w: birth_date is required", ErrValidationFailed)
	}

	player := &models.Player{
		FirstName: firstName,
		LastName:  lastName,
		Rating:    models.DefaultRating,
		BirthDate: input.BirthDate,
		Gender:    input.Gender,
	}
	if input.Rating != nil {
		player.Rating = *input.Rating
	}

	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "player created", slog.Int("player_id", player.ID), slog.Int("rating", player.Rating))
	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, playerID int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, nil, playerID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return player, nil
}

// GetRatingHistory returns the player's latest rating changes, newest first.
func (s *playerService) GetRatingHistory(ctx context.Context, playerID int, limit int) ([]*models.RatingHistoryRecord, error) {
	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.historyRepo.ListByPlayer(ctx, nil, playerID, limit)
}
