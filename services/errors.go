package services

import (
	"errors"
	"fmt"
)

// Ошибки движка турнира. Все они пользовательские: хендлеры маппят их в HTTP-коды.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed       = errors.New("validation failed")
	ErrNotEligible            = errors.New("player is not eligible for this category")
	ErrCapacityExceeded       = errors.New("category capacity exceeded")
	ErrDeadlinePassed         = errors.New("cancellation deadline has passed")
	ErrInvalidState           = errors.New("operation not allowed in current category status")
	ErrInsufficientPlayers    = errors.New("at least two registered players are required")
	ErrInsufficientQualifiers = errors.New("group configuration yields fewer than two qualifiers")
	ErrInvalidScore           = errors.New("invalid match score")

	ErrCategoryNameConflict = errors.New("category name already exists")

	// Уточнённые варианты общих ошибок; errors.Is(err, ErrNotFound) для них истинно.
	ErrCategoryNotFound     = fmt.Errorf("category: %w", ErrNotFound)
	ErrMatchNotFound        = fmt.Errorf("match: %w", ErrNotFound)
	ErrPlayerNotFound       = fmt.Errorf("player: %w", ErrNotFound)
	ErrRegistrationNotFound = fmt.Errorf("registration: %w", ErrNotFound)

	ErrMatchNotReady = fmt.Errorf("match players are not decided yet: %w", ErrInvalidState)
	ErrMatchLocked   = fmt.Errorf("next round match already played: %w", ErrInvalidState)
)
