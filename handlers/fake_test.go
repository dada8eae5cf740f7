package handlers

import (
	"context"

	"github.com/Dosada05/tabletennis/models"
	"github.com/Dosada05/tabletennis/repositories"
	"github.com/Dosada05/tabletennis/services"
)

// FakeCategoryService returns whatever the test configures; unset funcs return zero values.
type FakeCategoryService struct {
	CreateCategoryFunc     func(ctx context.Context, input services.CreateCategoryInput) (*models.Category, error)
	GetCategoryFunc        func(ctx context.Context, categoryID int) (*models.Category, error)
	ListCategoriesFunc     func(ctx context.Context, filter repositories.ListCategoriesFilter) ([]*models.Category, error)
	RegisterFunc           func(ctx context.Context, categoryID, playerID int) (*models.Category, error)
	CancelRegistrationFunc func(ctx context.Context, categoryID, playerID int) error
	TransitionFunc         func(ctx context.Context, categoryID int) (*models.Category, error)
	StartFunc              func(ctx context.Context, categoryID int, cfg *services.GroupConfig) (*models.Category, error)
	GetBracketFunc         func(ctx context.Context, categoryID int) (*services.BracketView, error)
	GetStandingsFunc       func(ctx context.Context, categoryID int) ([]models.GroupTable, error)
}

func (f *FakeCategoryService) CreateCategory(ctx context.Context, input services.CreateCategoryInput) (*models.Category, error) {
	if f.CreateCategoryFunc != nil {
		return f.CreateCategoryFunc(ctx, input)
	}
	return nil, nil
}

func (f *FakeCategoryService) GetCategory(ctx context.Context, categoryID int) (*models.Category, error) {
	if f.GetCategoryFunc != nil {
		return f.GetCategoryFunc(ctx, categoryID)
	}
	return nil, nil
}

func (f *FakeCategoryService) ListCategories(ctx context.Context, filter repositories.ListCategoriesFilter) ([]*models.Category, error) {
	if f.ListCategoriesFunc != nil {
		return f.ListCategoriesFunc(ctx, filter)
	}
	return []*models.Category{}, nil
}

func (f *FakeCategoryService) Register(ctx context.Context, categoryID, playerID int) (*models.Category, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, categoryID, playerID)
	}
	return nil, nil
}

func (f *FakeCategoryService) CancelRegistration(ctx context.Context, categoryID, playerID int) error {
	if f.CancelRegistrationFunc != nil {
		return f.CancelRegistrationFunc(ctx, categoryID, playerID)
	}
	return nil
}

func (f *FakeCategoryService) CloseRegistration(ctx context.Context, categoryID int) (*models.Category, error) {
	if f.TransitionFunc != nil {
		return f.TransitionFunc(ctx, categoryID)
	}
	return nil, nil
}

func (f *FakeCategoryService) ReopenRegistration(ctx context.Context, categoryID int) (*models.Category, error) {
	if f.TransitionFunc != nil {
		return f.TransitionFunc(ctx, categoryID)
	}
	return nil, nil
}

func (f *FakeCategoryService) Start(ctx context.Context, categoryID int, cfg *services.GroupConfig) (*models.Category, error) {
	if f.StartFunc != nil {
		return f.StartFunc(ctx, categoryID, cfg)
	}
	return nil, nil
}

func (f *FakeCategoryService) ListMatches(ctx context.Context, categoryID int) ([]*models.Match, error) {
	return []*models.Match{}, nil
}

func (f *FakeCategoryService) ListGroups(ctx context.Context, categoryID int) ([]*models.Group, error) {
	return []*models.Group{}, nil
}

func (f *FakeCategoryService) GetBracket(ctx context.Context, categoryID int) (*services.BracketView, error) {
	if f.GetBracketFunc != nil {
		return f.GetBracketFunc(ctx, categoryID)
	}
	return &services.BracketView{}, nil
}

func (f *FakeCategoryService) GetStandings(ctx context.Context, categoryID int) ([]models.GroupTable, error) {
	if f.GetStandingsFunc != nil {
		return f.GetStandingsFunc(ctx, categoryID)
	}
	return []models.GroupTable{}, nil
}

type FakeResultService struct {
	SubmitResultFunc func(ctx context.Context, categoryID, matchID int, sets []models.SetScore) (*models.Category, error)
}

func (f *FakeResultService) SubmitResult(ctx context.Context, categoryID, matchID int, sets []models.SetScore) (*models.Category, error) {
	if f.SubmitResultFunc != nil {
		return f.SubmitResultFunc(ctx, categoryID, matchID, sets)
	}
	return nil, nil
}

type FakePlayerService struct {
	CreatePlayerFunc     func(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error)
	GetPlayerFunc        func(ctx context.Context, playerID int) (*models.Player, error)
	GetRatingHistoryFunc func(ctx context.Context, playerID int, limit int) ([]*models.RatingHistoryRecord, error)
}

func (f *FakePlayerService) CreatePlayer(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error) {
	if f.CreatePlayerFunc != nil {
		return f.CreatePlayerFunc(ctx, input)
	}
	return nil, nil
}

func (f *FakePlayerService) GetPlayer(ctx context.Context, playerID int) (*models.Player, error) {
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, playerID)
	}
	return nil, nil
}

func (f *FakePlayerService) GetRatingHistory(ctx context.Context, playerID int, limit int) ([]*models.RatingHistoryRecord, error) {
	if f.GetRatingHistoryFunc != nil {
		return f.GetRatingHistoryFunc(ctx, playerID, limit)
	}
	return []*models.RatingHistoryRecord{}, nil
}
