package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/tabletennis/brackets"
	"github.com/Dosada05/tabletennis/models"
	"github.com/Dosada05/tabletennis/repositories"
	"golang.org/x/sync/errgroup"
)

// CancellationWindow is how long before the start date registrations stay cancellable.
const CancellationWindow = 5 * 24 * time.Hour

type CreateCategoryInput struct {
	Name              string                `json:"name"`
	Format            models.CategoryFormat `json:"format"`
	Gender            models.Gender         `json:"gender"`
	AgeMin            *int                  `json:"age_min,omitempty"`
	AgeMax            *int                  `json:"age_max,omitempty"`
	RatingMin         *int                  `json:"rating_min,omitempty"`
	RatingMax         *int                  `json:"rating_max,omitempty"`
	Capacity          int                   `json:"capacity"`
	KFactor           *int                  `json:"k_factor,omitempty"`
	GroupSize         int                   `json:"group_size"`
	AdvancingPerGroup int                   `json:"advancing_per_group"`
	StartDate         time.Time             `json:"start_date"`
}

// GroupConfig overrides the category's group settings when it is started.
type GroupConfig struct {
	GroupSize         int `json:"group_size"`
	AdvancingPerGroup int `json:"advancing_per_group"`
}

// BracketView is everything needed to draw a category: its groups with their
// matches and the knockout tree.
type BracketView struct {
	Category *models.Category `json:"category"`
	Groups   []*models.Group  `json:"groups"`
	Knockout []*models.Match  `json:"knockout"`
}

type CategoryService interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	GetCategory(ctx context.Context, categoryID int) (*models.Category, error)
	ListCategories(ctx context.Context, filter repositories.ListCategoriesFilter) ([]*models.Category, error)

	Register(ctx context.Context, categoryID, playerID int) (*models.Category, error)
	CancelRegistration(ctx context.Context, categoryID, playerID int) error
	CloseRegistration(ctx context.Context, categoryID int) (*models.Category, error)
	ReopenRegistration(ctx context.Context, categoryID int) (*models.Category, error)
	Start(ctx context.Context, categoryID int, cfg *GroupConfig) (*models.Category, error)

	ListMatches(ctx context.Context, categoryID int) ([]*models.Match, error)
	ListGroups(ctx context.Context, categoryID int) ([]*models.Group, error)
	GetBracket(ctx context.Context, categoryID int) (*BracketView, error)
	GetStandings(ctx context.Context, categoryID int) ([]models.GroupTable, error)
}

type categoryService struct {
	categoryRepo     repositories.CategoryRepository
	registrationRepo repositories.RegistrationRepository
	playerRepo       repositories.PlayerRepository
	groupRepo        repositories.GroupRepository
	matchRepo        repositories.MatchRepository
	tx               repositories.Transactor
	locks            *Locks
	logger           *slog.Logger
	now              func() time.Time
}

func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	registrationRepo repositories.RegistrationRepository,
	playerRepo repositories.PlayerRepository,
	groupRepo repositories.GroupRepository,
	matchRepo repositories.MatchRepository,
	tx repositories.Transactor,
	locks *Locks,
	logger *slog.Logger,
) CategoryService {
	return &categoryService{
		categoryRepo:     categoryRepo,
		registrationRepo: registrationRepo,
		playerRepo:       playerRepo,
		groupRepo:        groupRepo,
		matchRepo:        matchRepo,
		tx:               tx,
		locks:            locks,
		logger:           logger,
		now:              time.Now,
	}
}

func validateCategoryInput(in CreateCategoryInput) error {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !in.Format.Valid() {
		problems = append(problems, fmt.Sprintf("unknown format %q", in.Format))
	}
	switch in.Gender {
	case models.GenderMale, models.GenderFemale, models.GenderMixed:
	default:
		problems = append(problems, fmt.Sprintf("unknown gender %q", in.Gender))
	}
	if in.Capacity <= 0 {
		problems = append(problems, "capacity must be positive")
	}
	if in.AgeMin != nil && in.AgeMax != nil && *in.AgeMin > *in.AgeMax {
		problems = append(problems, "age_min must not exceed age_max")
	}
	if in.RatingMin != nil && in.RatingMax != nil && *in.RatingMin > *in.RatingMax {
		problems = append(problems, "rating_min must not exceed rating_max")
	}
	if in.KFactor != nil && *in.KFactor <= 0 {
		problems = append(problems, "k_factor must be positive")
	}
	if in.GroupSize != 0 && in.GroupSize < 2 {
		problems = append(problems, "group_size must be at least 2")
	}
	if in.AdvancingPerGroup < 0 {
		problems = append(problems, "advancing_per_group must not be negative")
	}
	if in.StartDate.IsZero() {
		problems = append(problems, "start_date is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(problems, "; "))
	}
	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:              strings.TrimSpace(input.Name),
		Format:            input.Format,
		Status:            models.StatusRegistration,
		Gender:            input.Gender,
		AgeMin:            input.AgeMin,
		AgeMax:            input.AgeMax,
		RatingMin:         input.RatingMin,
		RatingMax:         input.RatingMax,
		Capacity:          input.Capacity,
		KFactor:           input.KFactor,
		GroupSize:         input.GroupSize,
		AdvancingPerGroup: input.AdvancingPerGroup,
		StartDate:         input.StartDate,
	}
	if category.GroupSize == 0 {
		category.GroupSize = models.DefaultGroupSize
	}
	if category.AdvancingPerGroup == 0 {
		category.AdvancingPerGroup = models.DefaultAdvancingPerGroup
	}

	if err := s.categoryRepo.Create(ctx, nil, category); err != nil {
		return nil, translateRepoError(err)
	}
	category.Registrations = []models.Registration{}

	s.logger.InfoContext(ctx, "category created",
		slog.Int("category_id", category.ID),
		slog.String("format", string(category.Format)),
	)
	return category, nil
}

// loadCategory reads the category with its registrations through exec.
func (s *categoryService) loadCategory(ctx context.Context, exec repositories.SQLExecutor, categoryID int, forUpdate bool) (*models.Category, error) {
	var (
		category *models.Category
		err      error
	)
	if forUpdate {
		category, err = s.categoryRepo.GetByIDForUpdate(ctx, exec, categoryID)
	} else {
		category, err = s.categoryRepo.GetByID(ctx, exec, categoryID)
	}
	if err != nil {
		return nil, translateRepoError(err)
	}

	regs, err := s.registrationRepo.ListByCategory(ctx, exec, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations of category %d: %w", categoryID, err)
	}
	category.Registrations = regs
	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID int) (*models.Category, error) {
	return s.loadCategory(ctx, nil, categoryID, false)
}

func (s *categoryService) ListCategories(ctx context.Context, filter repositories.ListCategoriesFilter) ([]*models.Category, error) {
	categories, err := s.categoryRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) Register(ctx context.Context, categoryID, playerID int) (*models.Category, error) {
	unlock := s.locks.LockCategory(categoryID)
	defer unlock()

	var (
		result   *models.Category
		inserted bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, exec repositories.SQLExecutor) error {
		category, err := s.loadCategory(ctx, exec, categoryID, true)
		if err != nil {
			return err
		}
		if category.Status != models.StatusRegistration {
			return fmt.Errorf("%w: registration is not open (status %s)", ErrInvalidState, category.Status)
		}
		if category.IsRegistered(playerID) {
			result = category
			return nil
		}

		player, err := s.playerRepo.GetByID(ctx, exec, playerID)
		if err != nil {
			return translateRepoError(err)
		}
		if !IsEligible(player, category, s.now()) {
			return ErrNotEligible
		}
		if len(category.Registrations) >= category.Capacity {
			return ErrCapacityExceeded
		}

		reg := &models.Registration{CategoryID: categoryID, PlayerID: playerID}
		if err := s.registrationRepo.Add(ctx, exec, reg); err != nil {
			if errors.Is(err, repositories.ErrRegistrationConflict) {
				result = category
				return nil
			}
			return translateRepoError(err)
		}
		category.Registrations = append(category.Registrations, *reg)
		result = category
		inserted = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		return result, nil
	}

	s.logger.InfoContext(ctx, "player registered",
		slog.Int("category_id", categoryID),
		slog.Int("player_id", playerID),
		slog.Int("registrations", len(result.Registrations)),
	)
	return result, nil
}

func (s *categoryService) CancelRegistration(ctx context.Context, categoryID, playerID int) error {
	unlock := s.locks.LockCategory(categoryID)
	defer unlock()

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, exec repositories.SQLExecutor) error {
		category, err := s.categoryRepo.GetByIDForUpdate(ctx, exec, categoryID)
		if err != nil {
			return translateRepoError(err)
		}
		if category.Status != models.StatusRegistration && category.Status != models.StatusRegistrationClosed {
			return fmt.Errorf("%w: category already started (status %s)", ErrDeadlinePassed, category.Status)
		}
		if category.StartDate.Sub(s.now()) <= CancellationWindow {
			return ErrDeadlinePassed
		}
		return translateRepoError(s.registrationRepo.Remove(ctx, exec, categoryID, playerID))
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "registration cancelled",
		slog.Int("category_id", categoryID),
		slog.Int("player_id", playerID),
	)
	return nil
}

func (s *categoryService) CloseRegistration(ctx context.Context, categoryID int) (*models.Category, error) {
	return s.applyEvent(ctx, categoryID, eventClose)
}

func (s *categoryService) ReopenRegistration(ctx context.Context, categoryID int) (*models.Category, error) {
	return s.applyEvent(ctx, categoryID, eventReopen)
}

// applyEvent runs a transition that changes nothing but the status.
func (s *categoryService) applyEvent(ctx context.Context, categoryID int, event categoryEvent) (*models.Category, error) {
	unlock := s.locks.LockCategory(categoryID)
	defer unlock()

	var result *models.Category
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, exec repositories.SQLExecutor) error {
		category, err := s.loadCategory(ctx, exec, categoryID, true)
		if err != nil {
			return err
		}
		next, err := nextStatus(category.Format, category.Status, event)
		if err != nil {
			return err
		}
		if err := s.categoryRepo.UpdateStatus(ctx, exec, categoryID, next); err != nil {
			return translateRepoError(err)
		}
		category.Status = next
		result = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "category status changed",
		slog.Int("category_id", categoryID),
		slog.String("event", string(event)),
		slog.String("status", string(result.Status)),
	)
	return result, nil
}

func (s *categoryService) Start(ctx context.Context, categoryID int, cfg *GroupConfig) (*models.Category, error) {
	unlock := s.locks.LockCategory(categoryID)
	defer unlock()

	var result *models.Category
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, exec repositories.SQLExecutor) error {
		category, err := s.loadCategory(ctx, exec, categoryID, true)
		if err != nil {
			return err
		}
		next, err := nextStatus(category.Format, category.Status, eventStart)
		if err != nil {
			return err
		}
		if len(category.Registrations) < 2 {
			return ErrInsufficientPlayers
		}

		if cfg != nil && category.Format == models.FormatGroupsThenElimination {
			if cfg.GroupSize != 0 && cfg.GroupSize < 2 {
				return fmt.Errorf("%w: group_size must be at least 2", ErrValidationFailed)
			}
			if cfg.AdvancingPerGroup < 0 {
				return fmt.Errorf("%w: advancing_per_group must not be negative", ErrValidationFailed)
			}
			if cfg.GroupSize > 0 {
				category.GroupSize = cfg.GroupSize
			}
			if cfg.AdvancingPerGroup > 0 {
				category.AdvancingPerGroup = cfg.AdvancingPerGroup
			}
		}

		ids := registrationPlayerIDs(category.Registrations)
		players, err := s.playerRepo.ListByIDs(ctx, exec, ids, false)
		if err != nil {
			return fmt.Errorf("failed to load registrants of category %d: %w", categoryID, err)
		}
		seeded := brackets.SeedByRating(orderByIDs(players, ids))
		if len(seeded) < 2 {
			return ErrInsufficientPlayers
		}

		params := brackets.GenerateBracketParams{Category: category, Players: seeded}
		switch category.Format {
		case models.FormatGroupsThenElimination:
			params.GroupSize = category.EffectiveGroupSize()
			numGroups := brackets.NumGroups(len(seeded), params.GroupSize)
			if min(len(seeded), numGroups*category.EffectiveAdvancingPerGroup()) < 2 {
				return ErrInsufficientQualifiers
			}
		case models.FormatRoundRobin:
			// Один общий круг: все игроки в одной группе.
			params.GroupSize = len(seeded)
		}

		generator, err := brackets.NewGeneratorForStart(category.Format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		bracket, err := generator.GenerateBracket(ctx, params)
		if err != nil {
			return fmt.Errorf("%s failed for category %d: %w", generator.GetName(), categoryID, err)
		}
		if err := saveBracket(ctx, exec, s.groupRepo, s.matchRepo, bracket); err != nil {
			return err
		}

		if category.Format == models.FormatGroupsThenElimination {
			if err := s.categoryRepo.UpdateGroupConfig(ctx, exec, categoryID, category.EffectiveGroupSize(), category.EffectiveAdvancingPerGroup()); err != nil {
				return translateRepoError(err)
			}
		}
		if err := s.categoryRepo.UpdateStatus(ctx, exec, categoryID, next); err != nil {
			return translateRepoError(err)
		}
		category.Status = next
		result = category

		s.logger.InfoContext(ctx, "category started",
			slog.Int("category_id", categoryID),
			slog.String("generator", generator.GetName()),
			slog.Int("players", len(seeded)),
			slog.Int("groups", len(bracket.Groups)),
			slog.Int("matches", len(bracket.Matches)),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *categoryService) ListMatches(ctx context.Context, categoryID int) ([]*models.Match, error) {
	if _, err := s.categoryRepo.GetByID(ctx, nil, categoryID); err != nil {
		return nil, translateRepoError(err)
	}
	return s.matchRepo.ListByCategory(ctx, nil, categoryID, nil)
}

func (s *categoryService) ListGroups(ctx context.Context, categoryID int) ([]*models.Group, error) {
	if _, err := s.categoryRepo.GetByID(ctx, nil, categoryID); err != nil {
		return nil, translateRepoError(err)
	}
	groups, err := s.groupRepo.ListByCategory(ctx, nil, categoryID)
	if err != nil {
		return nil, err
	}
	stage := models.StageGroup
	matches, err := s.matchRepo.ListByCategory(ctx, nil, categoryID, &stage)
	if err != nil {
		return nil, err
	}
	attachGroupMatches(groups, matches)
	return groups, nil
}

func (s *categoryService) GetBracket(ctx context.Context, categoryID int) (*BracketView, error) {
	var (
		category *models.Category
		groups   []*models.Group
		matches  []*models.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		category, err = s.loadCategory(gctx, nil, categoryID, false)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = s.groupRepo.ListByCategory(gctx, nil, categoryID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByCategory(gctx, nil, categoryID, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &BracketView{Category: category, Groups: groups, Knockout: make([]*models.Match, 0)}
	attachGroupMatches(groups, matches)
	for _, m := range matches {
		if m.Stage == models.StageKnockout {
			view.Knockout = append(view.Knockout, m)
		}
	}
	return view, nil
}

func (s *categoryService) GetStandings(ctx context.Context, categoryID int) ([]models.GroupTable, error) {
	groups, err := s.ListGroups(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	tables := make([]models.GroupTable, 0, len(groups))
	for _, g := range groups {
		tables = append(tables, models.GroupTable{Group: g, Standings: ComputeStandings(g, g.Matches)})
	}
	return tables, nil
}

func attachGroupMatches(groups []*models.Group, matches []*models.Match) {
	byID := make(map[int]*models.Group, len(groups))
	for _, g := range groups {
		g.Matches = make([]*models.Match, 0)
		byID[g.ID] = g
	}
	for _, m := range matches {
		if m.GroupID == nil {
			continue
		}
		if g, ok := byID[*m.GroupID]; ok {
			g.Matches = append(g.Matches, m)
		}
	}
}
