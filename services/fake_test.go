package services

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Dosada05/tabletennis/models"
	"github.com/Dosada05/tabletennis/repositories"
)

// ------------------------
// In-memory store backing all fake repositories
// ------------------------

type fakeStore struct {
	mu sync.Mutex

	players    map[int]models.Player
	categories map[int]models.Category
	regs       map[int][]models.Registration
	groups     map[int]models.Group
	matches    map[int]models.Match
	history    []models.RatingHistoryRecord

	seq int

	// FailAppendHistory makes RatingHistoryRepository.Append fail, to check rollback.
	FailAppendHistory error
	commits           int
	rollbacks         int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		players:    map[int]models.Player{},
		categories: map[int]models.Category{},
		regs:       map[int][]models.Registration{},
		groups:     map[int]models.Group{},
		matches:    map[int]models.Match{},
	}
}

func (s *fakeStore) nextID() int {
	s.seq++
	return s.seq
}

func (s *fakeStore) stamp() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.nextID()) * time.Second)
}

func cloneMatch(m models.Match) models.Match {
	m.Sets = slices.Clone(m.Sets)
	return m
}

type fakeSnapshot struct {
	players    map[int]models.Player
	categories map[int]models.Category
	regs       map[int][]models.Registration
	groups     map[int]models.Group
	matches    map[int]models.Match
	history    []models.RatingHistoryRecord
}

func (s *fakeStore) snapshot() fakeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	regs := make(map[int][]models.Registration, len(s.regs))
	for k, v := range s.regs {
		regs[k] = slices.Clone(v)
	}
	return fakeSnapshot{
		players:    maps.Clone(s.players),
		categories: maps.Clone(s.categories),
		regs:       regs,
		groups:     maps.Clone(s.groups),
		matches:    maps.Clone(s.matches),
		history:    slices.Clone(s.history),
	}
}

func (s *fakeStore) restore(snap fakeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = snap.players
	s.categories = snap.categories
	s.regs = snap.regs
	s.groups = snap.groups
	s.matches = snap.matches
	s.history = snap.history
	s.rollbacks++
}

// ------------------------
// Fake Transactor
// ------------------------

type fakeTransactor struct {
	store *fakeStore
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, exec repositories.SQLExecutor) error) error {
	snap := t.store.snapshot()
	if err := fn(ctx, nil); err != nil {
		t.store.restore(snap)
		return err
	}
	t.store.mu.Lock()
	t.store.commits++
	t.store.mu.Unlock()
	return nil
}

// ------------------------
// Fake Player Repository
// ------------------------

type fakePlayerRepo struct{ s *fakeStore }

func (r *fakePlayerRepo) Create(ctx context.Context, exec repositories.SQLExecutor, p *models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID()
	p.CreatedAt = r.s.stamp()
	r.s.players[p.ID] = *p
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &p, nil
}

func (r *fakePlayerRepo) ListByIDs(ctx context.Context, exec repositories.SQLExecutor, ids []int, forUpdate bool) ([]*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.players[id]; ok {
			out = append(out, &p)
		}
	}
	slices.SortFunc(out, func(a, b *models.Player) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *fakePlayerRepo) UpdateRating(ctx context.Context, exec repositories.SQLExecutor, id int, rating int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Rating = rating
	r.s.players[id] = p
	return nil
}

// ------------------------
// Fake Category Repository
// ------------------------

type fakeCategoryRepo struct{ s *fakeStore }

func (r *fakeCategoryRepo) Create(ctx context.Context, exec repositories.SQLExecutor, c *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return repositories.ErrCategoryNameConflict
		}
	}
	c.ID = r.s.nextID()
	c.CreatedAt = r.s.stamp()
	stored := *c
	stored.Registrations = nil
	r.s.categories[c.ID] = stored
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Category, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *fakeCategoryRepo) List(ctx context.Context, exec repositories.SQLExecutor, filter repositories.ListCategoriesFilter) ([]*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Category, 0)
	for _, c := range r.s.categories {
		c := c
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Format != nil && c.Format != *filter.Format {
			continue
		}
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *models.Category) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *fakeCategoryRepo) update(id int, fn func(c *models.Category)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return repositories.ErrCategoryNotFound
	}
	fn(&c)
	r.s.categories[id] = c
	return nil
}

func (r *fakeCategoryRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.CategoryStatus) error {
	return r.update(id, func(c *models.Category) { c.Status = status })
}

func (r *fakeCategoryRepo) UpdateWinner(ctx context.Context, exec repositories.SQLExecutor, id int, winnerPlayerID *int) error {
	return r.update(id, func(c *models.Category) { c.WinnerPlayerID = winnerPlayerID })
}

func (r *fakeCategoryRepo) UpdateGroupConfig(ctx context.Context, exec repositories.SQLExecutor, id int, groupSize, advancingPerGroup int) error {
	return r.update(id, func(c *models.Category) {
		c.GroupSize = groupSize
		c.AdvancingPerGroup = advancingPerGroup
	})
}

// ------------------------
// Fake Registration Repository
// ------------------------

type fakeRegistrationRepo struct{ s *fakeStore }

func (r *fakeRegistrationRepo) Add(ctx context.Context, exec repositories.SQLExecutor, reg *models.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.regs[reg.CategoryID] {
		if existing.PlayerID == reg.PlayerID {
			return repositories.ErrRegistrationConflict
		}
	}
	reg.RegisteredAt = r.s.stamp()
	r.s.regs[reg.CategoryID] = append(r.s.regs[reg.CategoryID], *reg)
	return nil
}

func (r *fakeRegistrationRepo) Remove(ctx context.Context, exec repositories.SQLExecutor, categoryID, playerID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	regs := r.s.regs[categoryID]
	for i, existing := range regs {
		if existing.PlayerID == playerID {
			r.s.regs[categoryID] = slices.Delete(slices.Clone(regs), i, i+1)
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) ListByCategory(ctx context.Context, exec repositories.SQLExecutor, categoryID int) ([]models.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.Registration{}, r.s.regs[categoryID]...), nil
}

// ------------------------
// Fake Group Repository
// ------------------------

type fakeGroupRepo struct{ s *fakeStore }

func (r *fakeGroupRepo) Create(ctx context.Context, exec repositories.SQLExecutor, g *models.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g.ID = r.s.nextID()
	g.CreatedAt = r.s.stamp()
	stored := *g
	stored.PlayerIDs = slices.Clone(g.PlayerIDs)
	stored.Matches = nil
	r.s.groups[g.ID] = stored
	return nil
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.groups[id]
	if !ok {
		return nil, repositories.ErrGroupNotFound
	}
	g.PlayerIDs = slices.Clone(g.PlayerIDs)
	return &g, nil
}

func (r *fakeGroupRepo) ListByCategory(ctx context.Context, exec repositories.SQLExecutor, categoryID int) ([]*models.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Group, 0)
	for _, g := range r.s.groups {
		g := g
		if g.CategoryID == categoryID {
			g.PlayerIDs = slices.Clone(g.PlayerIDs)
			out = append(out, &g)
		}
	}
	slices.SortFunc(out, func(a, b *models.Group) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// ------------------------
// Fake Match Repository
// ------------------------

type fakeMatchRepo struct{ s *fakeStore }

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.matches {
		if existing.CategoryID != m.CategoryID || existing.Stage != m.Stage {
			continue
		}
		if m.Stage == models.StageKnockout && existing.Round == m.Round && existing.Position == m.Position {
			return repositories.ErrMatchSlotConflict
		}
		if m.Stage == models.StageGroup && existing.GroupID != nil && m.GroupID != nil &&
			*existing.GroupID == *m.GroupID && existing.Position == m.Position {
			return repositories.ErrMatchSlotConflict
		}
	}
	m.ID = r.s.nextID()
	m.CreatedAt = r.s.stamp()
	if m.Sets == nil {
		m.Sets = []models.SetScore{}
	}
	r.s.matches[m.ID] = cloneMatch(*m)
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	m = cloneMatch(m)
	return &m, nil
}

func (r *fakeMatchRepo) GetByIDForUpdate(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *fakeMatchRepo) GetKnockoutMatch(ctx context.Context, exec repositories.SQLExecutor, categoryID, round, position int) (*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.matches {
		if m.CategoryID == categoryID && m.Stage == models.StageKnockout && m.Round == round && m.Position == position {
			m = cloneMatch(m)
			return &m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func matchOrder(a, b *models.Match) int {
	if c := cmp.Compare(a.Stage, b.Stage); c != 0 {
		return c
	}
	ga, gb := -1, -1
	if a.GroupID != nil {
		ga = *a.GroupID
	}
	if b.GroupID != nil {
		gb = *b.GroupID
	}
	if c := cmp.Compare(ga, gb); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Round, b.Round); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Position, b.Position); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func (r *fakeMatchRepo) ListByCategory(ctx context.Context, exec repositories.SQLExecutor, categoryID int, stage *models.MatchStage) ([]*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Match, 0)
	for _, m := range r.s.matches {
		m := m
		if m.CategoryID != categoryID || (stage != nil && m.Stage != *stage) {
			continue
		}
		m = cloneMatch(m)
		out = append(out, &m)
	}
	slices.SortFunc(out, matchOrder)
	return out, nil
}

func (r *fakeMatchRepo) ListByGroup(ctx context.Context, exec repositories.SQLExecutor, groupID int) ([]*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Match, 0)
	for _, m := range r.s.matches {
		m := m
		if m.GroupID != nil && *m.GroupID == groupID {
			m = cloneMatch(m)
			out = append(out, &m)
		}
	}
	slices.SortFunc(out, matchOrder)
	return out, nil
}

func (r *fakeMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.matches[m.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	stored.Status = m.Status
	stored.Sets = slices.Clone(m.Sets)
	stored.Player1Sets = m.Player1Sets
	stored.Player2Sets = m.Player2Sets
	stored.WinnerID = m.WinnerID
	stored.Player1RatingBefore = m.Player1RatingBefore
	stored.Player1RatingAfter = m.Player1RatingAfter
	stored.Player2RatingBefore = m.Player2RatingBefore
	stored.Player2RatingAfter = m.Player2RatingAfter
	stored.CompletedAt = m.CompletedAt
	r.s.matches[m.ID] = stored
	return nil
}

func (r *fakeMatchRepo) UpdateParticipants(ctx context.Context, exec repositories.SQLExecutor, matchID int, player1ID, player2ID *int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.matches[matchID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	stored.Player1ID = player1ID
	stored.Player2ID = player2ID
	r.s.matches[matchID] = stored
	return nil
}

func (r *fakeMatchRepo) DeleteByCategoryAndStage(ctx context.Context, exec repositories.SQLExecutor, categoryID int, stage models.MatchStage) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, m := range r.s.matches {
		if m.CategoryID == categoryID && m.Stage == stage {
			delete(r.s.matches, id)
			n++
		}
	}
	return n, nil
}

// ------------------------
// Fake Rating History Repository
// ------------------------

type fakeHistoryRepo struct{ s *fakeStore }

func (r *fakeHistoryRepo) Append(ctx context.Context, exec repositories.SQLExecutor, rec *models.RatingHistoryRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailAppendHistory != nil {
		return r.s.FailAppendHistory
	}
	rec.ID = r.s.nextID()
	rec.CreatedAt = r.s.stamp()
	r.s.history = append(r.s.history, *rec)
	return nil
}

func (r *fakeHistoryRepo) ListByPlayer(ctx context.Context, exec repositories.SQLExecutor, playerID int, limit int) ([]*models.RatingHistoryRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.RatingHistoryRecord, 0)
	for i := len(r.s.history) - 1; i >= 0; i-- {
		rec := r.s.history[i]
		if rec.PlayerID != playerID {
			continue
		}
		out = append(out, &rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// ------------------------
// Fake Archive Service
// ------------------------

type FakeArchiveService struct {
	mu       sync.Mutex
	archived []int

	ArchiveCategoryFunc func(ctx context.Context, categoryID int) (string, error)
}

func (f *FakeArchiveService) ArchiveCategory(ctx context.Context, categoryID int) (string, error) {
	f.mu.Lock()
	f.archived = append(f.archived, categoryID)
	f.mu.Unlock()
	if f.ArchiveCategoryFunc != nil {
		return f.ArchiveCategoryFunc(ctx, categoryID)
	}
	return "https://archive.test/" + archiveKey(categoryID), nil
}

func (f *FakeArchiveService) Archived() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.archived)
}

// ------------------------
// Test environment
// ------------------------

var errInjected = errors.New("injected failure")

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store      *fakeStore
	archive    *FakeArchiveService
	categories CategoryService
	results    ResultService
	players    PlayerService
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	tx := &fakeTransactor{store: store}
	locks := NewLocks()
	logger := slog.Default()
	archive := &FakeArchiveService{}

	categories := NewCategoryService(
		&fakeCategoryRepo{store}, &fakeRegistrationRepo{store}, &fakePlayerRepo{store},
		&fakeGroupRepo{store}, &fakeMatchRepo{store}, tx, locks, logger,
	)
	categories.(*categoryService).now = func() time.Time { return testNow }

	results := NewResultService(
		&fakeCategoryRepo{store}, &fakeRegistrationRepo{store}, &fakePlayerRepo{store},
		&fakeGroupRepo{store}, &fakeMatchRepo{store}, &fakeHistoryRepo{store}, tx, locks, archive, logger,
	)
	results.(*resultService).now = func() time.Time { return testNow }

	return &testEnv{
		store:      store,
		archive:    archive,
		categories: categories,
		results:    results,
		players:    NewPlayerService(&fakePlayerRepo{store}, &fakeHistoryRepo{store}, logger),
	}
}

// addPlayer stores an adult male player with the given rating and returns the new id.
func (e *testEnv) addPlayer(rating int) int {
	p := &models.Player{
		FirstName: "Player",
		LastName:  "Test",
		Rating:    rating,
		BirthDate: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Gender:    models.GenderMale,
	}
	_ = (&fakePlayerRepo{e.store}).Create(context.Background(), nil, p)
	return p.ID
}

func (e *testEnv) rating(playerID int) int {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return e.store.players[playerID].Rating
}

func (e *testEnv) categoryStatus(categoryID int) models.CategoryStatus {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return e.store.categories[categoryID].Status
}

func (e *testEnv) historyCount() int {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return len(e.store.history)
}

func (e *testEnv) matchesOf(categoryID int, stage models.MatchStage) []*models.Match {
	matches, _ := (&fakeMatchRepo{e.store}).ListByCategory(context.Background(), nil, categoryID, &stage)
	return matches
}
