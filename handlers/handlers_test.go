package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/tabletennis/models"
	"github.com/Dosada05/tabletennis/repositories"
	"github.com/Dosada05/tabletennis/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.Method(method, pattern, h)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrCategoryNotFound, http.StatusNotFound},
		{services.ErrPlayerNotFound, http.StatusNotFound},
		{services.ErrNotEligible, http.StatusBadRequest},
		{services.ErrInvalidScore, http.StatusBadRequest},
		{fmt.Errorf("%w: name is required", services.ErrValidationFailed), http.StatusBadRequest},
		{services.ErrCapacityExceeded, http.StatusConflict},
		{services.ErrDeadlinePassed, http.StatusConflict},
		{services.ErrMatchLocked, http.StatusConflict},
		{services.ErrCategoryNameConflict, http.StatusConflict},
		{services.ErrInsufficientPlayers, http.StatusUnprocessableEntity},
		{services.ErrInsufficientQualifiers, http.StatusUnprocessableEntity},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, decodeBody(t, rec), "error")
		})
	}
}

func TestRegisterHandler(t *testing.T) {
	var gotCategory, gotPlayer int
	fake := &FakeCategoryService{
		RegisterFunc: func(ctx context.Context, categoryID, playerID int) (*models.Category, error) {
			gotCategory, gotPlayer = categoryID, playerID
			return &models.Category{ID: categoryID, Status: models.StatusRegistration}, nil
		},
	}
	h := NewCategoryHandler(fake)

	rec := serve(t, http.MethodPost, "/categories/{categoryID}/registrations", "/categories/3/registrations", `{"player_id": 7}`, h.Register)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 3, gotCategory)
	assert.Equal(t, 7, gotPlayer)
	assert.Contains(t, decodeBody(t, rec), "category")

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"unknown field", "/categories/3/registrations", `{"player_id": 7, "seed": 1}`},
		{"missing player", "/categories/3/registrations", `{}`},
		{"bad category id", "/categories/abc/registrations", `{"player_id": 7}`},
		{"two documents", "/categories/3/registrations", `{"player_id": 7}{"player_id": 8}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, http.MethodPost, "/categories/{categoryID}/registrations", tt.target, tt.body, h.Register)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterHandlerMapsServiceErrors(t *testing.T) {
	fake := &FakeCategoryService{
		RegisterFunc: func(ctx context.Context, categoryID, playerID int) (*models.Category, error) {
			return nil, services.ErrCapacityExceeded
		},
	}
	h := NewCategoryHandler(fake)

	rec := serve(t, http.MethodPost, "/categories/{categoryID}/registrations", "/categories/3/registrations", `{"player_id": 7}`, h.Register)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), services.ErrCapacityExceeded.Error())
}

func TestCancelRegistrationHandler(t *testing.T) {
	fake := &FakeCategoryService{}
	h := NewCategoryHandler(fake)
	pattern := "/categories/{categoryID}/registrations/{playerID}"

	rec := serve(t, http.MethodDelete, pattern, "/categories/3/registrations/7", "", h.CancelRegistration)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	fake.CancelRegistrationFunc = func(ctx context.Context, categoryID, playerID int) error {
		return services.ErrDeadlinePassed
	}
	rec = serve(t, http.MethodDelete, pattern, "/categories/3/registrations/7", "", h.CancelRegistration)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(t, http.MethodDelete, pattern, "/categories/3/registrations/0", "", h.CancelRegistration)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartHandlerBodyIsOptional(t *testing.T) {
	var gotCfg *services.GroupConfig
	fake := &FakeCategoryService{
		StartFunc: func(ctx context.Context, categoryID int, cfg *services.GroupConfig) (*models.Category, error) {
			gotCfg = cfg
			return &models.Category{ID: categoryID, Status: models.StatusGroupStage}, nil
		},
	}
	h := NewCategoryHandler(fake)

	rec := serve(t, http.MethodPost, "/categories/{categoryID}/start", "/categories/5/start", "", h.Start)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, gotCfg)

	rec = serve(t, http.MethodPost, "/categories/{categoryID}/start", "/categories/5/start", `{"group_size": 3, "advancing_per_group": 1}`, h.Start)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, gotCfg)
	assert.Equal(t, services.GroupConfig{GroupSize: 3, AdvancingPerGroup: 1}, *gotCfg)

	fake.StartFunc = func(ctx context.Context, categoryID int, cfg *services.GroupConfig) (*models.Category, error) {
		return nil, services.ErrInsufficientPlayers
	}
	rec = serve(t, http.MethodPost, "/categories/{categoryID}/start", "/categories/5/start", "", h.Start)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStartHandlerChunkedEmptyBody(t *testing.T) {
	var called bool
	var gotCfg *services.GroupConfig
	fake := &FakeCategoryService{
		StartFunc: func(ctx context.Context, categoryID int, cfg *services.GroupConfig) (*models.Category, error) {
			called = true
			gotCfg = cfg
			return &models.Category{ID: categoryID, Status: models.StatusInProgress}, nil
		},
	}
	h := NewCategoryHandler(fake)
	router := chi.NewRouter()
	router.Post("/categories/{categoryID}/start", h.Start)

	req := httptest.NewRequest(http.MethodPost, "/categories/5/start", strings.NewReader(""))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, called)
	assert.Nil(t, gotCfg)

	rec = serve(t, http.MethodPost, "/categories/{categoryID}/start", "/categories/5/start", `{"group_size": `, h.Start)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCategoriesHandler(t *testing.T) {
	var got repositories.ListCategoriesFilter
	fake := &FakeCategoryService{
		ListCategoriesFunc: func(ctx context.Context, filter repositories.ListCategoriesFilter) ([]*models.Category, error) {
			got = filter
			return []*models.Category{{ID: 1}}, nil
		},
	}
	h := NewCategoryHandler(fake)

	rec := serve(t, http.MethodGet, "/categories", "/categories?status=GROUP_STAGE&format=ROUND_ROBIN&limit=5&offset=10", "", h.List)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Status)
	assert.Equal(t, models.StatusGroupStage, *got.Status)
	require.NotNil(t, got.Format)
	assert.Equal(t, models.FormatRoundRobin, *got.Format)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, 10, got.Offset)

	rec = serve(t, http.MethodGet, "/categories", "/categories", "", h.List)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got.Status)
	assert.Equal(t, defaultListLimit, got.Limit)

	for _, target := range []string{"/categories?status=PAUSED", "/categories?format=SWISS", "/categories?limit=-1", "/categories?offset=x"} {
		rec = serve(t, http.MethodGet, "/categories", target, "", h.List)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetBracketHandler(t *testing.T) {
	fake := &FakeCategoryService{
		GetBracketFunc: func(ctx context.Context, categoryID int) (*services.BracketView, error) {
			if categoryID != 4 {
				return nil, services.ErrCategoryNotFound
			}
			return &services.BracketView{
				Category: &models.Category{ID: 4},
				Groups:   []*models.Group{},
				Knockout: []*models.Match{{ID: 11, Round: 1, Position: 1}},
			}, nil
		},
	}
	h := NewCategoryHandler(fake)

	rec := serve(t, http.MethodGet, "/categories/{categoryID}/bracket", "/categories/4/bracket", "", h.GetBracket)
	require.Equal(t, http.StatusOK, rec.Code)
	var view services.BracketView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 4, view.Category.ID)
	require.Len(t, view.Knockout, 1)
	assert.Equal(t, 11, view.Knockout[0].ID)

	rec = serve(t, http.MethodGet, "/categories/{categoryID}/bracket", "/categories/9/bracket", "", h.GetBracket)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitResultHandler(t *testing.T) {
	var gotSets []models.SetScore
	var gotMatch int
	fake := &FakeResultService{
		SubmitResultFunc: func(ctx context.Context, categoryID, matchID int, sets []models.SetScore) (*models.Category, error) {
			gotMatch, gotSets = matchID, sets
			return &models.Category{ID: categoryID, Status: models.StatusInProgress}, nil
		},
	}
	h := NewMatchHandler(fake)
	pattern := "/categories/{categoryID}/matches/{matchID}/result"

	rec := serve(t, http.MethodPost, pattern, "/categories/2/matches/17/result", `{"sets": [{"p1": 11, "p2": 7}, {"p1": 9, "p2": 11}, {"p1": 11, "p2": 4}]}`, h.SubmitResult)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 17, gotMatch)
	assert.Equal(t, []models.SetScore{{P1: 11, P2: 7}, {P1: 9, P2: 11}, {P1: 11, P2: 4}}, gotSets)

	rec = serve(t, http.MethodPost, pattern, "/categories/2/matches/17/result", `{"sets": []}`, h.SubmitResult)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fake.SubmitResultFunc = func(ctx context.Context, categoryID, matchID int, sets []models.SetScore) (*models.Category, error) {
		return nil, services.ErrMatchNotReady
	}
	rec = serve(t, http.MethodPost, pattern, "/categories/2/matches/17/result", `{"sets": [{"p1": 11, "p2": 7}]}`, h.SubmitResult)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPlayerHandlers(t *testing.T) {
	var gotLimit int
	fake := &FakePlayerService{
		GetPlayerFunc: func(ctx context.Context, playerID int) (*models.Player, error) {
			if playerID == 1 {
				return &models.Player{ID: 1, FirstName: "Fan", LastName: "Zhendong", Rating: 1900}, nil
			}
			return nil, services.ErrPlayerNotFound
		},
		GetRatingHistoryFunc: func(ctx context.Context, playerID int, limit int) ([]*models.RatingHistoryRecord, error) {
			gotLimit = limit
			return []*models.RatingHistoryRecord{{PlayerID: playerID, Delta: 12}}, nil
		},
		CreatePlayerFunc: func(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error) {
			if input.FirstName == "" {
				return nil, fmt.Errorf("%w: first_name and last_name are required", services.ErrValidationFailed)
			}
			return &models.Player{ID: 2, FirstName: input.FirstName, LastName: input.LastName, Rating: models.DefaultRating}, nil
		},
	}
	h := NewPlayerHandler(fake)

	rec := serve(t, http.MethodGet, "/players/{playerID}", "/players/1", "", h.Get)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Zhendong")

	rec = serve(t, http.MethodGet, "/players/{playerID}", "/players/2", "", h.Get)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, http.MethodGet, "/players/{playerID}/rating-history", "/players/1/rating-history", "", h.RatingHistory)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.DefaultHistoryLimit, gotLimit)
	assert.Contains(t, decodeBody(t, rec), "history")

	rec = serve(t, http.MethodGet, "/players/{playerID}/rating-history", "/players/1/rating-history?limit=50", "", h.RatingHistory)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, gotLimit)

	rec = serve(t, http.MethodGet, "/players/{playerID}/rating-history", "/players/1/rating-history?limit=many", "", h.RatingHistory)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, http.MethodPost, "/players", "/players", `{"first_name": "Hina", "last_name": "Hayata", "birth_date": "2000-07-07T00:00:00Z", "gender": "female"}`, h.Create)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(t, http.MethodPost, "/players", "/players", `{"last_name": "Hayata", "birth_date": "2000-07-07T00:00:00Z", "gender": "female"}`, h.Create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
