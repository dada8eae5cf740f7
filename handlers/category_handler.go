package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Dosada05/tabletennis/models"
	"github.com/Dosada05/tabletennis/repositories"
	"github.com/Dosada05/tabletennis/services"
)

const defaultListLimit = 20

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(cs services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: cs,
	}
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param input body services.CreateCategoryInput true "Category"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Name already taken"
// @Security BearerAuth
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCategoryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param status query string false "Status filter"
// @Param format query string false "Format filter"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{}
// @Router /categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListCategoriesFilter
	query := r.URL.Query()

	if statusStr := query.Get("status"); statusStr != "" {
		status := models.CategoryStatus(statusStr)
		if !status.Valid() {
			badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
		filter.Status = &status
	}
	if formatStr := query.Get("format"); formatStr != "" {
		format := models.CategoryFormat(formatStr)
		if !format.Valid() {
			badRequestResponse(w, r, errors.New("invalid format query parameter"))
			return
		}
		filter.Format = &format
	}

	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	filter.Limit = limit
	filter.Offset = offset

	categories, err := h.categoryService.ListCategories(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"categories": categories}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get godoc
// @Summary Get a category with its registrations
// @Tags categories
// @Produce json
// @Param categoryID path int true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /categories/{categoryID} [get]
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type registerInput struct {
	PlayerID int `json:"player_id"`
}

// Register godoc
// @Summary Register a player
// @Description Registering an already registered player is a no-op.
// @Tags registrations
// @Accept json
// @Produce json
// @Param categoryID path int true "Category ID"
// @Param input body registerInput true "Player"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Player not eligible"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Registration closed or category full"
// @Router /categories/{categoryID}/registrations [post]
func (h *CategoryHandler) Register(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input registerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.PlayerID <= 0 {
		badRequestResponse(w, r, errors.New("player_id is required"))
		return
	}

	category, err := h.categoryService.Register(r.Context(), categoryID, input.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CancelRegistration godoc
// @Summary Withdraw a player
// @Description Allowed until five days before the start date.
// @Tags registrations
// @Param categoryID path int true "Category ID"
// @Param playerID path int true "Player ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Deadline passed or category started"
// @Router /categories/{categoryID}/registrations/{playerID} [delete]
func (h *CategoryHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.categoryService.CancelRegistration(r.Context(), categoryID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Close godoc
// @Summary Close registration
// @Tags categories
// @Produce json
// @Param categoryID path int true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /categories/{categoryID}/close [post]
func (h *CategoryHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.categoryService.CloseRegistration)
}

// Reopen godoc
// @Summary Reopen registration
// @Tags categories
// @Produce json
// @Param categoryID path int true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /categories/{categoryID}/reopen [post]
func (h *CategoryHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.categoryService.ReopenRegistration)
}

// Start godoc
// @Summary Draw the category and start play
// @Description Group settings in the body apply to GROUPS_THEN_ELIMINATION only.
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryID path int true "Category ID"
// @Param input body services.GroupConfig false "Group settings"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string "Not enough players or qualifiers"
// @Security BearerAuth
// @Router /categories/{categoryID}/start [post]
func (h *CategoryHandler) Start(w http.ResponseWriter, r *http.Request) {
	var cfg services.GroupConfig
	hasBody, err := readOptionalJSON(w, r, &cfg)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var override *services.GroupConfig
	if hasBody {
		override = &cfg
	}

	h.transition(w, r, func(ctx context.Context, categoryID int) (*models.Category, error) {
		return h.categoryService.Start(ctx, categoryID, override)
	})
}

func (h *CategoryHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, categoryID int) (*models.Category, error)) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	category, err := apply(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatches godoc
// @Summary List all matches of a category
// @Tags matches
// @Produce json
// @Param categoryID path int true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /categories/{categoryID}/matches [get]
func (h *CategoryHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.categoryService.ListMatches(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGroups godoc
// @Summary List groups with their matches
// @Tags groups
// @Produce json
// @Param categoryID path int true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /categories/{categoryID}/groups [get]
func (h *CategoryHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.categoryService.ListGroups(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracket godoc
// @Summary Category, groups and knockout tree in one document
// @Tags matches
// @Produce json
// @Param categoryID path int true "Category ID"
// @Success 200 {object} services.BracketView
// @Failure 404 {object} map[string]string
// @Router /categories/{categoryID}/bracket [get]
func (h *CategoryHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.categoryService.GetBracket(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStandings godoc
// @Summary Group tables
// @Description Ranked by points (2 per win, 1 per loss), then wins, then set difference.
// @Tags groups
// @Produce json
// @Param categoryID path int true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /categories/{categoryID}/standings [get]
func (h *CategoryHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tables, err := h.categoryService.GetStandings(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": tables}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
