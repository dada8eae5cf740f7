package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tabletennis/models"
	"github.com/Dosada05/tabletennis/services"
)

type MatchHandler struct {
	resultService services.ResultService
}

func NewMatchHandler(rs services.ResultService) *MatchHandler {
	return &MatchHandler{
		resultService: rs,
	}
}

type submitResultInput struct {
	Sets []models.SetScore `json:"sets"`
}

// SubmitResult godoc
// @Summary Record a match result
// @Description Settles ratings and advances the category. Re-submitting a completed match corrects it while the next round match is unplayed.
// @Tags matches
// @Accept json
// @Produce json
// @Param categoryID path int true "Category ID"
// @Param matchID path int true "Match ID"
// @Param input body submitResultInput true "Set scores"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid score"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Match not playable in current state"
// @Security BearerAuth
// @Router /categories/{categoryID}/matches/{matchID}/result [post]
func (h *MatchHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input submitResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Sets) == 0 {
		badRequestResponse(w, r, errors.New("sets are required"))
		return
	}

	category, err := h.resultService.SubmitResult(r.Context(), categoryID, matchID, input.Sets)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
