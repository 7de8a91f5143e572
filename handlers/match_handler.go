package handlers

import (
	"net/http"

	"github.com/Dosada05/doubles-rounds/services"
)

type MatchHandler struct {
	scheduleService services.ScheduleService
	matchService    services.MatchService
}

func NewMatchHandler(ss services.ScheduleService, ms services.MatchService) *MatchHandler {
	return &MatchHandler{
		scheduleService: ss,
		matchService:    ms,
	}
}

// GenerateSchedule godoc
// @Summary Generate the round-robin schedule
// @Description One-shot: every active pair meets every other active pair once. A second call returns 409 until the tournament is cleared.
// @Tags matches
// @Produce json
// @Param slug path string true "Tournament slug"
// @Success 201 {object} models.Schedule
// @Failure 400 {object} map[string]string "Fewer than 2 active pairs"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Schedule already generated"
// @Security BearerAuth
// @Router /tournaments/{slug}/schedule [post]
func (h *MatchHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	slug, err := getSlugFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.GenerateSchedule(r.Context(), slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, schedule, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatches godoc
// @Summary List matches ordered by round
// @Tags matches
// @Produce json
// @Param slug path string true "Tournament slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{slug}/matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	slug, err := getSlugFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.scheduleService.ListMatches(r.Context(), slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordScore godoc
// @Summary Record or correct a match score
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body services.RecordScoreInput true "Scores"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /matches/{matchID} [put]
func (h *MatchHandler) RecordScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordScore(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
