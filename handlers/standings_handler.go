package handlers

import (
	"net/http"

	"github.com/Dosada05/doubles-rounds/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GetStandings godoc
// @Summary Current standings
// @Description Recomputed from the recorded scores on every request. score_check lists rounds whose score total differs from the usual one; it is informational only.
// @Tags standings
// @Produce json
// @Param slug path string true "Tournament slug"
// @Success 200 {object} services.StandingsView
// @Failure 404 {object} map[string]string
// @Router /tournaments/{slug}/standings [get]
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	slug, err := getSlugFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.standingsService.GetStandings(r.Context(), slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBoard godoc
// @Summary Everything the public board shows
// @Tags standings
// @Produce json
// @Param slug path string true "Tournament slug"
// @Success 200 {object} models.Board
// @Failure 404 {object} map[string]string
// @Router /tournaments/{slug}/board [get]
func (h *StandingsHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	slug, err := getSlugFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	board, err := h.standingsService.GetBoard(r.Context(), slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, board, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportSnapshot godoc
// @Summary Upload a standings snapshot to object storage
// @Tags standings
// @Produce json
// @Param slug path string true "Tournament slug"
// @Success 201 {object} storage.UploadResult
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string "Storage not configured"
// @Security BearerAuth
// @Router /tournaments/{slug}/export [post]
func (h *StandingsHandler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	slug, err := getSlugFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.standingsService.ExportSnapshot(r.Context(), slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
