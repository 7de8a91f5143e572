package handlers

import (
	"net/http"

	"github.com/Dosada05/doubles-rounds/services"
)

type ParticipantHandler struct {
	participantService services.ParticipantService
}

func NewParticipantHandler(ps services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: ps,
	}
}

// RegisterPair godoc
// @Summary Sign up a pair
// @Description Always accepted. Pairs beyond the limit are placed on the waitlist.
// @Tags pairs
// @Accept json
// @Produce json
// @Param slug path string true "Tournament slug"
// @Param input body services.RegisterPairInput true "Players"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /tournaments/{slug}/pairs [post]
func (h *ParticipantHandler) RegisterPair(w http.ResponseWriter, r *http.Request) {
	slug, err := getSlugFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RegisterPairInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pair, err := h.participantService.RegisterPair(r.Context(), slug, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"pair": pair}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPairs godoc
// @Summary Active pairs and waitlist
// @Tags pairs
// @Produce json
// @Param slug path string true "Tournament slug"
// @Success 200 {object} models.Roster
// @Failure 404 {object} map[string]string
// @Router /tournaments/{slug}/pairs [get]
func (h *ParticipantHandler) ListPairs(w http.ResponseWriter, r *http.Request) {
	slug, err := getSlugFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	roster, err := h.participantService.GetRoster(r.Context(), slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, roster, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemovePair godoc
// @Summary Remove a pair
// @Description Fails with 409 once the pair has scheduled matches.
// @Tags pairs
// @Param pairID path int true "Pair ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /pairs/{pairID} [delete]
func (h *ParticipantHandler) RemovePair(w http.ResponseWriter, r *http.Request) {
	pairID, err := getIDFromURL(r, "pairID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.participantService.RemovePair(r.Context(), pairID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
