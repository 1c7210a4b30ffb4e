package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/football-championship/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// AddMatches records a batch of results. The batch is atomic: any invalid
// entry rejects the whole submission and the response carries only the
// per-entry error list.
func (h *MatchHandler) AddMatches(w http.ResponseWriter, r *http.Request) {
	var inputs []services.CreateMatchInput
	if err := readJSON(w, r, &inputs); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(inputs) == 0 {
		badRequestResponse(w, r, errors.New("at least one match is required"))
		return
	}

	result, err := h.matchService.AddMatches(r.Context(), inputs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusCreated
	if len(result.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}

	response := jsonResponse{
		"matches": result.Matches,
		"errors":  result.Errors,
	}
	if err := writeJSON(w, status, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("limit must be an integer"))
			return
		}
		limit = parsed
	}

	matches, err := h.matchService.ListRecentMatches(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
