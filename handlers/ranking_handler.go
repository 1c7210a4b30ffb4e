package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/football-championship/schedule"
	"github.com/Dosada05/football-championship/services"
	"github.com/go-chi/chi/v5"
)

type RankingHandler struct {
	rankingService services.RankingService
	teamService    services.TeamService
}

func NewRankingHandler(rankingService services.RankingService, teamService services.TeamService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
		teamService:    teamService,
	}
}

func (h *RankingHandler) GetGroupRankings(w http.ResponseWriter, r *http.Request) {
	groupNumber, err := getGroupNumberFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.rankingService.RankGroup(r.Context(), groupNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rankings": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RankingHandler) GetOutcome(w http.ResponseWriter, r *http.Request) {
	groupNumber, err := getGroupNumberFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamName := chi.URLParam(r, "teamName")

	progressed, err := h.rankingService.GetOutcomeForTeam(r.Context(), teamName, groupNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"outcome": progressed}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RankingHandler) GetGroupFixtures(w http.ResponseWriter, r *http.Request) {
	groupNumber, err := getGroupNumberFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	legs := 1
	if raw := r.URL.Query().Get("legs"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || (parsed != 1 && parsed != 2) {
			badRequestResponse(w, r, errors.New("legs must be 1 or 2"))
			return
		}
		legs = parsed
	}

	teams, err := h.teamService.ListTeamsByGroup(r.Context(), groupNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	fixtures, err := schedule.RoundRobin(teams, legs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
