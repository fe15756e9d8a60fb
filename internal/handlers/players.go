package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/versuslog/stats-api/internal/logic"
	"github.com/versuslog/stats-api/internal/models"
)

// playerTag pulls the tag path parameter. Tags carry '#', so clients
// send them percent-encoded.
func playerTag(r *http.Request) string {
	raw := chi.URLParam(r, "tag")
	if tag, err := url.PathUnescape(raw); err == nil {
		return tag
	}
	return raw
}

// GetPlayerOverview returns the profile header for a player
// @Summary Player Overview
// @Description Basic win/loss summary plus profile highlights
// @Tags Players
// @Produce json
// @Param tag path string true "Player tag (percent-encoded)"
// @Success 200 {object} models.PlayerOverviewResponse "Overview"
// @Failure 404 {object} map[string]string "Unknown Player"
// @Router /players/{tag} [get]
func (h *Handler) GetPlayerOverview(w http.ResponseWriter, r *http.Request) {
	tag := playerTag(r)
	if tag == "" {
		h.errorResponse(w, http.StatusBadRequest, "Player tag is required")
		return
	}

	var (
		summary    *models.PlayerStatsSummary
		highlights *models.PlayerHighlights
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		summary, err = h.playerStats.GetPlayerSummary(ctx, tag)
		return err
	})
	g.Go(func() error {
		var err error
		highlights, err = h.playerStats.GetPlayerHighlights(ctx, tag)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, logic.ErrPlayerNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Player not found")
			return
		}
		h.logger.Errorw("player overview failed", "tag", tag, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load player")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.PlayerOverviewResponse{
		Player:     *summary,
		Highlights: *highlights,
	})
}

// GetPlayerAnalysis returns the filtered breakdown for a player
// @Summary Player Analysis
// @Description Win rates grouped by character, opponent, opponent character, and day, under the requested facet filter
// @Tags Players
// @Produce json
// @Param tag path string true "Player tag (percent-encoded)"
// @Param character query string false "Own character filter (repeatable or comma-separated, 'all' for no filter)"
// @Param opponent query string false "Opponent tag filter"
// @Param opponent_character query string false "Opponent character filter"
// @Success 200 {object} models.DetailedAnalysisResult "Analysis"
// @Router /players/{tag}/analysis [get]
func (h *Handler) GetPlayerAnalysis(w http.ResponseWriter, r *http.Request) {
	tag := playerTag(r)
	if tag == "" {
		h.errorResponse(w, http.StatusBadRequest, "Player tag is required")
		return
	}

	query := r.URL.Query()
	filter := models.AnalysisFilter{
		Character:         facetFromQuery(query["character"]),
		Opponent:          facetFromQuery(query["opponent"]),
		OpponentCharacter: facetFromQuery(query["opponent_character"]),
	}

	result, err := h.playerStats.GetDetailedAnalysis(r.Context(), tag, filter)
	if err != nil {
		h.logger.Errorw("player analysis failed", "tag", tag, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to analyze player")
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}

// facetFromQuery builds a facet from repeated query parameters. Each
// value may itself be comma-separated. No values, or a lone "all",
// selects everything.
func facetFromQuery(values []string) models.Facet {
	var parts []string
	for _, v := range values {
		for _, piece := range strings.Split(v, ",") {
			if piece = strings.TrimSpace(piece); piece != "" {
				parts = append(parts, piece)
			}
		}
	}

	if len(parts) == 0 {
		return models.AllFacet()
	}
	if len(parts) == 1 && strings.EqualFold(parts[0], "all") {
		return models.AllFacet()
	}
	return models.FacetOf(parts...)
}

// GetPlayerMatches returns a player's recent games
// @Summary Recent Matches
// @Tags Players
// @Produce json
// @Param tag path string true "Player tag (percent-encoded)"
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} map[string]interface{} "Recent matches"
// @Router /players/{tag}/matches [get]
func (h *Handler) GetPlayerMatches(w http.ResponseWriter, r *http.Request) {
	tag := playerTag(r)
	if tag == "" {
		h.errorResponse(w, http.StatusBadRequest, "Player tag is required")
		return
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	views, err := h.playerStats.GetRecentMatches(r.Context(), tag, limit)
	if err != nil {
		h.logger.Errorw("recent matches failed", "tag", tag, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load matches")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"player_tag": tag,
		"matches":    views,
		"count":      len(views),
	})
}

// SearchPlayers finds players by tag fragment
// @Summary Search Players
// @Description Case-insensitive substring search over player tags, ranked by games played
// @Tags Players
// @Produce json
// @Param q query string true "Tag fragment"
// @Param min_games query int false "Minimum games played" default(0)
// @Success 200 {object} models.SearchResponse "Matches"
// @Router /players [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	minGames := 0
	if m := r.URL.Query().Get("min_games"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil && parsed >= 0 {
			minGames = parsed
		}
	}

	players, err := h.playerStats.SearchPlayers(r.Context(), query, minGames)
	if err != nil {
		h.logger.Errorw("player search failed", "query", query, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Search failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.SearchResponse{
		Query:   query,
		Players: players,
		Count:   len(players),
	})
}
