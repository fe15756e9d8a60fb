package handlers

import (
	"net/http"
	"strconv"

	"github.com/versuslog/stats-api/internal/models"
)

// GetLeaderboard returns ranked players by win rate
// @Summary Global Leaderboard
// @Description Players ranked by win rate; ties broken by games played, then tag
// @Tags Leaderboards
// @Produce json
// @Param min_games query int false "Minimum games to qualify"
// @Param limit query int false "Limit"
// @Success 200 {object} models.LeaderboardResponse "Leaderboard"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	minGames := h.leaderboardMinGames
	if m := r.URL.Query().Get("min_games"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil && parsed >= 0 {
			minGames = parsed
		}
	}

	limit := h.leaderboardLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	board, err := h.playerStats.GetLeaderboard(r.Context(), minGames, limit)
	if err != nil {
		h.logger.Errorw("leaderboard failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to build leaderboard")
		return
	}

	entries := make([]models.LeaderboardEntry, 0, len(board))
	for i, row := range board {
		entries = append(entries, models.LeaderboardEntry{
			Rank:               i + 1,
			PlayerStatsSummary: row,
		})
	}

	h.jsonResponse(w, http.StatusOK, models.LeaderboardResponse{
		Entries:  entries,
		Total:    len(entries),
		MinGames: minGames,
	})
}
