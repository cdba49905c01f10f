package server

import (
	"net/http"

	"github.com/picplay/geodaily/internal/geodaily"
)

type LeaderboardResponse struct {
	Standings []geodaily.Standing `json:"standings"`
}

func handleLeaderboard(game *geodaily.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := game.Leaderboard(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, LeaderboardResponse{Standings: standings})
	}
}
