package server

import (
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/picplay/geodaily/internal/geodaily"
)

type ScoreRequest struct {
	// AdminPassword must match the configured hash when one is set.
	AdminPassword string `json:"adminPassword,omitempty"`
}

// handleScore closes the current day: rank the guesses, fix the
// awards, then merge them into cumulative scores. Both steps are
// idempotent, so retrying after a partial failure is safe.
func handleScore(logger *slog.Logger, game *geodaily.Service, passwordHash string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScoreRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if passwordHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.AdminPassword)) != nil {
				writeError(w, http.StatusForbidden, "invalid admin password")
				return
			}
		}

		date := game.Today()

		err := game.ScoreChallenge(r.Context(), date)
		switch {
		case errors.Is(err, geodaily.ErrNoChallenge):
			writeError(w, http.StatusNotFound, "no challenge for today")
			return
		case errors.Is(err, geodaily.ErrEmptyChallenge):
			writeError(w, http.StatusConflict, "no guesses to score")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := game.ApplyChallengeAwards(r.Context(), date); err != nil {
			// Scoring stuck but merge failed; the next invocation will
			// retry the merge without re-awarding.
			logger.Error("merging awards failed", "date", date, "error", err)
			writeError(w, http.StatusInternalServerError, "scores recorded but not merged; retry")
			return
		}

		ch, err := game.ChallengeFor(r.Context(), date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, challengeResults(ch))
	}
}

type ResultRow struct {
	Username   string  `json:"username"`
	Guess      string  `json:"guess"`
	DistanceKM float64 `json:"distanceKm"`
	Award      int     `json:"award"`
}

type ScoreResponse struct {
	Date     string      `json:"date"`
	Location string      `json:"location"`
	Results  []ResultRow `json:"results"`
}

func challengeResults(ch *geodaily.Challenge) ScoreResponse {
	resp := ScoreResponse{
		Date:     ch.Date,
		Location: ch.Location,
		Results:  make([]ResultRow, 0, len(ch.Guesses)),
	}
	for _, g := range ch.Guesses {
		row := ResultRow{
			Username:   g.Username,
			Guess:      g.RawText,
			DistanceKM: g.DistanceKM,
		}
		if g.Award != nil {
			row.Award = *g.Award
		}
		resp.Results = append(resp.Results, row)
	}
	return resp
}
