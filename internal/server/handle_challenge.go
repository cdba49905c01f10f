package server

import (
	"errors"
	"net/http"

	"github.com/picplay/geodaily/internal/geodaily"
)

// ChallengeResponse is the player's view of today's round. The true
// location stays hidden while the challenge is open.
type ChallengeResponse struct {
	Date      string        `json:"date"`
	ImageURL  string        `json:"imageUrl"`
	Title     string        `json:"title"`
	Copyright string        `json:"copyright"`
	Status    string        `json:"status"`
	Location  string        `json:"location,omitempty"`
	YourGuess *GuessSummary `json:"yourGuess,omitempty"`
}

type GuessSummary struct {
	Guess      string  `json:"guess"`
	DistanceKM float64 `json:"distanceKm"`
	Award      *int    `json:"award,omitempty"`
}

type GuessRequest struct {
	Location string `json:"location"`
}

func handleChallenge(game *geodaily.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := game.TodayImage(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, "image of the day is unavailable")
			return
		}

		resp := ChallengeResponse{
			Date:      game.Today(),
			ImageURL:  info.URL,
			Title:     info.Title,
			Copyright: info.Copyright,
			Status:    string(geodaily.StatusOpen),
		}

		ch, err := game.ChallengeFor(r.Context(), game.Today())
		switch {
		case errors.Is(err, geodaily.ErrNoChallenge):
			// Nobody has guessed yet today.
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		default:
			resp.Status = string(ch.Status)
			if ch.Status == geodaily.StatusFinished {
				resp.Location = ch.Location
			}
			if g := ch.GuessBy(currentUser(r)); g != nil {
				resp.YourGuess = &GuessSummary{
					Guess:      g.RawText,
					DistanceKM: g.DistanceKM,
					Award:      g.Award,
				}
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func handleGuess(game *geodaily.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := game.RecordGuess(r.Context(), game.Today(), currentUser(r), req.Location)
		switch {
		case errors.Is(err, geodaily.ErrValidation):
			writeError(w, http.StatusBadRequest, "location is required")
		case errors.Is(err, geodaily.ErrResolution):
			writeError(w, http.StatusUnprocessableEntity, "location could not be resolved")
		case errors.Is(err, geodaily.ErrChallengeFinished):
			writeError(w, http.StatusConflict, "today's challenge is already scored")
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}
