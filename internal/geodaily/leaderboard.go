package geodaily

import (
	"context"
	"sort"
)

// Standing is one leaderboard row.
type Standing struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Leaderboard returns all players ordered by cumulative score, highest
// first. Equal scores are ordered by username so the output is
// deterministic.
func (s *Service) Leaderboard(ctx context.Context) ([]Standing, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]Standing, 0, len(snap.Users))
	for username, u := range snap.Users {
		standings = append(standings, Standing{Username: username, Score: u.Score})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		return standings[i].Username < standings[j].Username
	})
	return standings, nil
}
