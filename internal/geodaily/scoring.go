package geodaily

import (
	"context"
	"fmt"
	"sort"
)

// topAward is the award for the closest distance tier. Each subsequent
// distinct distance gets one point less, down to zero.
const topAward = 3

// ScoreChallenge ranks the day's guesses and fixes each one's award.
//
// Guesses are ordered by distance, closest first; a tie on the exact
// stored distance keeps submission order, and tied players share the
// better award rather than splitting it. Scoring a challenge that is
// already finished is a no-op, so the operation can be retried freely
// within the day.
func (s *Service) ScoreChallenge(ctx context.Context, date string) error {
	return s.update(ctx, func(snap *Snapshot) error {
		ch := snap.Challenges[date]
		if ch == nil {
			return fmt.Errorf("%w: %s", ErrNoChallenge, date)
		}
		if ch.Status == StatusFinished {
			return nil
		}
		if len(ch.Guesses) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyChallenge, date)
		}

		ranked := make([]*Guess, len(ch.Guesses))
		for i := range ch.Guesses {
			ranked[i] = &ch.Guesses[i]
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].DistanceKM < ranked[j].DistanceKM
		})

		award := topAward
		for i, g := range ranked {
			if i > 0 && g.DistanceKM != ranked[i-1].DistanceKM && award > 0 {
				award--
			}
			a := award
			g.Award = &a
		}

		ch.Status = StatusFinished
		return nil
	})
}

// ApplyChallengeAwards adds a finished challenge's awards to the
// players' cumulative scores, exactly once. The Merged flag, not the
// challenge status, is what makes repeat invocations inert.
func (s *Service) ApplyChallengeAwards(ctx context.Context, date string) error {
	return s.update(ctx, func(snap *Snapshot) error {
		ch := snap.Challenges[date]
		if ch == nil {
			return fmt.Errorf("%w: %s", ErrNoChallenge, date)
		}
		if ch.Status != StatusFinished {
			return fmt.Errorf("%w: %s", ErrNotScored, date)
		}
		if ch.Merged {
			return nil
		}

		for _, g := range ch.Guesses {
			u, ok := snap.Users[g.Username]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownUser, g.Username)
			}
			if g.Award != nil {
				u.Score += *g.Award
				snap.Users[g.Username] = u
			}
		}

		ch.Merged = true
		return nil
	})
}
