package geodaily

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/picplay/geodaily/internal/geo"
)

// RecordGuess records one player's guess for the given challenge day.
//
// The first guess of the day creates the challenge: the image of the
// day is fetched, its location resolved, and the challenge opened. A
// repeated guess by the same player is a silent no-op; the original
// text and distance stay as they were.
//
// The external lookups (image metadata, geocoding) happen before the
// store transaction so the state transition itself stays pure.
func (s *Service) RecordGuess(ctx context.Context, date, username, rawText string) error {
	username = strings.TrimSpace(username)
	rawText = strings.TrimSpace(rawText)
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if rawText == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}

	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := snap.Users[username]; !ok {
		return fmt.Errorf("%w: user %q is not registered", ErrValidation, username)
	}

	ch := snap.Challenges[date]
	if ch != nil && ch.GuessBy(username) != nil {
		// Duplicate submission, nothing to resolve or write.
		return nil
	}
	if ch != nil && ch.Status == StatusFinished {
		return fmt.Errorf("%w: %s", ErrChallengeFinished, date)
	}

	// Determine the true location. An existing challenge already has
	// it; a new one takes it from today's image. Only today's challenge
	// may be created lazily, back-dated days have no image to pin.
	var location string
	var target geo.Point
	if ch != nil {
		location = ch.Location
		target = ch.Coords
	} else {
		if date != s.Today() {
			return fmt.Errorf("%w: %s", ErrNoChallenge, date)
		}
		info, err := s.images.TodayFor(ctx, date)
		if err != nil {
			return fmt.Errorf("%w: fetching image of the day: %w", ErrResolution, err)
		}
		location = info.Country
		target, err = s.resolvePlace(ctx, location)
		if err != nil {
			return err
		}
	}

	guessed, err := s.resolvePlace(ctx, rawText)
	if err != nil {
		return err
	}
	distance := geo.DistanceKM(target, guessed)

	return s.update(ctx, func(snap *Snapshot) error {
		if _, ok := snap.Users[username]; !ok {
			return fmt.Errorf("%w: user %q is not registered", ErrValidation, username)
		}

		ch := snap.Challenges[date]
		if ch == nil {
			ch = &Challenge{
				Date:     date,
				Location: location,
				Coords:   target,
				Status:   StatusOpen,
			}
			snap.Challenges[date] = ch
		}

		if ch.GuessBy(username) != nil {
			return nil
		}
		if ch.Status == StatusFinished {
			return fmt.Errorf("%w: %s", ErrChallengeFinished, date)
		}

		ch.Guesses = append(ch.Guesses, Guess{
			Username:   username,
			RawText:    rawText,
			DistanceKM: distance,
		})
		return nil
	})
}

func (s *Service) resolvePlace(ctx context.Context, place string) (geo.Point, error) {
	p, err := s.resolver.Resolve(ctx, place)
	if errors.Is(err, geo.ErrNotFound) {
		return geo.Point{}, fmt.Errorf("%w: %q", ErrResolution, place)
	}
	if err != nil {
		return geo.Point{}, fmt.Errorf("%w: resolving %q: %w", ErrResolution, place, err)
	}
	return p, nil
}
