package geodaily

import (
	"context"
	"errors"
	"testing"
)

func TestRecordGuessCreatesChallenge(t *testing.T) {
	svc, store, provider := newTestService(t)
	mustRegister(t, svc, "Ana")

	mustGuess(t, svc, "Ana", "Ecuador")

	ch := loadChallenge(t, store, testDay)
	if ch.Status != StatusOpen {
		t.Errorf("status = %q, want %q", ch.Status, StatusOpen)
	}
	if ch.Location != "Peru" {
		t.Errorf("location = %q, want Peru", ch.Location)
	}
	if len(ch.Guesses) != 1 {
		t.Fatalf("got %d guesses, want 1", len(ch.Guesses))
	}
	g := ch.Guesses[0]
	if g.Username != "Ana" || g.RawText != "Ecuador" {
		t.Errorf("guess = %+v", g)
	}
	if g.DistanceKM <= 0 {
		t.Errorf("distance = %v, want > 0", g.DistanceKM)
	}
	if g.Award != nil {
		t.Errorf("award set before scoring: %d", *g.Award)
	}
	if provider.calls != 1 {
		t.Errorf("image provider called %d times, want 1", provider.calls)
	}
}

func TestRecordGuessDuplicateIsNoOp(t *testing.T) {
	svc, store, _ := newTestService(t)
	mustRegister(t, svc, "Ana")

	mustGuess(t, svc, "Ana", "Ecuador")
	first := loadChallenge(t, store, testDay).Guesses[0]

	// Second submission must neither error nor overwrite.
	mustGuess(t, svc, "Ana", "Argentina")

	ch := loadChallenge(t, store, testDay)
	if len(ch.Guesses) != 1 {
		t.Fatalf("got %d guesses after duplicate, want 1", len(ch.Guesses))
	}
	g := ch.Guesses[0]
	if g.RawText != first.RawText {
		t.Errorf("raw text overwritten: %q -> %q", first.RawText, g.RawText)
	}
	if g.DistanceKM != first.DistanceKM {
		t.Errorf("distance recomputed: %v -> %v", first.DistanceKM, g.DistanceKM)
	}
}

func TestRecordGuessValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustRegister(t, svc, "Ana")
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		text     string
	}{
		{name: "empty location", username: "Ana", text: "   "},
		{name: "empty username", username: "", text: "Ecuador"},
		{name: "unregistered user", username: "Ghost", text: "Ecuador"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RecordGuess(ctx, svc.Today(), tt.username, tt.text)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRecordGuessUnresolvablePlaceRejected(t *testing.T) {
	svc, store, _ := newTestService(t)
	mustRegister(t, svc, "Ana")

	err := svc.RecordGuess(context.Background(), svc.Today(), "Ana", "Atlantis")
	if !errors.Is(err, ErrResolution) {
		t.Fatalf("expected ErrResolution, got %v", err)
	}

	// The challenge may exist, but no guess was recorded.
	snap, _ := store.Load(context.Background())
	if ch := snap.Challenges[testDay]; ch != nil && len(ch.Guesses) != 0 {
		t.Errorf("rejected guess was recorded: %+v", ch.Guesses)
	}
}

func TestRecordGuessAfterFinishRejected(t *testing.T) {
	svc, store, _ := newTestService(t)
	mustRegister(t, svc, "Ana", "Bo")
	ctx := context.Background()

	mustGuess(t, svc, "Ana", "Ecuador")
	if err := svc.ScoreChallenge(ctx, svc.Today()); err != nil {
		t.Fatalf("ScoreChallenge: %v", err)
	}

	// A newcomer is rejected after the day closed.
	err := svc.RecordGuess(ctx, svc.Today(), "Bo", "Colombia")
	if !errors.Is(err, ErrChallengeFinished) {
		t.Errorf("expected ErrChallengeFinished, got %v", err)
	}

	// A duplicate by an existing guesser stays a silent no-op.
	if err := svc.RecordGuess(ctx, svc.Today(), "Ana", "Colombia"); err != nil {
		t.Errorf("duplicate after finish should be a no-op, got %v", err)
	}

	ch := loadChallenge(t, store, testDay)
	if len(ch.Guesses) != 1 {
		t.Errorf("got %d guesses, want 1", len(ch.Guesses))
	}
}

func TestRecordGuessBackdatedDayRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustRegister(t, svc, "Ana")

	err := svc.RecordGuess(context.Background(), "2026-08-15", "Ana", "Ecuador")
	if !errors.Is(err, ErrNoChallenge) {
		t.Fatalf("expected ErrNoChallenge, got %v", err)
	}
}

func TestRegisterUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.RegisterUser(ctx, "Ana"); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if err := svc.RegisterUser(ctx, "Ana"); !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
	if err := svc.RegisterUser(ctx, "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for blank name, got %v", err)
	}

	ok, err := svc.UserExists(ctx, "Ana")
	if err != nil || !ok {
		t.Errorf("UserExists(Ana) = %v, %v; want true", ok, err)
	}
}
