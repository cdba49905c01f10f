package geodaily

import (
	"context"
	"testing"
	"time"

	"github.com/picplay/geodaily/internal/geo"
	"github.com/picplay/geodaily/internal/imageday"
)

const testDay = "2026-09-01"

type fakeResolver struct {
	places map[string]geo.Point
}

func (r *fakeResolver) Resolve(_ context.Context, place string) (geo.Point, error) {
	p, ok := r.places[place]
	if !ok {
		return geo.Point{}, geo.ErrNotFound
	}
	return p, nil
}

type fakeProvider struct {
	info  imageday.Info
	calls int
}

func (p *fakeProvider) TodayFor(_ context.Context, _ string) (imageday.Info, error) {
	p.calls++
	return p.info, nil
}

// newTestService wires a service against an in-memory store with a
// pinned clock. The challenge image is located in "Peru"; a few guess
// places at increasing distances are resolvable.
func newTestService(t *testing.T) (*Service, *MemStore, *fakeProvider) {
	t.Helper()

	resolver := &fakeResolver{places: map[string]geo.Point{
		"Peru":      {Lat: 0, Lng: 0},
		"Ecuador":   {Lat: 0.05, Lng: 0},
		"Colombia":  {Lat: 0.10, Lng: 0},
		"Brazil":    {Lat: 0.40, Lng: 0},
		"Argentina": {Lat: 0.90, Lng: 0},
	}}
	provider := &fakeProvider{info: imageday.Info{
		Date:    testDay,
		URL:     "https://images.example/today.jpg",
		Title:   "Machu Picchu at dawn",
		Country: "Peru",
	}}
	store := NewMemStore()

	svc := NewService(store, resolver, provider).WithClock(func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	})
	return svc, store, provider
}

func mustRegister(t *testing.T, svc *Service, usernames ...string) {
	t.Helper()
	for _, u := range usernames {
		if err := svc.RegisterUser(context.Background(), u); err != nil {
			t.Fatalf("registering %q: %v", u, err)
		}
	}
}

func mustGuess(t *testing.T, svc *Service, username, place string) {
	t.Helper()
	if err := svc.RecordGuess(context.Background(), svc.Today(), username, place); err != nil {
		t.Fatalf("guess by %q: %v", username, err)
	}
}

// seedChallenge writes a challenge with preset guess distances straight
// into the store, bypassing intake.
func seedChallenge(t *testing.T, store *MemStore, date string, distances []float64) {
	t.Helper()
	ctx := context.Background()

	snap, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}
	snap.normalize()

	ch := &Challenge{Date: date, Location: "Peru", Status: StatusOpen}
	for i, d := range distances {
		username := string(rune('a' + i))
		snap.Users[username] = User{}
		ch.Guesses = append(ch.Guesses, Guess{
			Username:   username,
			RawText:    "somewhere",
			DistanceKM: d,
		})
	}
	snap.Challenges[date] = ch

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("saving snapshot: %v", err)
	}
}

func loadChallenge(t *testing.T, store *MemStore, date string) *Challenge {
	t.Helper()
	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}
	ch := snap.Challenges[date]
	if ch == nil {
		t.Fatalf("no challenge for %s", date)
	}
	return ch
}
