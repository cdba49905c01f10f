package geodaily

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/picplay/geodaily/internal/geo"
	"github.com/picplay/geodaily/internal/imageday"
)

// ImageProvider supplies the challenge image metadata for a given
// calendar day. Implementations cache so the upstream API is hit at
// most once per day.
type ImageProvider interface {
	TodayFor(ctx context.Context, day string) (imageday.Info, error)
}

// Resolver is the slice of the geolocation service the game needs.
type Resolver interface {
	Resolve(ctx context.Context, place string) (geo.Point, error)
}

// Service is the game core. All operations follow the same shape: load
// the snapshot, apply one change, save it back.
type Service struct {
	store    Store
	resolver Resolver
	images   ImageProvider
	now      func() time.Time
}

func NewService(store Store, resolver Resolver, images ImageProvider) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		images:   images,
		now:      time.Now,
	}
}

// WithClock replaces the service clock. Tests use it to pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the current challenge date, computed at call time.
func (s *Service) Today() string {
	return s.now().UTC().Format("2006-01-02")
}

// update is the unit of work wrapping every mutation: load the whole
// snapshot, run fn against it, save the whole snapshot. If fn errors
// the save is skipped and the stored state is untouched.
func (s *Service) update(ctx context.Context, fn func(*Snapshot) error) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: loading snapshot: %w", ErrStoreIO, err)
	}
	snap.normalize()

	if err := fn(snap); err != nil {
		return err
	}

	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("%w: saving snapshot: %w", ErrStoreIO, err)
	}
	return nil
}

// load reads the snapshot for read-only operations.
func (s *Service) load(ctx context.Context) (*Snapshot, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading snapshot: %w", ErrStoreIO, err)
	}
	snap.normalize()
	return snap, nil
}

// RegisterUser creates a new player with a cumulative score of zero.
func (s *Service) RegisterUser(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}

	return s.update(ctx, func(snap *Snapshot) error {
		if _, ok := snap.Users[username]; ok {
			return fmt.Errorf("%w: %q", ErrUserExists, username)
		}
		snap.Users[username] = User{Score: 0}
		return nil
	})
}

// UserExists reports whether the username is registered.
func (s *Service) UserExists(ctx context.Context, username string) (bool, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := snap.Users[username]
	return ok, nil
}

// TodayImage returns today's challenge image metadata.
func (s *Service) TodayImage(ctx context.Context) (imageday.Info, error) {
	return s.images.TodayFor(ctx, s.Today())
}

// ChallengeFor returns the challenge recorded for the given day, or
// ErrNoChallenge if none exists yet.
func (s *Service) ChallengeFor(ctx context.Context, date string) (*Challenge, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ch, ok := snap.Challenges[date]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoChallenge, date)
	}
	return ch, nil
}
