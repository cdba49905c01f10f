package geodaily

import "errors"

var (
	// ErrValidation covers bad caller input: empty location text, empty
	// or unregistered username.
	ErrValidation = errors.New("invalid input")
	// ErrResolution means an external lookup (geocoding, image of the
	// day) failed, so the guess could not be recorded.
	ErrResolution = errors.New("location could not be resolved")
	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("user already registered")
	// ErrUnknownUser means a finished challenge references a username
	// missing from the user table.
	ErrUnknownUser = errors.New("unknown user")
	// ErrNoChallenge means no challenge exists for the requested day.
	ErrNoChallenge = errors.New("no challenge for date")
	// ErrEmptyChallenge means scoring was attempted with zero guesses.
	ErrEmptyChallenge = errors.New("challenge has no guesses")
	// ErrNotScored means the award merge ran before the challenge was
	// scored.
	ErrNotScored = errors.New("challenge not scored yet")
	// ErrChallengeFinished rejects a first guess arriving after the
	// day's challenge was scored.
	ErrChallengeFinished = errors.New("challenge already finished")
	// ErrStoreIO wraps persistence failures. The prior snapshot stays
	// intact when it is returned.
	ErrStoreIO = errors.New("store i/o failed")
)
