// Package geodaily implements the daily guessing game: one challenge
// image per calendar day, one guess per player, rank-based awards by
// distance, and cumulative scores.
package geodaily

import "github.com/picplay/geodaily/internal/geo"

type ChallengeStatus string

const (
	StatusOpen     ChallengeStatus = "open"
	StatusFinished ChallengeStatus = "finished"
)

// User is a registered player. Score only changes through the one-shot
// award merge of a finished challenge.
type User struct {
	Score int `json:"score"`
}

// Guess is one player's submission for a challenge. DistanceKM is
// computed once at intake and never recomputed. Award stays nil until
// the challenge is scored.
type Guess struct {
	Username   string  `json:"username"`
	RawText    string  `json:"guess"`
	DistanceKM float64 `json:"distance"`
	Award      *int    `json:"score,omitempty"`
}

// Challenge is one day's round. Guesses is append-only while the
// challenge is open; its order is submission order, which breaks
// distance ties during scoring. Merged records that awards have been
// added to cumulative scores. It is kept separate from Status
// so re-running the merge cannot double-credit.
type Challenge struct {
	Date     string          `json:"date"`
	Location string          `json:"location"`
	Coords   geo.Point       `json:"coords"`
	Status   ChallengeStatus `json:"status"`
	Merged   bool            `json:"merged"`
	Guesses  []Guess         `json:"players"`
}

// GuessBy returns the user's guess, or nil if they have not guessed.
func (c *Challenge) GuessBy(username string) *Guess {
	for i := range c.Guesses {
		if c.Guesses[i].Username == username {
			return &c.Guesses[i]
		}
	}
	return nil
}

// Snapshot is the whole persisted store. Every mutation loads it,
// applies one change, and writes it back as a unit.
type Snapshot struct {
	Users      map[string]User       `json:"users"`
	Challenges map[string]*Challenge `json:"challenges"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:      make(map[string]User),
		Challenges: make(map[string]*Challenge),
	}
}

// normalize repairs nil maps after deserialization of older or
// hand-edited documents.
func (s *Snapshot) normalize() {
	if s.Users == nil {
		s.Users = make(map[string]User)
	}
	if s.Challenges == nil {
		s.Challenges = make(map[string]*Challenge)
	}
}
