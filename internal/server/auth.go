package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
)

// Sessions maps opaque bearer tokens to usernames. Sessions are
// process-local; a restart logs everyone out, which is acceptable for
// a once-a-day game.
type Sessions struct {
	mu      sync.RWMutex
	byToken map[string]string
}

func NewSessions() *Sessions {
	return &Sessions{byToken: make(map[string]string)}
}

func (s *Sessions) Create(username string) string {
	b := make([]byte, 16)
	rand.Read(b)
	token := hex.EncodeToString(b)

	s.mu.Lock()
	s.byToken[token] = username
	s.mu.Unlock()
	return token
}

func (s *Sessions) Username(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.byToken[token]
	return username, ok
}

func (s *Sessions) Delete(token string) {
	s.mu.Lock()
	delete(s.byToken, token)
	s.mu.Unlock()
}

type ctxKey int

const ctxKeyUser ctxKey = iota

// authMiddleware resolves the bearer token and puts the username into
// the request context. The core operations take the identity as an
// explicit argument; nothing downstream reads ambient session state.
func authMiddleware(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(auth, "Bearer ")
			if !found || token == "" {
				writeError(w, http.StatusUnauthorized, "not logged in")
				return
			}

			username, ok := sessions.Username(token)
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func currentUser(r *http.Request) string {
	username, _ := r.Context().Value(ctxKeyUser).(string)
	return username
}

func sessionToken(r *http.Request) string {
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return token
}
