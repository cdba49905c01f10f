package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/picplay/geodaily/internal/geodaily"
)

// Deps bundles what the handlers need.
type Deps struct {
	Game     *geodaily.Service
	Sessions *Sessions
	Checks   map[string]Checker
	// AdminPasswordHash guards POST /api/challenge/score when set.
	AdminPasswordHash string
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("GeoDaily API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.Checks))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", handleRegister(deps.Game))
		r.Post("/login", handleLogin(deps.Game, deps.Sessions))
		r.Post("/logout", handleLogout(deps.Sessions))
		r.Get("/leaderboard", handleLeaderboard(deps.Game))

		// Playing requires a session.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(deps.Sessions))
			r.Get("/challenge", handleChallenge(deps.Game))
			r.Post("/challenge/guess", handleGuess(deps.Game))
			r.Post("/challenge/score", handleScore(logger, deps.Game, deps.AdminPasswordHash))
		})
	})
}
