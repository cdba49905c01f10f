package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/picplay/geodaily/internal/geodaily"
)

type RegisterRequest struct {
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func handleRegister(game *geodaily.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := game.RegisterUser(r.Context(), req.Username)
		if errors.Is(err, geodaily.ErrUserExists) {
			writeError(w, http.StatusConflict, "username is already taken")
			return
		}
		if errors.Is(err, geodaily.ErrValidation) {
			writeError(w, http.StatusBadRequest, "username is required")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{
			"username": strings.TrimSpace(req.Username),
		})
	}
}

func handleLogin(game *geodaily.Service, sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		username := strings.TrimSpace(req.Username)
		if username == "" {
			writeError(w, http.StatusBadRequest, "username is required")
			return
		}

		ok, err := game.UserExists(r.Context(), username)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !ok {
			writeError(w, http.StatusUnauthorized, "incorrect username")
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Token:    sessions.Create(username),
			Username: username,
		})
	}
}

func handleLogout(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := sessionToken(r); token != "" {
			sessions.Delete(token)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
