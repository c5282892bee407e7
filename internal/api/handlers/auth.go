package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dshapiro789/NationalParkExplorer/internal/api/middleware"
	"github.com/dshapiro789/NationalParkExplorer/internal/querycache"
	"github.com/dshapiro789/NationalParkExplorer/internal/remote"
)

// CredentialsRequest is the body for POST /auth/signin and /auth/signup.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// SignIn exchanges credentials for a session.
func SignIn(auth *remote.AuthClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		session, err := auth.SignIn(r.Context(), req.Email, req.Password)
		if errors.Is(err, remote.ErrInvalidCredentials) {
			middleware.WriteError(w, http.StatusUnauthorized, middleware.ErrUnauthorized, err.Error())
			return
		}
		if err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Sign-in failed, please try again")
			return
		}
		writeJSON(w, session)
	}
}

// SignUp registers a new account.
func SignUp(auth *remote.AuthClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		session, err := auth.SignUp(r.Context(), req.Email, req.Password, req.Username, req.FullName)
		if errors.Is(err, remote.ErrDuplicateRegistration) {
			middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, err.Error())
			return
		}
		if err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Sign-up failed, please try again")
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, session)
	}
}

// SignOutRequest is the body for POST /auth/signout.
type SignOutRequest struct {
	AccessToken string `json:"access_token"`
}

// SignOut revokes the session and clears the local query caches so the
// next user starts cold.
func SignOut(auth *remote.AuthClient, cache *querycache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignOutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		if err := auth.SignOut(r.Context(), req.AccessToken); err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUnavailable, "Sign-out failed")
			return
		}

		cache.Clear()
		w.WriteHeader(http.StatusNoContent)
	}
}
