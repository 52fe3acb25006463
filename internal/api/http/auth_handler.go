package http

import (
	"net/http"

	"crateledger-backend/internal/service"
	"crateledger-backend/internal/session"
)

type AuthHandler struct {
	authSvc  service.AuthService
	sessions *session.Store
}

func NewAuthHandler(authSvc service.AuthService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "username and password are required")
		return
	}

	token, user, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	sessionID := session.NewSessionID()
	if err := h.sessions.Save(r.Context(), sessionID, &session.State{}); err != nil {
		// Session state is a convenience; login still succeeds without it.
		sessionID = ""
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		SessionID: sessionID,
		Username:  user.Username,
		Role:      string(user.Role),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID := r.Header.Get("X-Session-ID"); sessionID != "" {
		_ = h.sessions.Delete(r.Context(), sessionID)
	}
	writeJSON(w, http.StatusNoContent, nil)
}
