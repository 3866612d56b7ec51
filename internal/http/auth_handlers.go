package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"schoolportal-backend-go/internal/models"
	"schoolportal-backend-go/internal/services"
)

type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Class    *string `json:"class"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID    string     `json:"userId"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	ExpiresAt int64      `json:"expiresAt"`
	Banned    bool       `json:"banned"`
	BanReason *string    `json:"banReason,omitempty"`
	BanEnds   *time.Time `json:"banExpiresAt,omitempty"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	banned, err := services.IsIPBanned(s.DB, resolveClientIP(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if banned {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	userID, err := services.CreateUser(s.DB, s.Tokens, req.Username, req.Password, models.RoleUser, req.Class)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"userId": userID, "username": strings.TrimSpace(req.Username)})
}

// Login checks the client IP against the ban registry before touching
// credentials, so a banned IP never learns whether a pair was valid.
// Credential failures are deliberately indistinguishable.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	banned, err := services.IsIPBanned(s.DB, resolveClientIP(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if banned {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	user, err := services.GetUserByUsername(s.DB, username)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	if !s.Tokens.VerifyPassword(req.Password, user.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	token, expiresAt, err := s.Tokens.IssueSession(user.ID, user.Role)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	ban, err := services.ActiveUserBan(s.DB, user.ID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	resp := LoginResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: expiresAt.Unix(),
	}
	if ban != nil {
		resp.Banned = true
		resp.BanReason = ban.Reason
		resp.BanEnds = ban.ExpiresAt
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Logout only clears the client-held cookie; there is no server-side session
// to revoke.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type HeartbeatResponse struct {
	Status    string     `json:"status"`
	Reason    *string    `json:"reason,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Heartbeat re-resolves the gate so the client can force a logout when the
// account is gone, or show a ban banner while reads stay open.
func (s *Server) Heartbeat(w http.ResponseWriter, r *http.Request) {
	resolution := CurrentResolution(r)
	if resolution.Anonymous() {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	if !resolution.Exists {
		WriteJSON(w, http.StatusOK, HeartbeatResponse{Status: "gone"})
		return
	}
	if resolution.Banned() {
		WriteJSON(w, http.StatusOK, HeartbeatResponse{
			Status:    "banned",
			Reason:    resolution.Ban.Reason,
			ExpiresAt: resolution.Ban.ExpiresAt,
		})
		return
	}
	WriteJSON(w, http.StatusOK, HeartbeatResponse{Status: "ok"})
}
