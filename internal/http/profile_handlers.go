package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"schoolportal-backend-go/internal/services"
)

type ProfileDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Class     *string   `json:"class,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Followers int       `json:"followers"`
}

type ProfileUpdateRequest struct {
	Bio   *string `json:"bio"`
	Class *string `json:"class"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := services.GetUser(s.DB, CurrentUserID(r))
	if err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	followers, err := services.FollowerCount(s.DB, user.ID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ProfileDTO{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Class:     user.Class,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
		Followers: followers,
	})
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.UpdateProfile(s.DB, CurrentUserID(r), req.Bio, req.Class); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	user, err := services.GetUser(s.DB, CurrentUserID(r))
	if err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if !s.Tokens.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	if err := services.SetPassword(s.DB, s.Tokens, user.ID, req.NewPassword, false); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
