package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"schoolportal-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

type AdminUserDTO struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	Class         *string   `json:"class,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	PasswordPlain *string   `json:"passwordPlain,omitempty"`
	LoginLink     *string   `json:"loginLink,omitempty"`
}

type AdminCreateUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Class    *string `json:"class"`
}

type AdminSetRoleRequest struct {
	Role string `json:"role"`
}

type AdminSetPasswordRequest struct {
	Password string `json:"password"`
}

type BanUserRequest struct {
	UserID    string     `json:"userId"`
	Reason    *string    `json:"reason"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type BanIPRequest struct {
	IP        string     `json:"ip"`
	Reason    *string    `json:"reason"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func loginLink(username, password string) string {
	return fmt.Sprintf("/login?username=%s&password=%s",
		url.QueryEscape(username), url.QueryEscape(password))
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	offset := parseInt(r.URL.Query().Get("offset"), 0)
	users, err := services.ListUsers(s.DB, limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]AdminUserDTO, 0, len(users))
	for _, user := range users {
		dto := AdminUserDTO{
			ID:            user.ID,
			Username:      user.Username,
			Role:          user.Role,
			Class:         user.Class,
			CreatedAt:     user.CreatedAt,
			PasswordPlain: user.PasswordPlain,
		}
		if user.PasswordPlain != nil {
			link := loginLink(user.Username, *user.PasswordPlain)
			dto.LoginLink = &link
		}
		items = append(items, dto)
	}
	WriteJSON(w, http.StatusOK, map[string][]AdminUserDTO{"items": items})
}

func (s *Server) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req AdminCreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	userID, err := services.CreateUser(s.DB, s.Tokens, req.Username, req.Password, req.Role, req.Class)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"userId": userID})
}

func (s *Server) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteUser(s.DB, chi.URLParam(r, "userId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdminSetRole(w http.ResponseWriter, r *http.Request) {
	var req AdminSetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.SetRole(s.DB, chi.URLParam(r, "userId"), req.Role); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"role": req.Role})
}

// AdminSetPassword keeps the plaintext mirror so the admin panel can hand
// out a ready-made login link for the new credentials.
func (s *Server) AdminSetPassword(w http.ResponseWriter, r *http.Request) {
	var req AdminSetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	userID := chi.URLParam(r, "userId")
	user, err := services.GetUser(s.DB, userID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err := services.SetPassword(s.DB, s.Tokens, userID, req.Password, true); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"loginLink": loginLink(user.Username, req.Password),
	})
}

func (s *Server) BanUser(w http.ResponseWriter, r *http.Request) {
	var req BanUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.UserID == "" {
		WriteError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if _, err := services.GetUser(s.DB, req.UserID); err != nil {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err := services.BanUser(s.DB, req.UserID, req.Reason, req.ExpiresAt, CurrentUserID(r)); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "banned"})
}

func (s *Server) UnbanUser(w http.ResponseWriter, r *http.Request) {
	if err := services.UnbanUser(s.DB, chi.URLParam(r, "userId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) BanIP(w http.ResponseWriter, r *http.Request) {
	var req BanIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.IP == "" {
		WriteError(w, http.StatusBadRequest, "ip is required")
		return
	}
	if err := services.BanIP(s.DB, req.IP, req.Reason, req.ExpiresAt, CurrentUserID(r)); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "banned"})
}

func (s *Server) UnbanIP(w http.ResponseWriter, r *http.Request) {
	if err := services.UnbanIP(s.DB, chi.URLParam(r, "ip")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
