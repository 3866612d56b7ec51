package httpapi

import (
	"encoding/json"
	"net/http"

	"schoolportal-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Follow(w http.ResponseWriter, r *http.Request) {
	if err := services.FollowUser(s.DB, CurrentUserID(r), chi.URLParam(r, "userId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"following": true})
}

func (s *Server) Unfollow(w http.ResponseWriter, r *http.Request) {
	if err := services.UnfollowUser(s.DB, CurrentUserID(r), chi.URLParam(r, "userId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"following": false})
}

type BallotRequest struct {
	Answers []services.BallotAnswer `json:"answers"`
}

func (s *Server) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	var req BallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.SubmitBallot(s.DB, chi.URLParam(r, "pollId"), CurrentUserID(r), req.Answers); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "submitted"})
}
