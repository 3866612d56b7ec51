package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"schoolportal-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type CommentCreateRequest struct {
	Body string `json:"body"`
}

type CommentDTO struct {
	ID        string              `json:"id"`
	AuthorID  string              `json:"authorId"`
	Body      string              `json:"body"`
	CreatedAt time.Time           `json:"createdAt"`
	Votes     services.VoteCounts `json:"votes"`
}

func (s *Server) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req CommentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	commentID, err := services.CreateComment(s.DB, chi.URLParam(r, "submissionId"), CurrentUserID(r), req.Body)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"commentId": commentID})
}

func (s *Server) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := services.ListComments(s.DB, chi.URLParam(r, "submissionId"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]CommentDTO, 0, len(comments))
	for _, comment := range comments {
		counts, err := services.CommentVoteCounts(s.DB, comment.ID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		items = append(items, CommentDTO{
			ID:        comment.ID,
			AuthorID:  comment.AuthorID,
			Body:      comment.Body,
			CreatedAt: comment.CreatedAt,
			Votes:     counts,
		})
	}
	WriteJSON(w, http.StatusOK, map[string][]CommentDTO{"items": items})
}

func (s *Server) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteComment(s.DB, chi.URLParam(r, "commentId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
