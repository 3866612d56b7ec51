package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"schoolportal-backend-go/internal/models"
	"schoolportal-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type SubmissionCreateRequest struct {
	Body         string  `json:"body"`
	Category     string  `json:"category"`
	ContactName  *string `json:"contactName"`
	ContactPhone *string `json:"contactPhone"`
	MediaPath    *string `json:"mediaPath"`
}

type SubmissionDTO struct {
	ID         string              `json:"id"`
	AuthorID   string              `json:"authorId"`
	Body       string              `json:"body"`
	Category   string              `json:"category"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	ApprovedAt *time.Time          `json:"approvedAt,omitempty"`
	DeletedAt  *time.Time          `json:"deletedAt,omitempty"`
	Votes      services.VoteCounts `json:"votes"`
}

func (s *Server) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req SubmissionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	submissionID, err := services.CreateSubmission(s.DB, CurrentUserID(r), services.SubmissionInput{
		Body:         req.Body,
		Category:     req.Category,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		MediaPath:    req.MediaPath,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"submissionId": submissionID})
}

// ListSubmissions shows approved content to everyone; pending and deleted
// queues are reserved for moderators.
func (s *Server) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.StatusApproved
	}
	if status != models.StatusApproved && !services.CanModerate(CurrentRole(r)) {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	if limit > 200 {
		limit = 200
	}
	subs, err := services.ListSubmissions(s.DB, status, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]SubmissionDTO, 0, len(subs))
	for _, sub := range subs {
		counts, err := services.SubmissionVoteCounts(s.DB, sub.ID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		items = append(items, buildSubmissionDTO(sub, counts))
	}
	WriteJSON(w, http.StatusOK, map[string][]SubmissionDTO{"items": items})
}

func (s *Server) SubmissionDetail(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submissionId")
	sub, err := services.GetSubmission(s.DB, submissionID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Submission not found")
		return
	}
	if sub.Status != models.StatusApproved {
		resolution := CurrentResolution(r)
		isAuthor := resolution.Session != nil && resolution.Session.UserID == sub.AuthorID
		if !isAuthor && !services.CanModerate(CurrentRole(r)) {
			WriteError(w, http.StatusNotFound, "Submission not found")
			return
		}
	}
	counts, err := services.SubmissionVoteCounts(s.DB, sub.ID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildSubmissionDTO(sub, counts))
}

func buildSubmissionDTO(sub models.Submission, counts services.VoteCounts) SubmissionDTO {
	return SubmissionDTO{
		ID:         sub.ID,
		AuthorID:   sub.AuthorID,
		Body:       sub.Body,
		Category:   sub.Category,
		Status:     sub.Status,
		CreatedAt:  sub.CreatedAt,
		ApprovedAt: sub.ApprovedAt,
		DeletedAt:  sub.DeletedAt,
		Votes:      counts,
	}
}
