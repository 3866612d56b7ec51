package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"schoolportal-backend-go/internal/models"
	"schoolportal-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type BulkRequest struct {
	SubmissionIDs []string `json:"submissionIds"`
}

type AuditEntryDTO struct {
	Action    string    `json:"action"`
	ActorID   string    `json:"actorId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	if err := services.ApproveSubmission(s.DB, chi.URLParam(r, "submissionId"), CurrentUserID(r)); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": models.StatusApproved})
}

func (s *Server) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteSubmission(s.DB, chi.URLParam(r, "submissionId"), CurrentUserID(r)); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": models.StatusDeleted})
}

func (s *Server) RestoreSubmission(w http.ResponseWriter, r *http.Request) {
	if err := services.RestoreSubmission(s.DB, chi.URLParam(r, "submissionId"), CurrentUserID(r)); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": models.StatusPending})
}

func (s *Server) BulkApprove(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.BulkApproveSubmissions(s.DB, req.SubmissionIDs, CurrentUserID(r)); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"updated": len(req.SubmissionIDs)})
}

func (s *Server) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.BulkDeleteSubmissions(s.DB, req.SubmissionIDs, CurrentUserID(r)); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"updated": len(req.SubmissionIDs)})
}

func (s *Server) SubmissionAudit(w http.ResponseWriter, r *http.Request) {
	trail, err := services.SubmissionAuditTrail(s.DB, chi.URLParam(r, "submissionId"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]AuditEntryDTO, 0, len(trail))
	for _, entry := range trail {
		items = append(items, AuditEntryDTO{
			Action:    entry.Action,
			ActorID:   entry.ActorID,
			CreatedAt: entry.CreatedAt,
		})
	}
	WriteJSON(w, http.StatusOK, map[string][]AuditEntryDTO{"items": items})
}

type PendingReportsResponse struct {
	Submissions []models.Report `json:"submissions"`
	Comments    []models.Report `json:"comments"`
}

func (s *Server) PendingReports(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	submissionReports, err := services.PendingSubmissionReports(s.DB, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	commentReports, err := services.PendingCommentReports(s.DB, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, PendingReportsResponse{
		Submissions: submissionReports,
		Comments:    commentReports,
	})
}

type ResolveReportRequest struct {
	Outcome string `json:"outcome"`
}

func (s *Server) ResolveSubmissionReport(w http.ResponseWriter, r *http.Request) {
	var req ResolveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.ResolveSubmissionReport(s.DB, chi.URLParam(r, "reportId"), CurrentUserID(r), req.Outcome); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": req.Outcome})
}

func (s *Server) ResolveCommentReport(w http.ResponseWriter, r *http.Request) {
	var req ResolveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.ResolveCommentReport(s.DB, chi.URLParam(r, "reportId"), CurrentUserID(r), req.Outcome); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": req.Outcome})
}
