package httpapi

import (
	"encoding/json"
	"net/http"

	"schoolportal-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type VoteRequest struct {
	VoteType string `json:"voteType"`
}

type VoteResponse struct {
	Outcome services.VoteOutcome `json:"outcome"`
	Counts  services.VoteCounts  `json:"counts"`
}

func (s *Server) VoteSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submissionId")
	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	outcome, err := services.CastSubmissionVote(s.DB, CurrentUserID(r), submissionID, req.VoteType)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	counts, err := services.SubmissionVoteCounts(s.DB, submissionID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, VoteResponse{Outcome: outcome, Counts: counts})
}

func (s *Server) VoteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentId")
	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	outcome, err := services.CastCommentVote(s.DB, CurrentUserID(r), commentID, req.VoteType)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	counts, err := services.CommentVoteCounts(s.DB, commentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, VoteResponse{Outcome: outcome, Counts: counts})
}

type ReportRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) ReportSubmission(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	reportID, err := services.FileSubmissionReport(s.DB, CurrentUserID(r), chi.URLParam(r, "submissionId"), req.Reason)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"reportId": reportID})
}

func (s *Server) ReportComment(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	reportID, err := services.FileCommentReport(s.DB, CurrentUserID(r), chi.URLParam(r, "commentId"), req.Reason)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"reportId": reportID})
}
