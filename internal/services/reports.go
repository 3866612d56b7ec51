package services

import (
	"strings"
	"time"

	"schoolportal-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// FileSubmissionReport records a report unless the same reporter already has
// a pending one on the same submission. Resubmission is allowed once the
// prior report is resolved.
func FileSubmissionReport(db *sqlx.DB, reporterID, submissionID, reason string) (string, error) {
	return fileReport(db, "submission_reports", reporterID, submissionID, reason)
}

// FileCommentReport is additionally backed by a partial unique index on
// (reporter_id, target_id) WHERE status='pending', closing the
// check-then-insert race the application-level filter leaves open.
func FileCommentReport(db *sqlx.DB, reporterID, commentID, reason string) (string, error) {
	return fileReport(db, "comment_reports", reporterID, commentID, reason)
}

func fileReport(db *sqlx.DB, table, reporterID, targetID, reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", ErrBadRequest("Reason is required")
	}
	var pending int
	err := db.Get(&pending, `
SELECT count(*) FROM `+table+`
WHERE reporter_id = $1 AND target_id = $2 AND status = $3
`, reporterID, targetID, models.ReportPending)
	if err != nil {
		return "", err
	}
	if pending > 0 {
		return "", ErrConflict("Already reported")
	}
	reportID := uuid.NewString()
	_, err = db.Exec(`
INSERT INTO `+table+` (id, target_id, reporter_id, reason, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, reportID, targetID, reporterID, reason, models.ReportPending, time.Now().UTC())
	if err != nil {
		return "", err
	}
	return reportID, nil
}

func ResolveSubmissionReport(db *sqlx.DB, reportID, actorID, outcome string) error {
	return resolveReport(db, "submission_reports", reportID, actorID, outcome)
}

func ResolveCommentReport(db *sqlx.DB, reportID, actorID, outcome string) error {
	return resolveReport(db, "comment_reports", reportID, actorID, outcome)
}

func resolveReport(db *sqlx.DB, table, reportID, actorID, outcome string) error {
	if outcome != models.ReportReviewed && outcome != models.ReportDismissed {
		return ErrBadRequest("Invalid outcome")
	}
	result, err := db.Exec(`
UPDATE `+table+`
SET status = $1, reviewed_by = $2, reviewed_at = $3
WHERE id = $4
`, outcome, actorID, time.Now().UTC(), reportID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound("Report not found")
	}
	return nil
}

func ListPendingReports(db *sqlx.DB, table string, limit int) ([]models.Report, error) {
	reports := []models.Report{}
	err := db.Select(&reports, `
SELECT id, target_id, reporter_id, reason, status, reviewed_by, reviewed_at, created_at
FROM `+table+`
WHERE status = $1
ORDER BY created_at ASC
LIMIT $2
`, models.ReportPending, limit)
	return reports, err
}

func PendingSubmissionReports(db *sqlx.DB, limit int) ([]models.Report, error) {
	return ListPendingReports(db, "submission_reports", limit)
}

func PendingCommentReports(db *sqlx.DB, limit int) ([]models.Report, error) {
	return ListPendingReports(db, "comment_reports", limit)
}
