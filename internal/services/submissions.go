package services

import (
	"fmt"
	"strings"
	"time"

	"schoolportal-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SubmissionInput struct {
	Body         string
	Category     string
	ContactName  *string
	ContactPhone *string
	MediaPath    *string
}

// CreateSubmission inserts the submission as pending together with its
// 'create' audit row. The two inserts share one transaction: no submission
// may exist without the first entry of its history.
func CreateSubmission(db *sqlx.DB, authorID string, input SubmissionInput) (string, error) {
	body := strings.TrimSpace(input.Body)
	category := strings.TrimSpace(input.Category)
	if body == "" || category == "" {
		return "", ErrBadRequest("Body and category are required")
	}
	now := time.Now().UTC()
	submissionID := uuid.NewString()
	tx, err := db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()
	_, err = tx.Exec(`
INSERT INTO submissions (id, author_id, body, category, contact_name, contact_phone, media_path, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, submissionID, authorID, body, category, input.ContactName, input.ContactPhone, input.MediaPath, models.StatusPending, now)
	if err != nil {
		return "", err
	}
	if err := insertAudit(tx, submissionID, models.AuditCreate, authorID, now); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return submissionID, nil
}

// ApproveSubmission moves the submission to approved regardless of its
// current status. An approve on a deleted submission is a one-step moderator
// override; the audit row still records the jump.
func ApproveSubmission(db *sqlx.DB, submissionID, actorID string) error {
	now := time.Now().UTC()
	return transition(db, submissionID, models.AuditApprove, actorID, now, `
UPDATE submissions
SET status = $1, approved_by = $2, approved_at = $3, deleted_by = NULL, deleted_at = NULL
WHERE id = $4
`, models.StatusApproved, actorID, now, submissionID)
}

func DeleteSubmission(db *sqlx.DB, submissionID, actorID string) error {
	now := time.Now().UTC()
	return transition(db, submissionID, models.AuditDelete, actorID, now, `
UPDATE submissions
SET status = $1, deleted_by = $2, deleted_at = $3, approved_by = NULL, approved_at = NULL
WHERE id = $4
`, models.StatusDeleted, actorID, now, submissionID)
}

// RestoreSubmission always returns the submission to pending; it never jumps
// straight back to approved.
func RestoreSubmission(db *sqlx.DB, submissionID, actorID string) error {
	now := time.Now().UTC()
	return transition(db, submissionID, models.AuditRestore, actorID, now, `
UPDATE submissions
SET status = $1, approved_by = NULL, approved_at = NULL, deleted_by = NULL, deleted_at = NULL
WHERE id = $2
`, models.StatusPending, submissionID)
}

func transition(db *sqlx.DB, submissionID, action, actorID string, now time.Time, query string, args ...interface{}) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	result, err := tx.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound("Submission not found")
	}
	if err := insertAudit(tx, submissionID, action, actorID, now); err != nil {
		return err
	}
	return tx.Commit()
}

func BulkApproveSubmissions(db *sqlx.DB, submissionIDs []string, actorID string) error {
	return bulkTransition(db, submissionIDs, actorID, models.AuditApprove, `
UPDATE submissions
SET status = '`+models.StatusApproved+`', approved_by = $1, approved_at = $2, deleted_by = NULL, deleted_at = NULL
WHERE id IN (%s)
`)
}

func BulkDeleteSubmissions(db *sqlx.DB, submissionIDs []string, actorID string) error {
	return bulkTransition(db, submissionIDs, actorID, models.AuditDelete, `
UPDATE submissions
SET status = '`+models.StatusDeleted+`', deleted_by = $1, deleted_at = $2, approved_by = NULL, approved_at = NULL
WHERE id IN (%s)
`)
}

// bulkTransition applies one batched status update plus one audit row per id,
// all inside a single transaction.
func bulkTransition(db *sqlx.DB, submissionIDs []string, actorID, action, queryTemplate string) error {
	if len(submissionIDs) == 0 {
		return ErrBadRequest("No submissions selected")
	}
	now := time.Now().UTC()
	placeholders := make([]string, 0, len(submissionIDs))
	args := []interface{}{actorID, now}
	for i, id := range submissionIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+3))
		args = append(args, id)
	}
	query := fmt.Sprintf(queryTemplate, strings.Join(placeholders, ","))

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	result, err := tx.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected != int64(len(submissionIDs)) {
		return ErrNotFound("Submission not found")
	}
	for _, id := range submissionIDs {
		if err := insertAudit(tx, id, action, actorID, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertAudit(tx *sqlx.Tx, submissionID, action, actorID string, now time.Time) error {
	_, err := tx.Exec(`
INSERT INTO submission_audit (id, submission_id, action, actor_id, created_at)
VALUES ($1,$2,$3,$4,$5)
`, uuid.NewString(), submissionID, action, actorID, now)
	return err
}

func GetSubmission(db *sqlx.DB, submissionID string) (models.Submission, error) {
	sub := models.Submission{}
	err := db.Get(&sub, `
SELECT id, author_id, body, category, contact_name, contact_phone, media_path,
       status, approved_by, approved_at, deleted_by, deleted_at, created_at
FROM submissions
WHERE id = $1
`, submissionID)
	return sub, err
}

func ListSubmissions(db *sqlx.DB, status string, limit int) ([]models.Submission, error) {
	subs := []models.Submission{}
	err := db.Select(&subs, `
SELECT id, author_id, body, category, contact_name, contact_phone, media_path,
       status, approved_by, approved_at, deleted_by, deleted_at, created_at
FROM submissions
WHERE status = $1
ORDER BY created_at DESC
LIMIT $2
`, status, limit)
	return subs, err
}

func SubmissionAuditTrail(db *sqlx.DB, submissionID string) ([]models.SubmissionAudit, error) {
	trail := []models.SubmissionAudit{}
	err := db.Select(&trail, `
SELECT id, submission_id, action, actor_id, created_at
FROM submission_audit
WHERE submission_id = $1
ORDER BY created_at ASC, id ASC
`, submissionID)
	return trail, err
}
