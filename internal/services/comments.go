package services

import (
	"strings"
	"time"

	"schoolportal-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func CreateComment(db *sqlx.DB, submissionID, authorID, body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", ErrBadRequest("Comment body is required")
	}
	var count int
	if err := db.Get(&count, `SELECT count(*) FROM submissions WHERE id = $1`, submissionID); err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrNotFound("Submission not found")
	}
	commentID := uuid.NewString()
	_, err := db.Exec(`
INSERT INTO comments (id, submission_id, author_id, body, created_at)
VALUES ($1,$2,$3,$4,$5)
`, commentID, submissionID, authorID, body, time.Now().UTC())
	if err != nil {
		return "", err
	}
	return commentID, nil
}

func ListComments(db *sqlx.DB, submissionID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := db.Select(&comments, `
SELECT id, submission_id, author_id, body, created_at
FROM comments
WHERE submission_id = $1
ORDER BY created_at ASC
`, submissionID)
	return comments, err
}

func DeleteComment(db *sqlx.DB, commentID string) error {
	result, err := db.Exec(`DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound("Comment not found")
	}
	return nil
}
