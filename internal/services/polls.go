package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BallotAnswer struct {
	QuestionKey string `json:"questionKey"`
	Answer      string `json:"answer"`
}

// SubmitBallot replaces a user's previous answers for a poll: existence
// check, delete of the old responses, insert of the new ones and the
// submitted marker all commit or roll back together.
func SubmitBallot(db *sqlx.DB, pollID, userID string, answers []BallotAnswer) error {
	if len(answers) == 0 {
		return ErrBadRequest("No answers provided")
	}
	now := time.Now().UTC()
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.Get(&count, `SELECT count(*) FROM polls WHERE id = $1`, pollID); err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound("Poll not found")
	}
	if _, err := tx.Exec(`DELETE FROM poll_responses WHERE poll_id = $1 AND user_id = $2`, pollID, userID); err != nil {
		return err
	}
	for _, answer := range answers {
		_, err := tx.Exec(`
INSERT INTO poll_responses (id, poll_id, user_id, question_key, answer, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, uuid.NewString(), pollID, userID, answer.QuestionKey, answer.Answer, now)
		if err != nil {
			return err
		}
	}
	_, err = tx.Exec(`
INSERT INTO poll_submissions (poll_id, user_id, submitted_at)
VALUES ($1,$2,$3)
ON CONFLICT (poll_id, user_id) DO UPDATE SET submitted_at = EXCLUDED.submitted_at
`, pollID, userID, now)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func HasSubmittedBallot(db *sqlx.DB, pollID, userID string) (bool, error) {
	var count int
	err := db.Get(&count, `
SELECT count(*) FROM poll_submissions WHERE poll_id = $1 AND user_id = $2
`, pollID, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
