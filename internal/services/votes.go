package services

import (
	"database/sql"
	"errors"
	"time"

	"schoolportal-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

// VoteOutcome tells the caller which branch of the three-way toggle ran.
type VoteOutcome string

const (
	VoteCreated VoteOutcome = "created"
	VoteUpdated VoteOutcome = "updated"
	VoteRemoved VoteOutcome = "removed"
)

type VoteCounts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// CastSubmissionVote applies the toggle contract: no existing row inserts,
// the same type twice retracts, the opposite type replaces in place. At most
// one row per (user, submission) exists at any time.
func CastSubmissionVote(db *sqlx.DB, userID, submissionID, voteType string) (VoteOutcome, error) {
	return castVote(db, "submission_votes", "submission_id", userID, submissionID, voteType)
}

func CastCommentVote(db *sqlx.DB, userID, commentID, voteType string) (VoteOutcome, error) {
	return castVote(db, "comment_votes", "comment_id", userID, commentID, voteType)
}

func castVote(db *sqlx.DB, table, targetColumn, userID, targetID, voteType string) (VoteOutcome, error) {
	if voteType != models.VoteUp && voteType != models.VoteDown {
		return "", ErrBadRequest("Invalid vote type")
	}
	var current string
	err := db.Get(&current, `
SELECT vote_type FROM `+table+` WHERE user_id = $1 AND `+targetColumn+` = $2
`, userID, targetID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(`
INSERT INTO `+table+` (user_id, `+targetColumn+`, vote_type, created_at)
VALUES ($1,$2,$3,$4)
`, userID, targetID, voteType, time.Now().UTC())
		if err != nil {
			return "", err
		}
		return VoteCreated, nil
	case err != nil:
		return "", err
	case current == voteType:
		_, err = db.Exec(`
DELETE FROM `+table+` WHERE user_id = $1 AND `+targetColumn+` = $2
`, userID, targetID)
		if err != nil {
			return "", err
		}
		return VoteRemoved, nil
	default:
		_, err = db.Exec(`
UPDATE `+table+` SET vote_type = $1 WHERE user_id = $2 AND `+targetColumn+` = $3
`, voteType, userID, targetID)
		if err != nil {
			return "", err
		}
		return VoteUpdated, nil
	}
}

// Counts are grouped at read time; no running counter exists to drift.

func SubmissionVoteCounts(db *sqlx.DB, submissionID string) (VoteCounts, error) {
	return voteCounts(db, "submission_votes", "submission_id", submissionID)
}

func CommentVoteCounts(db *sqlx.DB, commentID string) (VoteCounts, error) {
	return voteCounts(db, "comment_votes", "comment_id", commentID)
}

func voteCounts(db *sqlx.DB, table, targetColumn, targetID string) (VoteCounts, error) {
	rows := []struct {
		VoteType string `db:"vote_type"`
		Total    int    `db:"total"`
	}{}
	err := db.Select(&rows, `
SELECT vote_type, count(*) AS total
FROM `+table+`
WHERE `+targetColumn+` = $1
GROUP BY vote_type
`, targetID)
	if err != nil {
		return VoteCounts{}, err
	}
	counts := VoteCounts{}
	for _, row := range rows {
		switch row.VoteType {
		case models.VoteUp:
			counts.Upvotes = row.Total
		case models.VoteDown:
			counts.Downvotes = row.Total
		}
	}
	return counts, nil
}
