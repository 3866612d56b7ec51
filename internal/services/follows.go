package services

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// FollowUser converges on following=true even when a concurrent request
// inserted the same edge first; the conflict is absorbed instead of
// surfaced.
func FollowUser(db *sqlx.DB, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrBadRequest("Cannot follow yourself")
	}
	var count int
	if err := db.Get(&count, `SELECT count(*) FROM users WHERE id = $1`, followeeID); err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound("User not found")
	}
	_, err := db.Exec(`
INSERT INTO follows (follower_id, followee_id, created_at)
VALUES ($1,$2,$3)
ON CONFLICT (follower_id, followee_id) DO NOTHING
`, followerID, followeeID, time.Now().UTC())
	return err
}

func UnfollowUser(db *sqlx.DB, followerID, followeeID string) error {
	_, err := db.Exec(`
DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2
`, followerID, followeeID)
	return err
}

func IsFollowing(db *sqlx.DB, followerID, followeeID string) (bool, error) {
	var count int
	err := db.Get(&count, `
SELECT count(*) FROM follows WHERE follower_id = $1 AND followee_id = $2
`, followerID, followeeID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func FollowerCount(db *sqlx.DB, userID string) (int, error) {
	var total int
	err := db.Get(&total, `SELECT count(*) FROM follows WHERE followee_id = $1`, userID)
	return total, err
}
