package services

import (
	"database/sql"
	"errors"
	"time"

	"schoolportal-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// A ban row is active while unexpired; expiry is evaluated at read time and
// expired rows stay in place until an explicit unban.

func ActiveUserBan(db *sqlx.DB, userID string) (*models.UserBan, error) {
	ban := models.UserBan{}
	err := db.Get(&ban, `
SELECT id, user_id, reason, expires_at, created_by, created_at
FROM banned_users
WHERE user_id = $1 AND (expires_at IS NULL OR expires_at > $2)
ORDER BY created_at DESC
LIMIT 1
`, userID, time.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ban, nil
}

func IsUserBanned(db *sqlx.DB, userID string) (bool, error) {
	ban, err := ActiveUserBan(db, userID)
	if err != nil {
		return false, err
	}
	return ban != nil, nil
}

func IsIPBanned(db *sqlx.DB, ip string) (bool, error) {
	var count int
	err := db.Get(&count, `
SELECT count(*) FROM banned_ips
WHERE ip = $1 AND (expires_at IS NULL OR expires_at > $2)
`, ip, time.Now().UTC())
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func BanUser(db *sqlx.DB, userID string, reason *string, expiresAt *time.Time, actorID string) error {
	_, err := db.Exec(`
INSERT INTO banned_users (id, user_id, reason, expires_at, created_by, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, uuid.NewString(), userID, reason, expiresAt, actorID, time.Now().UTC())
	return err
}

// BanIP is an upsert: re-banning an already-banned IP replaces reason,
// expiry, actor and timestamp on the existing row.
func BanIP(db *sqlx.DB, ip string, reason *string, expiresAt *time.Time, actorID string) error {
	_, err := db.Exec(`
INSERT INTO banned_ips (id, ip, reason, expires_at, created_by, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (ip) DO UPDATE
SET reason = EXCLUDED.reason,
    expires_at = EXCLUDED.expires_at,
    created_by = EXCLUDED.created_by,
    created_at = EXCLUDED.created_at
`, uuid.NewString(), ip, reason, expiresAt, actorID, time.Now().UTC())
	return err
}

func UnbanUser(db *sqlx.DB, userID string) error {
	_, err := db.Exec(`DELETE FROM banned_users WHERE user_id = $1`, userID)
	return err
}

func UnbanIP(db *sqlx.DB, ip string) error {
	_, err := db.Exec(`DELETE FROM banned_ips WHERE ip = $1`, ip)
	return err
}

func ListUserBans(db *sqlx.DB, userID string) ([]models.UserBan, error) {
	bans := []models.UserBan{}
	err := db.Select(&bans, `
SELECT id, user_id, reason, expires_at, created_by, created_at
FROM banned_users
WHERE user_id = $1
ORDER BY created_at DESC
`, userID)
	return bans, err
}
