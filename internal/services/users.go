package services

import (
	"strings"
	"time"

	"schoolportal-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func CreateUser(db *sqlx.DB, tokens TokenService, username, password, role string, class *string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return "", ErrBadRequest("Username and password are required")
	}
	if role == "" {
		role = models.RoleUser
	}
	if !ValidRole(role) {
		return "", ErrBadRequest("Invalid role")
	}
	var exists int
	if err := db.Get(&exists, `SELECT count(*) FROM users WHERE username = $1`, username); err != nil {
		return "", err
	}
	if exists > 0 {
		return "", ErrConflict("Username already taken")
	}
	hash, err := tokens.HashPassword(password)
	if err != nil {
		return "", err
	}
	userID := uuid.NewString()
	_, err = db.Exec(`
INSERT INTO users (id, username, password_hash, role, class, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, userID, username, hash, role, class, time.Now().UTC())
	if err != nil {
		return "", err
	}
	return userID, nil
}

func ListUsers(db *sqlx.DB, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	users := []models.User{}
	err := db.Select(&users, `
SELECT id, username, password_hash, password_plain, role, class, bio, created_at
FROM users
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	return users, err
}

func GetUserByUsername(db *sqlx.DB, username string) (models.User, error) {
	user := models.User{}
	err := db.Get(&user, `
SELECT id, username, password_hash, password_plain, role, class, bio, created_at
FROM users
WHERE username = $1
`, username)
	return user, err
}

func GetUser(db *sqlx.DB, userID string) (models.User, error) {
	user := models.User{}
	err := db.Get(&user, `
SELECT id, username, password_hash, password_plain, role, class, bio, created_at
FROM users
WHERE id = $1
`, userID)
	return user, err
}

// SetPassword updates the hash; when keepPlain is set the plaintext mirror
// used by admin login links is written as well, otherwise it is cleared.
func SetPassword(db *sqlx.DB, tokens TokenService, userID, password string, keepPlain bool) error {
	hash, err := tokens.HashPassword(password)
	if err != nil {
		return err
	}
	var plain *string
	if keepPlain {
		plain = &password
	}
	result, err := db.Exec(`
UPDATE users SET password_hash = $1, password_plain = $2 WHERE id = $3
`, hash, plain, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound("User not found")
	}
	return nil
}

func SetRole(db *sqlx.DB, userID, role string) error {
	if !ValidRole(role) {
		return ErrBadRequest("Invalid role")
	}
	result, err := db.Exec(`UPDATE users SET role = $1 WHERE id = $2`, role, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound("User not found")
	}
	return nil
}

// DeleteUser removes the account; dependent rows (votes, reports, follows,
// ban rows on the user id) go with it via the schema's cascades.
func DeleteUser(db *sqlx.DB, userID string) error {
	_, err := db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	return err
}

func UpdateProfile(db *sqlx.DB, userID string, bio, class *string) error {
	_, err := db.Exec(`UPDATE users SET bio = $1, class = $2 WHERE id = $3`, bio, class, userID)
	return err
}
