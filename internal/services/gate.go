package services

import (
	"database/sql"
	"errors"

	"schoolportal-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

// Resolution is the three-way outcome of identity resolution. The
// distinction between gone, banned and ok must survive to every call site:
// a missing referent forces a client-side logout, a ban keeps reads open
// while blocking writes, and neither is the same as an invalid token.
type Resolution struct {
	Session *Session
	Exists  bool
	Ban     *models.UserBan
}

func (r Resolution) Anonymous() bool {
	return r.Session == nil
}

func (r Resolution) Banned() bool {
	return r.Ban != nil
}

// CanWrite reports whether the identity may perform write operations.
func (r Resolution) CanWrite() bool {
	return r.Session != nil && r.Exists && r.Ban == nil
}

// ResolveIdentity verifies the raw token, confirms the referenced user still
// exists, and consults the ban registry. The role stored on the user row is
// authoritative; the token's role claim is only a hint that may be stale.
func ResolveIdentity(db *sqlx.DB, tokens TokenService, rawToken string) (Resolution, error) {
	session, ok := tokens.VerifySession(rawToken)
	if !ok {
		return Resolution{}, nil
	}
	var role string
	err := db.Get(&role, `SELECT role FROM users WHERE id = $1`, session.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return Resolution{Session: &session, Exists: false}, nil
	}
	if err != nil {
		return Resolution{}, err
	}
	session.Role = role
	ban, err := ActiveUserBan(db, session.UserID)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Session: &session, Exists: true, Ban: ban}, nil
}
