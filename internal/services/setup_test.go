package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  password_plain TEXT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  class TEXT NULL,
  bio TEXT NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE submissions (
  id TEXT PRIMARY KEY,
  author_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  body TEXT NOT NULL,
  category TEXT NOT NULL,
  contact_name TEXT NULL,
  contact_phone TEXT NULL,
  media_path TEXT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  approved_by TEXT NULL,
  approved_at TIMESTAMP NULL,
  deleted_by TEXT NULL,
  deleted_at TIMESTAMP NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE submission_audit (
  id TEXT PRIMARY KEY,
  submission_id TEXT NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
  action TEXT NOT NULL,
  actor_id TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE comments (
  id TEXT PRIMARY KEY,
  submission_id TEXT NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
  author_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  body TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE submission_votes (
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  submission_id TEXT NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
  vote_type TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  PRIMARY KEY (user_id, submission_id)
);

CREATE TABLE comment_votes (
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  comment_id TEXT NOT NULL REFERENCES comments(id) ON DELETE CASCADE,
  vote_type TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  PRIMARY KEY (user_id, comment_id)
);

CREATE TABLE banned_users (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  reason TEXT NULL,
  expires_at TIMESTAMP NULL,
  created_by TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE banned_ips (
  id TEXT PRIMARY KEY,
  ip TEXT NOT NULL UNIQUE,
  reason TEXT NULL,
  expires_at TIMESTAMP NULL,
  created_by TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE submission_reports (
  id TEXT PRIMARY KEY,
  target_id TEXT NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
  reporter_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  reason TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  reviewed_by TEXT NULL,
  reviewed_at TIMESTAMP NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE comment_reports (
  id TEXT PRIMARY KEY,
  target_id TEXT NOT NULL REFERENCES comments(id) ON DELETE CASCADE,
  reporter_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  reason TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  reviewed_by TEXT NULL,
  reviewed_at TIMESTAMP NULL,
  created_at TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX uq_comment_reports_pending
  ON comment_reports(reporter_id, target_id) WHERE status = 'pending';

CREATE TABLE follows (
  follower_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  followee_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  created_at TIMESTAMP NOT NULL,
  PRIMARY KEY (follower_id, followee_id)
);

CREATE TABLE polls (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE poll_responses (
  id TEXT PRIMARY KEY,
  poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  question_key TEXT NOT NULL,
  answer TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);

CREATE TABLE poll_submissions (
  poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  submitted_at TIMESTAMP NOT NULL,
  PRIMARY KEY (poll_id, user_id)
);

CREATE TABLE server_metric_samples (
  id TEXT PRIMARY KEY,
  captured_at TIMESTAMP NOT NULL,
  process_rss_bytes BIGINT NOT NULL,
  system_memory_total_bytes BIGINT NOT NULL,
  system_memory_used_bytes BIGINT NOT NULL,
  disk_total_bytes BIGINT NOT NULL,
  disk_used_bytes BIGINT NOT NULL,
  process_cpu_load REAL NOT NULL,
  system_cpu_load REAL NOT NULL
);
`

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testTokens() TokenService {
	return TokenService{
		Secret: []byte("test-secret"),
		Issuer: "schoolportal-test",
		TTL:    time.Hour,
	}
}

func createTestUser(t *testing.T, db *sqlx.DB, username, role string) string {
	t.Helper()
	userID := uuid.NewString()
	_, err := db.Exec(`
INSERT INTO users (id, username, password_hash, role, created_at)
VALUES ($1,$2,$3,$4,$5)
`, userID, username, "not-a-real-hash", role, time.Now().UTC())
	require.NoError(t, err)
	return userID
}

func createTestSubmission(t *testing.T, db *sqlx.DB, authorID string) string {
	t.Helper()
	submissionID, err := CreateSubmission(db, authorID, SubmissionInput{
		Body:     "broken projector in room 12",
		Category: "facilities",
	})
	require.NoError(t, err)
	return submissionID
}

func createTestComment(t *testing.T, db *sqlx.DB, submissionID, authorID string) string {
	t.Helper()
	commentID, err := CreateComment(db, submissionID, authorID, "same in room 14")
	require.NoError(t, err)
	return commentID
}

func submissionStatus(t *testing.T, db *sqlx.DB, submissionID string) string {
	t.Helper()
	sub, err := GetSubmission(db, submissionID)
	require.NoError(t, err)
	require.Equal(t, submissionID, sub.ID)
	return sub.Status
}
