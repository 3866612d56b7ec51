package services

import (
	"testing"
	"time"

	"schoolportal-backend-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserBanLifecycle(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "alice", models.RoleUser)
	adminID := createTestUser(t, db, "root", models.RoleAdmin)

	banned, err := IsUserBanned(db, userID)
	require.NoError(t, err)
	assert.False(t, banned)

	reason := "spam"
	require.NoError(t, BanUser(db, userID, &reason, nil, adminID))

	banned, err = IsUserBanned(db, userID)
	require.NoError(t, err)
	assert.True(t, banned)

	require.NoError(t, UnbanUser(db, userID))
	banned, err = IsUserBanned(db, userID)
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestExpiredUserBanInactive(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "alice", models.RoleUser)
	adminID := createTestUser(t, db, "root", models.RoleAdmin)

	expired := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, BanUser(db, userID, nil, &expired, adminID))

	// The row stays in place but no longer counts as an active ban.
	banned, err := IsUserBanned(db, userID)
	require.NoError(t, err)
	assert.False(t, banned)

	rows, err := ListUserBans(db, userID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFutureExpiryUserBanActive(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "alice", models.RoleUser)
	adminID := createTestUser(t, db, "root", models.RoleAdmin)

	future := time.Now().UTC().Add(time.Hour)
	require.NoError(t, BanUser(db, userID, nil, &future, adminID))

	banned, err := IsUserBanned(db, userID)
	require.NoError(t, err)
	assert.True(t, banned)
}

func TestIPBanUpsert(t *testing.T) {
	db := setupTestDB(t)
	adminID := createTestUser(t, db, "root", models.RoleAdmin)

	first := "first offense"
	require.NoError(t, BanIP(db, "203.0.113.7", &first, nil, adminID))

	second := "abuse"
	require.NoError(t, BanIP(db, "203.0.113.7", &second, nil, adminID))

	var count int
	require.NoError(t, db.Get(&count, `SELECT count(*) FROM banned_ips WHERE ip = $1`, "203.0.113.7"))
	assert.Equal(t, 1, count)

	var reason string
	require.NoError(t, db.Get(&reason, `SELECT reason FROM banned_ips WHERE ip = $1`, "203.0.113.7"))
	assert.Equal(t, "abuse", reason)

	banned, err := IsIPBanned(db, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, banned)

	require.NoError(t, UnbanIP(db, "203.0.113.7"))
	banned, err = IsIPBanned(db, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestIPBanExpiry(t *testing.T) {
	db := setupTestDB(t)
	adminID := createTestUser(t, db, "root", models.RoleAdmin)

	expired := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, BanIP(db, "203.0.113.8", nil, &expired, adminID))

	banned, err := IsIPBanned(db, "203.0.113.8")
	require.NoError(t, err)
	assert.False(t, banned)
}
