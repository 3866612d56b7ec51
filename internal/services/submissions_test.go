package services

import (
	"testing"

	"schoolportal-backend-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubmissionWritesAudit(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)

	submissionID := createTestSubmission(t, db, authorID)
	assert.Equal(t, models.StatusPending, submissionStatus(t, db, submissionID))

	trail, err := SubmissionAuditTrail(db, submissionID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, models.AuditCreate, trail[0].Action)
	assert.Equal(t, authorID, trail[0].ActorID)
}

func TestCreateSubmissionRequiresBodyAndCategory(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)

	_, err := CreateSubmission(db, authorID, SubmissionInput{Body: "  ", Category: "facilities"})
	require.Error(t, err)
	_, err = CreateSubmission(db, authorID, SubmissionInput{Body: "text", Category: ""})
	require.Error(t, err)
}

func TestSubmissionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)
	modID := createTestUser(t, db, "mod", models.RoleModerator)
	submissionID := createTestSubmission(t, db, authorID)

	require.NoError(t, ApproveSubmission(db, submissionID, modID))
	sub, err := GetSubmission(db, submissionID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, sub.Status)
	require.NotNil(t, sub.ApprovedBy)
	assert.Equal(t, modID, *sub.ApprovedBy)
	assert.NotNil(t, sub.ApprovedAt)
	assert.Nil(t, sub.DeletedBy)
	assert.Nil(t, sub.DeletedAt)

	require.NoError(t, DeleteSubmission(db, submissionID, modID))
	sub, err = GetSubmission(db, submissionID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, sub.Status)
	require.NotNil(t, sub.DeletedBy)
	assert.Equal(t, modID, *sub.DeletedBy)
	assert.NotNil(t, sub.DeletedAt)
	assert.Nil(t, sub.ApprovedBy)
	assert.Nil(t, sub.ApprovedAt)

	require.NoError(t, RestoreSubmission(db, submissionID, modID))
	sub, err = GetSubmission(db, submissionID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, sub.Status)
	assert.Nil(t, sub.ApprovedBy)
	assert.Nil(t, sub.ApprovedAt)
	assert.Nil(t, sub.DeletedBy)
	assert.Nil(t, sub.DeletedAt)

	trail, err := SubmissionAuditTrail(db, submissionID)
	require.NoError(t, err)
	require.Len(t, trail, 4)
	actions := make([]string, 0, len(trail))
	for _, entry := range trail {
		actions = append(actions, entry.Action)
	}
	assert.Equal(t, []string{
		models.AuditCreate,
		models.AuditApprove,
		models.AuditDelete,
		models.AuditRestore,
	}, actions)
}

func TestApproveDeletedSubmission(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)
	modID := createTestUser(t, db, "mod", models.RoleModerator)
	submissionID := createTestSubmission(t, db, authorID)

	require.NoError(t, DeleteSubmission(db, submissionID, modID))
	require.NoError(t, ApproveSubmission(db, submissionID, modID))

	sub, err := GetSubmission(db, submissionID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, sub.Status)
	assert.Nil(t, sub.DeletedBy)
	assert.Nil(t, sub.DeletedAt)
}

func TestTransitionUnknownSubmission(t *testing.T) {
	db := setupTestDB(t)
	modID := createTestUser(t, db, "mod", models.RoleModerator)

	err := ApproveSubmission(db, "00000000-0000-0000-0000-000000000000", modID)
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
}

func TestBulkApprove(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)
	modID := createTestUser(t, db, "mod", models.RoleModerator)
	first := createTestSubmission(t, db, authorID)
	second := createTestSubmission(t, db, authorID)

	require.NoError(t, BulkApproveSubmissions(db, []string{first, second}, modID))
	assert.Equal(t, models.StatusApproved, submissionStatus(t, db, first))
	assert.Equal(t, models.StatusApproved, submissionStatus(t, db, second))

	for _, id := range []string{first, second} {
		trail, err := SubmissionAuditTrail(db, id)
		require.NoError(t, err)
		require.Len(t, trail, 2)
		assert.Equal(t, models.AuditApprove, trail[1].Action)
	}
}

func TestBulkDeleteUnknownIDRollsBack(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)
	modID := createTestUser(t, db, "mod", models.RoleModerator)
	known := createTestSubmission(t, db, authorID)

	err := BulkDeleteSubmissions(db, []string{known, "00000000-0000-0000-0000-000000000000"}, modID)
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)

	// The batch is atomic: the known submission must be untouched.
	assert.Equal(t, models.StatusPending, submissionStatus(t, db, known))
	trail, err := SubmissionAuditTrail(db, known)
	require.NoError(t, err)
	assert.Len(t, trail, 1)
}

func TestBulkTransitionEmptyBatch(t *testing.T) {
	db := setupTestDB(t)
	modID := createTestUser(t, db, "mod", models.RoleModerator)

	err := BulkApproveSubmissions(db, nil, modID)
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}

func TestListSubmissionsByStatus(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)
	modID := createTestUser(t, db, "mod", models.RoleModerator)
	first := createTestSubmission(t, db, authorID)
	createTestSubmission(t, db, authorID)

	require.NoError(t, ApproveSubmission(db, first, modID))

	approved, err := ListSubmissions(db, models.StatusApproved, 10)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, first, approved[0].ID)

	pending, err := ListSubmissions(db, models.StatusPending, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
