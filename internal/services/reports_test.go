package services

import (
	"testing"

	"schoolportal-backend-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicatePendingReportRejected(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)
	reporterID := createTestUser(t, db, "bob", models.RoleUser)
	submissionID := createTestSubmission(t, db, authorID)

	_, err := FileSubmissionReport(db, reporterID, submissionID, "inappropriate")
	require.NoError(t, err)

	_, err = FileSubmissionReport(db, reporterID, submissionID, "still inappropriate")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)

	// A different reporter is not blocked.
	otherID := createTestUser(t, db, "carol", models.RoleUser)
	_, err = FileSubmissionReport(db, otherID, submissionID, "spam")
	require.NoError(t, err)
}

func TestResubmitAfterResolution(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)
	reporterID := createTestUser(t, db, "bob", models.RoleUser)
	modID := createTestUser(t, db, "mod", models.RoleModerator)
	submissionID := createTestSubmission(t, db, authorID)

	reportID, err := FileSubmissionReport(db, reporterID, submissionID, "spam")
	require.NoError(t, err)
	require.NoError(t, ResolveSubmissionReport(db, reportID, modID, models.ReportDismissed))

	// Once the first report leaves pending, the same reporter may file again.
	_, err = FileSubmissionReport(db, reporterID, submissionID, "spam again")
	require.NoError(t, err)

	pending, err := PendingSubmissionReports(db, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "spam again", pending[0].Reason)
}

func TestResolveReportOutcomes(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)
	reporterID := createTestUser(t, db, "bob", models.RoleUser)
	modID := createTestUser(t, db, "mod", models.RoleModerator)
	submissionID := createTestSubmission(t, db, authorID)

	reportID, err := FileSubmissionReport(db, reporterID, submissionID, "spam")
	require.NoError(t, err)

	err = ResolveSubmissionReport(db, reportID, modID, "shrugged")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)

	require.NoError(t, ResolveSubmissionReport(db, reportID, modID, models.ReportReviewed))

	var status string
	require.NoError(t, db.Get(&status, `SELECT status FROM submission_reports WHERE id = $1`, reportID))
	assert.Equal(t, models.ReportReviewed, status)

	err = ResolveSubmissionReport(db, "00000000-0000-0000-0000-000000000000", modID, models.ReportReviewed)
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
}

func TestCommentReportFlow(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)
	reporterID := createTestUser(t, db, "bob", models.RoleUser)
	submissionID := createTestSubmission(t, db, authorID)
	commentID := createTestComment(t, db, submissionID, authorID)

	_, err := FileCommentReport(db, reporterID, commentID, "rude")
	require.NoError(t, err)

	_, err = FileCommentReport(db, reporterID, commentID, "rude")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)

	pending, err := PendingCommentReports(db, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestReportRequiresReason(t *testing.T) {
	db := setupTestDB(t)
	authorID := createTestUser(t, db, "alice", models.RoleUser)
	submissionID := createTestSubmission(t, db, authorID)

	_, err := FileSubmissionReport(db, authorID, submissionID, "  ")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}
