package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratama/phoneverify/internal/pkg/models"
)

func setupAuditRepoTest(t *testing.T) (*AuditRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAuditRepo(sqlx.NewDb(db, "sqlmock")), mock
}

func auditTestSession() *models.VerificationSession {
	now := time.Now()
	return &models.VerificationSession{
		ID:             "session-1",
		PhoneNumber:    "+14155550100",
		State:          models.StateCodeSent,
		VerifyAttempts: 0,
		ResendCount:    1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestRecordStarted(t *testing.T) {
	repo, mock := setupAuditRepoTest(t)
	session := auditTestSession()

	mock.ExpectExec("INSERT INTO phone_verification_audit").
		WithArgs(session.ID, session.PhoneNumber, "CODE_SENT", 0, 1, session.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.RecordStarted(context.Background(), session)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStarted_DatabaseError(t *testing.T) {
	repo, mock := setupAuditRepoTest(t)
	session := auditTestSession()

	mock.ExpectExec("INSERT INTO phone_verification_audit").
		WillReturnError(errors.New("connection refused"))

	err := repo.RecordStarted(context.Background(), session)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record verification start")
}

func TestRecordOutcome(t *testing.T) {
	repo, mock := setupAuditRepoTest(t)
	session := auditTestSession()
	session.State = models.StateVerified
	session.VerifyAttempts = 1

	mock.ExpectExec("UPDATE phone_verification_audit").
		WithArgs(session.ID, "VERIFIED", 1, 1, session.LastError, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordOutcome(context.Background(), session)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordOutcome_DatabaseError(t *testing.T) {
	repo, mock := setupAuditRepoTest(t)
	session := auditTestSession()

	mock.ExpectExec("UPDATE phone_verification_audit").
		WillReturnError(errors.New("connection refused"))

	err := repo.RecordOutcome(context.Background(), session)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record verification outcome")
}
