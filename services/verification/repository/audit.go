package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pratama/phoneverify/internal/pkg/models"
)

// AuditRepo persists verification lifecycle outcomes to PostgreSQL.
// The rows feed abuse analysis; the state machine itself never reads them.
type AuditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates a new audit repository
func NewAuditRepo(db *sqlx.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// RecordStarted inserts a row for a freshly created session
func (r *AuditRepo) RecordStarted(ctx context.Context, session *models.VerificationSession) error {
	query := `
		INSERT INTO phone_verification_audit
			(session_id, phone_number, state, verify_attempts, resend_count, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.PhoneNumber,
		string(session.State),
		session.VerifyAttempts,
		session.ResendCount,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record verification start: %w", err)
	}

	return nil
}

// RecordOutcome updates the row with the session's final (or abandoned) state
func (r *AuditRepo) RecordOutcome(ctx context.Context, session *models.VerificationSession) error {
	query := `
		UPDATE phone_verification_audit
		SET state = $2, verify_attempts = $3, resend_count = $4, last_error = $5, finished_at = $6
		WHERE session_id = $1
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		session.ID,
		string(session.State),
		session.VerifyAttempts,
		session.ResendCount,
		session.LastError,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record verification outcome: %w", err)
	}

	return nil
}
