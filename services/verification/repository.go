package verification

import (
	"context"

	"github.com/pratama/phoneverify/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/pratama/phoneverify/services/verification SessionRepo,AuditRepo

// SessionRepo is concurrency-safe keyed storage for active sessions.
// Update serializes mutations per session id: two concurrent calls for the
// same id never interleave, so cooldown and attempt checks cannot race.
type SessionRepo interface {
	Create(ctx context.Context, session *models.VerificationSession) error
	Get(ctx context.Context, id string) (*models.VerificationSession, error)

	// Update runs mutate under the per-id lock and persists the session
	// when mutate returns nil. A non-nil error from mutate discards the
	// mutation and is returned unchanged.
	Update(ctx context.Context, id string, mutate func(*models.VerificationSession) error) (*models.VerificationSession, error)

	Delete(ctx context.Context, id string) error
}

// AuditRepo records verification lifecycle outcomes for abuse analysis.
// Writes are best-effort: the state machine never fails on audit errors.
type AuditRepo interface {
	RecordStarted(ctx context.Context, session *models.VerificationSession) error
	RecordOutcome(ctx context.Context, session *models.VerificationSession) error
}
