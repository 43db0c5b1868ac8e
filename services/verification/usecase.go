package verification

import (
	"context"

	"github.com/pratama/phoneverify/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/pratama/phoneverify/services/verification VerificationUC

// VerificationUC drives a phone verification session through its lifecycle.
// It is the only surface callers interact with.
type VerificationUC interface {
	// StartVerification validates the phone number, passes the anti-abuse
	// challenge, dispatches a code and returns the new session id. No
	// session is persisted when any provider call fails.
	StartVerification(ctx context.Context, phoneNumber string) (string, error)

	// ResendCode dispatches a fresh code for an existing session, replacing
	// the outstanding confirmation handle. Rejected while the cooldown is
	// active or once the resend cap is reached.
	ResendCode(ctx context.Context, sessionID string) error

	// VerifyCode checks a user-entered code against the outstanding handle
	VerifyCode(ctx context.Context, sessionID, code string) error

	// Reset abandons the session and starts a new one for the same phone
	// number, with all counters cleared. Returns the new session id.
	Reset(ctx context.Context, sessionID string) (string, error)

	// GetSession returns the caller-facing view of a session
	GetSession(ctx context.Context, sessionID string) (*models.SessionResponse, error)
}
