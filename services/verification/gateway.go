package verification

import (
	"context"

	"github.com/pratama/phoneverify/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/pratama/phoneverify/services/verification VerificationGW

// VerificationGW publishes verification events to downstream services
type VerificationGW interface {
	// PublishPhoneVerified emits the one-shot verified signal consumed by
	// the login/signup service. Published exactly once per session, on the
	// transition into VERIFIED.
	PublishPhoneVerified(ctx context.Context, event *models.PhoneVerifiedEvent) error
}
