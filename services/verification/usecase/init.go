package usecase

import (
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/services/verification"
)

// VerificationUC implements the verification session state machine
type VerificationUC struct {
	sessionRepo verification.SessionRepo
	auditRepo   verification.AuditRepo
	challenge   verification.ChallengeProvider
	delivery    verification.OtpDeliveryProvider
	gateway     verification.VerificationGW
	cfg         *models.Config
}

// NewVerificationUC creates a new verification usecase instance
func NewVerificationUC(
	sessionRepo verification.SessionRepo,
	auditRepo verification.AuditRepo,
	challenge verification.ChallengeProvider,
	delivery verification.OtpDeliveryProvider,
	gateway verification.VerificationGW,
	cfg *models.Config,
) *VerificationUC {
	return &VerificationUC{
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
		challenge:   challenge,
		delivery:    delivery,
		gateway:     gateway,
		cfg:         cfg,
	}
}
