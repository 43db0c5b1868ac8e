package gateway_nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pratama/phoneverify/internal/pkg/constants"
	"github.com/pratama/phoneverify/internal/pkg/logger"
	"github.com/pratama/phoneverify/internal/pkg/models"
	natspkg "github.com/pratama/phoneverify/internal/pkg/nats"
)

// NATSGateway publishes verification events for downstream services
type NATSGateway struct {
	client *natspkg.Client
}

// NewNATSGateway creates a new NATS gateway
func NewNATSGateway(client *natspkg.Client) *NATSGateway {
	return &NATSGateway{
		client: client,
	}
}

// PublishPhoneVerified publishes the one-shot verified event consumed by
// the login/signup service
func (g *NATSGateway) PublishPhoneVerified(ctx context.Context, event *models.PhoneVerifiedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal phone verified event: %w", err)
	}

	if err := g.client.Publish(constants.SubjectPhoneVerified, data); err != nil {
		logger.ErrorCtx(ctx, "Failed to publish phone verified event",
			logger.String("session_id", event.SessionID),
			logger.Err(err))
		return fmt.Errorf("failed to publish phone verified event: %w", err)
	}

	logger.InfoCtx(ctx, "Published phone verified event",
		logger.String("session_id", event.SessionID),
		logger.String("subject", constants.SubjectPhoneVerified))

	return nil
}
