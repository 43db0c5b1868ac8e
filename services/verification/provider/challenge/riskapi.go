package challenge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pratama/phoneverify/internal/pkg/circuitbreaker"
	httppkg "github.com/pratama/phoneverify/internal/pkg/http"
	"github.com/pratama/phoneverify/internal/pkg/logger"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/services/verification"
)

// RiskAPIProvider obtains proofs from an external risk-scoring service.
// The assessment call blocks until the vendor resolves the request; a risk
// tier above the configured maximum counts as a failed challenge.
type RiskAPIProvider struct {
	cfg     models.ChallengeConfig
	client  *httppkg.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewRiskAPIProvider creates a risk-API challenge provider
func NewRiskAPIProvider(cfg models.ChallengeConfig, client *httppkg.Client, breaker *circuitbreaker.CircuitBreaker) *RiskAPIProvider {
	return &RiskAPIProvider{
		cfg:     cfg,
		client:  client,
		breaker: breaker,
	}
}

type assessResponse struct {
	Token    string `json:"token"`
	RiskTier int    `json:"risk_tier"`
}

// Issue requests a risk assessment and returns the vendor proof token
func (p *RiskAPIProvider) Issue(ctx context.Context) (string, error) {
	var result assessResponse

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.client.BaseURL+"/v1/assess", bytes.NewReader([]byte(`{}`)))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", p.cfg.RiskAPIKey)

		resp, err := p.client.HTTPClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("risk API returned status %d", resp.StatusCode)
		}

		return json.NewDecoder(resp.Body).Decode(&result)
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", verification.ErrProviderTimeout
		}
		return "", fmt.Errorf("%w: %v", verification.ErrChallengeUnavailable, err)
	}

	if result.RiskTier > p.cfg.MaxRiskTier {
		logger.WarnCtx(ctx, "Risk assessment above accepted tier",
			logger.Int("risk_tier", result.RiskTier),
			logger.Int("max_tier", p.cfg.MaxRiskTier))
		return "", verification.ErrChallengeUnavailable
	}

	return result.Token, nil
}

// Invalidate discards a previously issued assessment token
func (p *RiskAPIProvider) Invalidate(ctx context.Context, proof string) error {
	body, err := json.Marshal(map[string]string{"token": proof})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.client.BaseURL+"/v1/invalidate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", p.cfg.RiskAPIKey)

	resp, err := p.client.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return nil
}
