package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pratama/phoneverify/internal/pkg/circuitbreaker"
	httppkg "github.com/pratama/phoneverify/internal/pkg/http"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/internal/pkg/retry"
	"github.com/pratama/phoneverify/services/verification"
)

// HTTPProvider adapts an HTTP SMS vendor. The vendor validates challenge
// proofs on its side, enforces its own throttling, and owns the code: we
// only ever see the opaque dispatch handle.
type HTTPProvider struct {
	cfg     models.SMSProviderConfig
	client  *httppkg.Client
	breaker *circuitbreaker.CircuitBreaker
	retrier *retry.Retrier
}

// NewHTTPProvider creates an HTTP SMS delivery provider
func NewHTTPProvider(cfg models.SMSProviderConfig, client *httppkg.Client, breaker *circuitbreaker.CircuitBreaker, retrier *retry.Retrier) *HTTPProvider {
	return &HTTPProvider{
		cfg:     cfg,
		client:  client,
		breaker: breaker,
		retrier: retrier,
	}
}

type dispatchRequest struct {
	PhoneNumber    string `json:"phone_number"`
	ChallengeProof string `json:"challenge_proof"`
	SenderID       string `json:"sender_id,omitempty"`
}

type dispatchResponse struct {
	Handle string `json:"handle"`
}

type confirmRequest struct {
	Handle string `json:"handle"`
	Code   string `json:"code"`
}

type confirmResponse struct {
	Match bool `json:"match"`
}

// SendCode dispatches a code through the vendor and returns its handle.
// Transient vendor outages are retried; proof and input rejections are not.
func (p *HTTPProvider) SendCode(ctx context.Context, phoneNumber, challengeProof string) (string, error) {
	payload, err := json.Marshal(dispatchRequest{
		PhoneNumber:    phoneNumber,
		ChallengeProof: challengeProof,
		SenderID:       p.cfg.SenderID,
	})
	if err != nil {
		return "", err
	}

	var result dispatchResponse

	err = p.retrier.Execute(ctx, func(ctx context.Context) error {
		return p.breaker.Execute(ctx, func(ctx context.Context) error {
			resp, err := p.post(ctx, "/otp/dispatch", payload)
			if err != nil {
				return verification.ErrDeliveryUnavailable
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusOK, http.StatusCreated:
				return json.NewDecoder(resp.Body).Decode(&result)
			case http.StatusBadRequest:
				return verification.ErrInvalidPhoneNumber
			case http.StatusUnauthorized, http.StatusForbidden:
				return verification.ErrInvalidChallenge
			case http.StatusTooManyRequests:
				return verification.ErrRateLimited
			default:
				return verification.ErrDeliveryUnavailable
			}
		})
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", verification.ErrProviderTimeout
		}
		if errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
			return "", verification.ErrDeliveryUnavailable
		}
		return "", err
	}

	if result.Handle == "" {
		return "", verification.ErrDeliveryUnavailable
	}

	return result.Handle, nil
}

// ConfirmCode checks the code against the vendor-side dispatch
func (p *HTTPProvider) ConfirmCode(ctx context.Context, handle, code string) (bool, error) {
	payload, err := json.Marshal(confirmRequest{Handle: handle, Code: code})
	if err != nil {
		return false, err
	}

	var result confirmResponse

	err = p.breaker.Execute(ctx, func(ctx context.Context) error {
		resp, err := p.post(ctx, "/otp/confirm", payload)
		if err != nil {
			return verification.ErrDeliveryUnavailable
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			return json.NewDecoder(resp.Body).Decode(&result)
		case http.StatusNotFound, http.StatusGone:
			return verification.ErrHandleExpiredOrUnknown
		default:
			return verification.ErrDeliveryUnavailable
		}
	})
	if err != nil {
		if ctx.Err() != nil {
			return false, verification.ErrProviderTimeout
		}
		if errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
			return false, verification.ErrDeliveryUnavailable
		}
		return false, err
	}

	return result.Match, nil
}

func (p *HTTPProvider) post(ctx context.Context, path string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.client.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", p.cfg.APIKey)

	return p.client.HTTPClient.Do(req)
}

// RetryConfig builds the retry policy for dispatch calls: only transient
// delivery failures are retried, with a short flat-ish backoff.
func RetryConfig(cfg models.SMSProviderConfig) retry.Config {
	rc := retry.DefaultConfig()
	rc.MaxRetries = cfg.MaxRetry
	rc.BaseDelay = time.Duration(cfg.RetryWait) * time.Millisecond
	rc.RetryableFunc = func(err error) bool {
		return errors.Is(err, verification.ErrDeliveryUnavailable)
	}
	return rc
}
