package sms

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pratama/phoneverify/internal/pkg/constants"
	"github.com/pratama/phoneverify/internal/pkg/database"
	"github.com/pratama/phoneverify/internal/pkg/logger"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/services/verification"
	"golang.org/x/crypto/bcrypt"
)

// ProofValidator checks challenge proofs in-process. Implemented by the
// challenge providers; delivery vendors that validate proofs on their own
// side do not need one.
type ProofValidator interface {
	Validate(ctx context.Context, proof string) error
}

// LocalProvider generates and confirms codes itself, keeping only a bcrypt
// hash in Redis under the confirmation handle. The "dispatch" is a log
// line, which makes the full flow runnable without an SMS vendor account.
type LocalProvider struct {
	cfg         models.VerificationConfig
	redisClient *database.RedisClient
	validator   ProofValidator
}

// NewLocalProvider creates a local OTP delivery provider
func NewLocalProvider(cfg models.VerificationConfig, redisClient *database.RedisClient, validator ProofValidator) *LocalProvider {
	return &LocalProvider{
		cfg:         cfg,
		redisClient: redisClient,
		validator:   validator,
	}
}

// SendCode generates a code and stores its hash under a fresh handle.
// The outstanding dispatch for the phone, if any, is superseded: its handle
// is consumed so only the newest code can ever verify.
func (p *LocalProvider) SendCode(ctx context.Context, phoneNumber, challengeProof string) (string, error) {
	if p.validator != nil {
		if err := p.validator.Validate(ctx, challengeProof); err != nil {
			return "", verification.ErrInvalidChallenge
		}
	}

	code, err := generateNumericCode(p.cfg.CodeLength)
	if err != nil {
		return "", fmt.Errorf("%w: %v", verification.ErrDeliveryUnavailable, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", verification.ErrDeliveryUnavailable, err)
	}

	handle := uuid.New().String()
	key := fmt.Sprintf(constants.KeyLocalOTP, handle)
	phoneKey := fmt.Sprintf(constants.KeyLocalOTPPhone, phoneNumber)
	ttl := time.Duration(p.cfg.CodeTTL) * time.Second

	prev, err := p.redisClient.Client.Get(ctx, phoneKey).Result()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("%w: %v", verification.ErrDeliveryUnavailable, err)
	}
	if prev != "" {
		if err := p.redisClient.Client.Del(ctx, fmt.Sprintf(constants.KeyLocalOTP, prev)).Err(); err != nil {
			return "", fmt.Errorf("%w: %v", verification.ErrDeliveryUnavailable, err)
		}
	}

	pipe := p.redisClient.Client.TxPipeline()
	pipe.Set(ctx, key, hash, ttl)
	pipe.Set(ctx, phoneKey, handle, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", verification.ErrDeliveryUnavailable, err)
	}

	// Stand-in for the real SMS dispatch
	logger.InfoCtx(ctx, "Generated OTP",
		logger.String("phone_number", phoneNumber),
		logger.String("otp_code", code))

	return handle, nil
}

// ConfirmCode checks a submitted code against the stored hash. The handle
// is consumed on a successful match.
func (p *LocalProvider) ConfirmCode(ctx context.Context, handle, code string) (bool, error) {
	key := fmt.Sprintf(constants.KeyLocalOTP, handle)

	hash, err := p.redisClient.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, verification.ErrHandleExpiredOrUnknown
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", verification.ErrDeliveryUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return false, nil
	}

	if err := p.redisClient.Client.Del(ctx, key).Err(); err != nil {
		logger.WarnCtx(ctx, "Failed to consume confirmed OTP handle", logger.Err(err))
	}

	return true, nil
}

// generateNumericCode returns a uniformly random code of length digits
func generateNumericCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits), nil
}
