package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pratama/phoneverify/internal/pkg/constants"
	"github.com/pratama/phoneverify/internal/pkg/database"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/services/verification"
)

// SignedNonceProvider issues short-lived HMAC-signed proofs. There is no
// interactive widget to solve; possession of a fresh, non-invalidated proof
// is the whole attestation. Suitable for server-to-server flows where the
// upstream edge already did bot filtering.
type SignedNonceProvider struct {
	cfg         models.ChallengeConfig
	redisClient *database.RedisClient
}

// NewSignedNonceProvider creates a signed-nonce challenge provider
func NewSignedNonceProvider(cfg models.ChallengeConfig, redisClient *database.RedisClient) *SignedNonceProvider {
	return &SignedNonceProvider{
		cfg:         cfg,
		redisClient: redisClient,
	}
}

func (p *SignedNonceProvider) proofTTL() time.Duration {
	return time.Duration(p.cfg.ProofTTL) * time.Second
}

// Issue mints a fresh proof token
func (p *SignedNonceProvider) Issue(ctx context.Context) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(p.proofTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	proof, err := token.SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("%w: %v", verification.ErrChallengeUnavailable, err)
	}

	return proof, nil
}

// Invalidate denylists the proof's id for the remainder of its lifetime
func (p *SignedNonceProvider) Invalidate(ctx context.Context, proof string) error {
	jti, _, err := p.parse(proof)
	if err != nil || jti == "" {
		// Already unusable, nothing to deny
		return nil
	}

	key := fmt.Sprintf(constants.KeyChallengeDeny, jti)
	return p.redisClient.Client.Set(ctx, key, 1, p.proofTTL()).Err()
}

// Validate checks a proof's signature, expiry and denylist status. Used by
// delivery providers that verify proofs in-process instead of vendor-side.
func (p *SignedNonceProvider) Validate(ctx context.Context, proof string) error {
	jti, expired, err := p.parse(proof)
	if err != nil {
		return verification.ErrInvalidChallenge
	}
	if expired {
		return verification.ErrChallengeExpired
	}

	key := fmt.Sprintf(constants.KeyChallengeDeny, jti)
	_, err = p.redisClient.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check proof denylist: %w", err)
	}

	return verification.ErrInvalidChallenge
}

func (p *SignedNonceProvider) parse(proof string) (jti string, expired bool, err error) {
	token, err := jwt.Parse(proof, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.cfg.Secret), nil
	})

	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return "", true, nil
		}
		return "", false, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", false, fmt.Errorf("invalid proof claims")
	}

	jti, _ = claims["jti"].(string)
	if jti == "" {
		return "", false, fmt.Errorf("proof missing jti")
	}

	return jti, false, nil
}
