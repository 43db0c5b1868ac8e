package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratama/phoneverify/internal/pkg/database"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/services/verification"
)

const testSecret = "test-challenge-secret"

func setupSignedProviderTest(t *testing.T) (*SignedNonceProvider, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	redisClient := &database.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}

	cfg := models.ChallengeConfig{
		Mode:     "signed",
		Secret:   testSecret,
		ProofTTL: 180,
	}

	return NewSignedNonceProvider(cfg, redisClient), mr
}

// signProof mints a proof outside the provider for tamper and expiry cases
func signProof(t *testing.T, secret string, issuedAt, expiresAt time.Time) string {
	claims := jwt.MapClaims{
		"jti": uuid.New().String(),
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
	}
	proof, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return proof
}

func TestSignedNonceProvider_IssueAndValidate(t *testing.T) {
	provider, mr := setupSignedProviderTest(t)
	defer mr.Close()

	proof, err := provider.Issue(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, proof)

	assert.NoError(t, provider.Validate(context.Background(), proof))
}

func TestSignedNonceProvider_ValidateExpiredProof(t *testing.T) {
	provider, mr := setupSignedProviderTest(t)
	defer mr.Close()

	proof := signProof(t, testSecret, time.Now().Add(-10*time.Minute), time.Now().Add(-5*time.Minute))

	err := provider.Validate(context.Background(), proof)
	assert.ErrorIs(t, err, verification.ErrChallengeExpired)
}

func TestSignedNonceProvider_ValidateWrongSecret(t *testing.T) {
	provider, mr := setupSignedProviderTest(t)
	defer mr.Close()

	proof := signProof(t, "some-other-secret", time.Now(), time.Now().Add(3*time.Minute))

	err := provider.Validate(context.Background(), proof)
	assert.ErrorIs(t, err, verification.ErrInvalidChallenge)
}

func TestSignedNonceProvider_ValidateGarbage(t *testing.T) {
	provider, mr := setupSignedProviderTest(t)
	defer mr.Close()

	err := provider.Validate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, verification.ErrInvalidChallenge)
}

func TestSignedNonceProvider_InvalidateDenylistsProof(t *testing.T) {
	provider, mr := setupSignedProviderTest(t)
	defer mr.Close()

	proof, err := provider.Issue(context.Background())
	require.NoError(t, err)
	require.NoError(t, provider.Validate(context.Background(), proof))

	require.NoError(t, provider.Invalidate(context.Background(), proof))

	err = provider.Validate(context.Background(), proof)
	assert.ErrorIs(t, err, verification.ErrInvalidChallenge)
}

func TestSignedNonceProvider_InvalidateUnusableProofIsNoop(t *testing.T) {
	provider, mr := setupSignedProviderTest(t)
	defer mr.Close()

	assert.NoError(t, provider.Invalidate(context.Background(), "not-a-token"))

	expired := signProof(t, testSecret, time.Now().Add(-10*time.Minute), time.Now().Add(-5*time.Minute))
	assert.NoError(t, provider.Invalidate(context.Background(), expired))
}
