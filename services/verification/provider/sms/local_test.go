package sms

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratama/phoneverify/internal/pkg/constants"
	"github.com/pratama/phoneverify/internal/pkg/database"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/services/verification"
)

type acceptAllValidator struct{}

func (acceptAllValidator) Validate(ctx context.Context, proof string) error { return nil }

type rejectValidator struct{}

func (rejectValidator) Validate(ctx context.Context, proof string) error {
	return verification.ErrInvalidChallenge
}

func setupLocalProviderTest(t *testing.T, validator ProofValidator) (*LocalProvider, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	redisClient := &database.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}

	cfg := models.VerificationConfig{
		CodeTTL:    120,
		CodeLength: 6,
	}

	return NewLocalProvider(cfg, redisClient, validator), mr
}

func TestLocalProvider_SendCode(t *testing.T) {
	provider, mr := setupLocalProviderTest(t, acceptAllValidator{})
	defer mr.Close()

	handle, err := provider.SendCode(context.Background(), "+14155550100", "proof-1")

	require.NoError(t, err)
	assert.NotEmpty(t, handle)

	// Only the hash lives in Redis, under the handle, with the code TTL
	key := fmt.Sprintf(constants.KeyLocalOTP, handle)
	assert.True(t, mr.Exists(key))
	assert.True(t, mr.TTL(key) > 0)
}

func TestLocalProvider_SendCodeRejectedProof(t *testing.T) {
	provider, mr := setupLocalProviderTest(t, rejectValidator{})
	defer mr.Close()

	_, err := provider.SendCode(context.Background(), "+14155550100", "stale-proof")
	assert.ErrorIs(t, err, verification.ErrInvalidChallenge)
}

func TestLocalProvider_SendCodeRedisDown(t *testing.T) {
	provider, mr := setupLocalProviderTest(t, acceptAllValidator{})
	mr.Close()

	_, err := provider.SendCode(context.Background(), "+14155550100", "proof-1")
	assert.ErrorIs(t, err, verification.ErrDeliveryUnavailable)
}

func TestLocalProvider_SendCodeSupersedesPriorDispatch(t *testing.T) {
	provider, mr := setupLocalProviderTest(t, acceptAllValidator{})
	defer mr.Close()

	first, err := provider.SendCode(context.Background(), "+14155550100", "proof-1")
	require.NoError(t, err)

	second, err := provider.SendCode(context.Background(), "+14155550100", "proof-2")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// The superseded handle is gone, not just mismatching
	_, err = provider.ConfirmCode(context.Background(), first, "123456")
	assert.ErrorIs(t, err, verification.ErrHandleExpiredOrUnknown)

	// The latest dispatch still verifies
	key := fmt.Sprintf(constants.KeyLocalOTP, second)
	knownHash := "$2a$10$WR/VAlMEAnhjfQd1SrT6v.vDIBu3fFiG9ph.jyJ.LO0eTK6CECzOK" // bcrypt("password")
	require.NoError(t, mr.Set(key, knownHash))

	ok, err := provider.ConfirmCode(context.Background(), second, "password")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalProvider_ConfirmCode_UnknownHandle(t *testing.T) {
	provider, mr := setupLocalProviderTest(t, acceptAllValidator{})
	defer mr.Close()

	_, err := provider.ConfirmCode(context.Background(), "no-such-handle", "123456")
	assert.ErrorIs(t, err, verification.ErrHandleExpiredOrUnknown)
}

func TestLocalProvider_ConfirmCode_Mismatch(t *testing.T) {
	provider, mr := setupLocalProviderTest(t, acceptAllValidator{})
	defer mr.Close()

	handle, err := provider.SendCode(context.Background(), "+14155550100", "proof-1")
	require.NoError(t, err)

	// Pin the stored hash so the expected code is known
	key := fmt.Sprintf(constants.KeyLocalOTP, handle)
	knownHash := "$2a$10$WR/VAlMEAnhjfQd1SrT6v.vDIBu3fFiG9ph.jyJ.LO0eTK6CECzOK" // bcrypt("password")
	require.NoError(t, mr.Set(key, knownHash))

	// A wrong code is a plain miss, not an error
	ok, err := provider.ConfirmCode(context.Background(), handle, "999999")
	assert.NoError(t, err)
	assert.False(t, ok)

	// The handle survives a miss
	assert.True(t, mr.Exists(key))
}

func TestLocalProvider_ConfirmCode_HandleConsumedOnMatch(t *testing.T) {
	provider, mr := setupLocalProviderTest(t, acceptAllValidator{})
	defer mr.Close()

	// The real code never leaves the provider, so pin the stored hash to a
	// known value before confirming
	handle, err := provider.SendCode(context.Background(), "+14155550100", "proof-1")
	require.NoError(t, err)

	key := fmt.Sprintf(constants.KeyLocalOTP, handle)
	knownHash := "$2a$10$WR/VAlMEAnhjfQd1SrT6v.vDIBu3fFiG9ph.jyJ.LO0eTK6CECzOK" // bcrypt("password")
	require.NoError(t, mr.Set(key, knownHash))

	ok, err := provider.ConfirmCode(context.Background(), handle, "password")
	require.NoError(t, err)
	assert.True(t, ok)

	// Handle is consumed: a second confirm sees it as unknown
	_, err = provider.ConfirmCode(context.Background(), handle, "password")
	assert.ErrorIs(t, err, verification.ErrHandleExpiredOrUnknown)
}

func TestGenerateNumericCode(t *testing.T) {
	code, err := generateNumericCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}

	// Non-positive lengths fall back to six digits
	code, err = generateNumericCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}
