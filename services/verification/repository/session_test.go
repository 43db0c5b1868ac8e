package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratama/phoneverify/internal/pkg/constants"
	"github.com/pratama/phoneverify/internal/pkg/database"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/services/verification"
)

// setupMiniredis creates a new miniredis server and returns a Redis client connected to it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}

func setupSessionRepoTest(t *testing.T) (*SessionRepo, *miniredis.Miniredis) {
	mr, client := setupMiniredis(t)

	redisClient := &database.RedisClient{
		Client: client,
	}

	cfg := &models.Config{
		Verification: models.VerificationConfig{
			SessionIdleTTL: 900,
			TerminalGrace:  300,
		},
	}

	return NewSessionRepo(cfg, redisClient), mr
}

func newTestSession(id string) *models.VerificationSession {
	now := time.Now()
	return &models.VerificationSession{
		ID:                 id,
		PhoneNumber:        "+14155550100",
		State:              models.StateCodeSent,
		ConfirmationHandle: "handle-1",
		CodeSentAt:         now,
		CodeExpiresAt:      now.Add(2 * time.Minute),
		ResendAvailableAt:  now.Add(30 * time.Second),
		ResendCount:        1,
	}
}

func TestSessionRepo_CreateAndGet(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	session := newTestSession("session-1")
	err := repo.Create(context.Background(), session)
	require.NoError(t, err)

	// Stored under the expected key with the idle TTL
	key := fmt.Sprintf(constants.KeyVerifySession, session.ID)
	val, err := mr.Get(key)
	require.NoError(t, err)

	var stored models.VerificationSession
	require.NoError(t, json.Unmarshal([]byte(val), &stored))
	assert.Equal(t, session.PhoneNumber, stored.PhoneNumber)
	assert.Equal(t, models.StateCodeSent, stored.State)
	assert.True(t, mr.TTL(key) > 0)

	got, err := repo.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.ConfirmationHandle, got.ConfirmationHandle)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSessionRepo_GetNotFound(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, verification.ErrSessionNotFound)
}

func TestSessionRepo_GetRedisError(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	mr.Close()

	_, err := repo.Get(context.Background(), "session-1")
	assert.ErrorIs(t, err, verification.ErrStoreUnavailable)
}

func TestSessionRepo_UpdatePersistsMutation(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	session := newTestSession("session-1")
	require.NoError(t, repo.Create(context.Background(), session))

	updated, err := repo.Update(context.Background(), session.ID, func(s *models.VerificationSession) error {
		s.VerifyAttempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.VerifyAttempts)

	got, err := repo.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.VerifyAttempts)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestSessionRepo_UpdateErrorDiscardsMutation(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	session := newTestSession("session-1")
	require.NoError(t, repo.Create(context.Background(), session))

	rejection := verification.ErrCooldownActive
	returned, err := repo.Update(context.Background(), session.ID, func(s *models.VerificationSession) error {
		s.VerifyAttempts = 99
		return rejection
	})
	assert.ErrorIs(t, err, rejection)
	// Caller still sees the session it acted on
	require.NotNil(t, returned)

	got, err := repo.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.VerifyAttempts, "rejected mutation must not be persisted")
}

func TestSessionRepo_UpdateNotFound(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	_, err := repo.Update(context.Background(), "missing", func(s *models.VerificationSession) error {
		t.Fatal("mutate must not run for a missing session")
		return nil
	})
	assert.ErrorIs(t, err, verification.ErrSessionNotFound)
}

func TestSessionRepo_UpdateSerializesPerSession(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	session := newTestSession("session-1")
	require.NoError(t, repo.Create(context.Background(), session))

	// Many concurrent increments; the per-id lock must make them all land
	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.Update(context.Background(), session.ID, func(s *models.VerificationSession) error {
				s.VerifyAttempts++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.VerifyAttempts)
}

func TestSessionRepo_TerminalGraceTTL(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	session := newTestSession("session-1")
	session.State = models.StateVerified
	require.NoError(t, repo.Create(context.Background(), session))

	key := fmt.Sprintf(constants.KeyVerifySession, session.ID)
	ttl := mr.TTL(key)
	assert.True(t, ttl > 0)
	assert.True(t, ttl <= 300*time.Second, "terminal sessions use the grace TTL, got %v", ttl)
}

func TestSessionRepo_Delete(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	session := newTestSession("session-1")
	require.NoError(t, repo.Create(context.Background(), session))

	require.NoError(t, repo.Delete(context.Background(), session.ID))

	_, err := repo.Get(context.Background(), session.ID)
	assert.ErrorIs(t, err, verification.ErrSessionNotFound)

	// Sweep index entry is gone too
	ids, err := repo.redisClient.Client.ZRange(context.Background(), constants.KeyVerifySweepIdx, 0, -1).Result()
	require.NoError(t, err)
	assert.NotContains(t, ids, session.ID)
}

func TestSessionRepo_DeleteWaitsForInFlightUpdate(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	session := newTestSession("session-1")
	require.NoError(t, repo.Create(context.Background(), session))

	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})
	updateDone := make(chan struct{})
	deleteDone := make(chan struct{})

	go func() {
		defer close(updateDone)
		_, _ = repo.Update(ctx, session.ID, func(s *models.VerificationSession) error {
			close(entered)
			<-release
			s.ResendCount++
			return nil
		})
	}()

	<-entered
	go func() {
		defer close(deleteDone)
		assert.NoError(t, repo.Delete(ctx, session.ID))
	}()

	// Give the delete a chance to run; it must block on the per-id lock
	// instead of removing the session out from under the update.
	time.Sleep(50 * time.Millisecond)
	_, err := repo.Get(ctx, session.ID)
	assert.NoError(t, err, "delete must not proceed while an update holds the session")

	close(release)
	<-updateDone
	<-deleteDone

	// The delete ran after the update persisted; nothing resurrects the session
	_, err = repo.Get(ctx, session.ID)
	assert.ErrorIs(t, err, verification.ErrSessionNotFound)
}

func TestSessionRepo_SweepRemovesExpired(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	session := newTestSession("session-1")
	require.NoError(t, repo.Create(context.Background(), session))

	// Backdate the sweep index entry so the session looks overdue
	ctx := context.Background()
	_, err := repo.redisClient.Client.ZAdd(ctx, constants.KeyVerifySweepIdx, &redis.Z{
		Score:  float64(time.Now().Add(-time.Hour).Unix()),
		Member: session.ID,
	}).Result()
	require.NoError(t, err)

	repo.sweep(ctx)

	_, err = repo.Get(ctx, session.ID)
	assert.ErrorIs(t, err, verification.ErrSessionNotFound)
}

func TestSessionRepo_SweepSkipsLockedSession(t *testing.T) {
	repo, mr := setupSessionRepoTest(t)
	defer mr.Close()

	session := newTestSession("session-1")
	require.NoError(t, repo.Create(context.Background(), session))

	ctx := context.Background()
	_, err := repo.redisClient.Client.ZAdd(ctx, constants.KeyVerifySweepIdx, &redis.Z{
		Score:  float64(time.Now().Add(-time.Hour).Unix()),
		Member: session.ID,
	}).Result()
	require.NoError(t, err)

	// Hold the per-id lock as an in-flight operation would
	mu := repo.lockFor(session.ID)
	mu.Lock()
	repo.sweep(ctx)
	mu.Unlock()

	_, err = repo.Get(ctx, session.ID)
	assert.NoError(t, err, "sweep must not evict a session under mutation")
}
