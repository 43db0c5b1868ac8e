package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pratama/phoneverify/internal/pkg/constants"
	"github.com/pratama/phoneverify/internal/pkg/database"
	"github.com/pratama/phoneverify/internal/pkg/logger"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/services/verification"
)

// SessionRepo stores verification sessions in Redis as JSON blobs with an
// idle TTL. Mutations are serialized per session id through an in-process
// keyed mutex, so concurrent resend/verify calls for the same session are
// applied in lock-acquisition order.
type SessionRepo struct {
	cfg         *models.Config
	redisClient *database.RedisClient
	locks       sync.Map // session id -> *sync.Mutex
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(cfg *models.Config, redisClient *database.RedisClient) *SessionRepo {
	return &SessionRepo{
		cfg:         cfg,
		redisClient: redisClient,
	}
}

func (r *SessionRepo) lockFor(id string) *sync.Mutex {
	mu, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (r *SessionRepo) idleTTL() time.Duration {
	return time.Duration(r.cfg.Verification.SessionIdleTTL) * time.Second
}

func (r *SessionRepo) terminalGrace() time.Duration {
	return time.Duration(r.cfg.Verification.TerminalGrace) * time.Second
}

// ttlFor returns the storage TTL appropriate for the session's state.
// Terminal sessions linger only for the status-polling grace period.
func (r *SessionRepo) ttlFor(session *models.VerificationSession) time.Duration {
	if session.State.Terminal() {
		return r.terminalGrace()
	}
	return r.idleTTL()
}

func (r *SessionRepo) persist(ctx context.Context, session *models.VerificationSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := r.ttlFor(session)
	key := fmt.Sprintf(constants.KeyVerifySession, session.ID)

	pipe := r.redisClient.Client.TxPipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.ZAdd(ctx, constants.KeyVerifySweepIdx, &redis.Z{
		Score:  float64(time.Now().Add(ttl).Unix()),
		Member: session.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", verification.ErrStoreUnavailable, err)
	}

	return nil
}

// Create stores a brand-new session
func (r *SessionRepo) Create(ctx context.Context, session *models.VerificationSession) error {
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	return r.persist(ctx, session)
}

// Get retrieves a session by id
func (r *SessionRepo) Get(ctx context.Context, id string) (*models.VerificationSession, error) {
	key := fmt.Sprintf(constants.KeyVerifySession, id)

	data, err := r.redisClient.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, verification.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verification.ErrStoreUnavailable, err)
	}

	var session models.VerificationSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Update applies mutate under the per-id lock and persists the result when
// mutate returns nil. A non-nil error from mutate leaves the stored session
// untouched and is returned unchanged. The (possibly mutated) session is
// returned either way so callers can inspect the state they acted on.
func (r *SessionRepo) Update(ctx context.Context, id string, mutate func(*models.VerificationSession) error) (*models.VerificationSession, error) {
	mu := r.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(session); err != nil {
		return session, err
	}

	session.UpdatedAt = time.Now()
	if err := r.persist(ctx, session); err != nil {
		return session, err
	}

	return session, nil
}

// Delete removes a session. It takes the per-id lock so an in-flight Update
// cannot persist the session back after the delete. Lock entries are never
// removed: handing a later caller a fresh mutex while another goroutine holds
// the old one would break per-session serialization.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	mu := r.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	key := fmt.Sprintf(constants.KeyVerifySession, id)

	pipe := r.redisClient.Client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.ZRem(ctx, constants.KeyVerifySweepIdx, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", verification.ErrStoreUnavailable, err)
	}

	return nil
}

// StartSweeper runs the background sweep until ctx is cancelled. Redis TTLs
// already evict idle sessions; the sweep trims the index behind them.
func (r *SessionRepo) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweep(ctx)
			}
		}
	}()
}

func (r *SessionRepo) sweep(ctx context.Context) {
	now := fmt.Sprintf("%d", time.Now().Unix())

	ids, err := r.redisClient.Client.ZRangeByScore(ctx, constants.KeyVerifySweepIdx, &redis.ZRangeBy{
		Min: "-inf",
		Max: now,
	}).Result()
	if err != nil {
		logger.Warn("Session sweep failed to read index", logger.Err(err))
		return
	}

	swept := 0
	for _, id := range ids {
		// Skip sessions an in-flight operation currently holds; the next
		// cycle picks them up. The lock stays held across the removal so a
		// racing Update cannot persist the session back.
		mu := r.lockFor(id)
		if !mu.TryLock() {
			continue
		}

		key := fmt.Sprintf(constants.KeyVerifySession, id)
		delErr := r.redisClient.Client.Del(ctx, key).Err()
		zremErr := r.redisClient.Client.ZRem(ctx, constants.KeyVerifySweepIdx, id).Err()
		mu.Unlock()
		if delErr != nil || zremErr != nil {
			continue
		}
		swept++
	}

	if swept > 0 {
		logger.Debug("Swept expired verification sessions", logger.Int("count", swept))
	}
}
