package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pratama/phoneverify/internal/pkg/constants"
	"github.com/pratama/phoneverify/internal/pkg/logger"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/internal/utils"
	"github.com/pratama/phoneverify/services/verification"
)

func (uc *VerificationUC) codeTTL() time.Duration {
	return time.Duration(uc.cfg.Verification.CodeTTL) * time.Second
}

func (uc *VerificationUC) resendCooldown() time.Duration {
	return time.Duration(uc.cfg.Verification.ResendCooldown) * time.Second
}

// providerCtx bounds a single provider call. On expiry the operation
// surfaces ProviderTimeout and the session is left unchanged.
func (uc *VerificationUC) providerCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(uc.cfg.Verification.ProviderTimeout)*time.Second)
}

// mapTimeout folds a provider-call deadline into ProviderTimeout. Providers
// may swallow the context error in their own wrapping, so the bounding
// context is consulted as well as the error chain.
func mapTimeout(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return verification.ErrProviderTimeout
	}
	return err
}

// issueProof obtains a challenge proof. When retryExpired is set, a proof
// that expired before use is re-issued once before surfacing the error.
func (uc *VerificationUC) issueProof(ctx context.Context, retryExpired bool) (string, error) {
	pctx, cancel := uc.providerCtx(ctx)
	defer cancel()

	proof, err := uc.challenge.Issue(pctx)
	if err != nil && retryExpired && errors.Is(err, verification.ErrChallengeExpired) {
		logger.DebugCtx(ctx, "Challenge proof expired, re-issuing once")
		rctx, rcancel := uc.providerCtx(ctx)
		defer rcancel()
		pctx = rctx
		proof, err = uc.challenge.Issue(rctx)
	}
	if err != nil {
		return "", mapTimeout(pctx, err)
	}

	return proof, nil
}

// sendCode passes the challenge and dispatches a code, returning the proof
// and the confirmation handle of the new dispatch.
func (uc *VerificationUC) sendCode(ctx context.Context, phoneNumber string, retryExpired bool) (proof, handle string, err error) {
	proof, err = uc.issueProof(ctx, retryExpired)
	if err != nil {
		return "", "", err
	}

	pctx, cancel := uc.providerCtx(ctx)
	defer cancel()

	handle, err = uc.delivery.SendCode(pctx, phoneNumber, proof)
	if err != nil {
		return "", "", mapTimeout(pctx, err)
	}

	return proof, handle, nil
}

// StartVerification validates the phone number, performs the challenge and
// first dispatch, and persists the new session. A provider failure at any
// point leaves no session behind; the caller simply starts again.
func (uc *VerificationUC) StartVerification(ctx context.Context, phoneNumber string) (string, error) {
	isValid, formatted, err := utils.ValidatePhoneNumber(phoneNumber)
	if err != nil || !isValid {
		return "", verification.ErrInvalidPhoneNumber
	}

	proof, handle, err := uc.sendCode(ctx, formatted, false)
	if err != nil {
		logger.WarnCtx(ctx, "Verification start failed before session creation",
			logger.String("phone_number", utils.MaskPhoneNumber(formatted)),
			logger.String("error_kind", verification.Kind(err)),
			logger.Err(err))
		return "", err
	}

	now := time.Now()
	session := &models.VerificationSession{
		ID:                 uuid.New().String(),
		PhoneNumber:        formatted,
		State:              models.StateCodeSent,
		ChallengeProof:     proof,
		ConfirmationHandle: handle,
		CodeSentAt:         now,
		CodeExpiresAt:      now.Add(uc.codeTTL()),
		ResendAvailableAt:  now.Add(uc.resendCooldown()),
		VerifyAttempts:     0,
		ResendCount:        1,
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}

	if err := uc.auditRepo.RecordStarted(ctx, session); err != nil {
		logger.WarnCtx(ctx, "Failed to record verification audit row", logger.Err(err))
	}

	logger.InfoCtx(ctx, "Verification session started",
		logger.String("session_id", session.ID),
		logger.String("phone_number", utils.MaskPhoneNumber(formatted)))

	return session.ID, nil
}

// ResendCode dispatches a fresh code for the session. The per-id lock held
// for the whole mutation (including the provider calls) guarantees two
// concurrent resends cannot both pass the cooldown check, and that a verify
// racing a resend observes either the old or the new handle, never a mix.
func (uc *VerificationUC) ResendCode(ctx context.Context, sessionID string) error {
	_, err := uc.sessionRepo.Update(ctx, sessionID, func(session *models.VerificationSession) error {
		if session.State.Terminal() {
			return verification.ErrSessionTerminal
		}

		if session.CooldownRemaining(time.Now()) > 0 {
			return verification.ErrCooldownActive
		}
		if session.ResendCount >= uc.cfg.Verification.MaxResends {
			return verification.ErrTooManyResends
		}

		proof, handle, err := uc.sendCode(ctx, session.PhoneNumber, true)
		if err != nil {
			return err
		}

		// New dispatch supersedes the previous handle; the old code can
		// no longer verify. The clock is read after the dispatch so the
		// code and cooldown windows are not shortened by provider latency.
		now := time.Now()
		session.State = models.StateCodeSent
		session.ChallengeProof = proof
		session.ConfirmationHandle = handle
		session.CodeSentAt = now
		session.CodeExpiresAt = now.Add(uc.codeTTL())
		session.ResendAvailableAt = now.Add(uc.resendCooldown())
		session.ResendCount++
		session.LastError = ""

		return nil
	})
	if err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Verification code resent", logger.String("session_id", sessionID))
	return nil
}

// VerifyCode checks a submitted code against the outstanding dispatch and
// applies the resulting transition.
func (uc *VerificationUC) VerifyCode(ctx context.Context, sessionID, code string) error {
	if !utils.ValidateCodeFormat(code, uc.cfg.Verification.CodeLength) {
		return verification.ErrInvalidCodeFormat
	}

	// outcome carries errors whose transitions must still be persisted
	// (expiry, wrong code, attempt exhaustion); mutate returns nil for
	// those so the repository writes the new state.
	var outcome error

	updated, err := uc.sessionRepo.Update(ctx, sessionID, func(session *models.VerificationSession) error {
		if session.State.Terminal() {
			return verification.ErrSessionTerminal
		}
		if session.State == models.StateExpired || session.ConfirmationHandle == "" {
			return verification.ErrHandleExpiredOrUnknown
		}

		now := time.Now()
		if session.CodeExpired(now) {
			session.State = models.StateExpired
			session.LastError = verification.Kind(verification.ErrHandleExpiredOrUnknown)
			outcome = verification.ErrHandleExpiredOrUnknown
			return nil
		}

		pctx, cancel := uc.providerCtx(ctx)
		defer cancel()

		ok, err := uc.delivery.ConfirmCode(pctx, session.ConfirmationHandle, code)
		if err != nil {
			if errors.Is(err, verification.ErrHandleExpiredOrUnknown) {
				session.State = models.StateExpired
				session.LastError = verification.Kind(err)
				outcome = verification.ErrHandleExpiredOrUnknown
				return nil
			}
			// Provider trouble: no transition, surface as-is
			return mapTimeout(pctx, err)
		}

		if ok {
			session.State = models.StateVerified
			session.LastError = ""
			return nil
		}

		session.VerifyAttempts++
		if session.VerifyAttempts >= uc.cfg.Verification.MaxVerifyAttempts {
			session.State = models.StateFailed
			session.LastError = verification.Kind(verification.ErrAttemptsExceeded)
			outcome = verification.ErrAttemptsExceeded
		} else {
			session.LastError = verification.Kind(verification.ErrInvalidCode)
			outcome = verification.ErrInvalidCode
		}
		return nil
	})
	if err != nil {
		return err
	}

	if outcome != nil {
		if updated.State.Terminal() || updated.State == models.StateExpired {
			uc.recordOutcome(ctx, updated)
		}
		return outcome
	}

	// Reached only on the transition into VERIFIED
	uc.recordOutcome(ctx, updated)

	event := &models.PhoneVerifiedEvent{
		SessionID:   updated.ID,
		PhoneNumber: updated.PhoneNumber,
		VerifiedAt:  time.Now().Unix(),
	}
	if err := uc.gateway.PublishPhoneVerified(ctx, event); err != nil {
		logger.ErrorCtx(ctx, "Failed to publish phone verified event",
			logger.String("session_id", updated.ID),
			logger.String("subject", constants.SubjectPhoneVerified),
			logger.Err(err))
	}

	logger.InfoCtx(ctx, "Phone number verified",
		logger.String("session_id", updated.ID),
		logger.String("phone_number", utils.MaskPhoneNumber(updated.PhoneNumber)))

	return nil
}

// Reset abandons the session and starts over for the same phone number
// with zeroed counters. Provider failures during the restart do not fail
// the reset: the new session is created in AWAITING_CHALLENGE so the
// caller can drive it forward with ResendCode.
func (uc *VerificationUC) Reset(ctx context.Context, sessionID string) (string, error) {
	old, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if old.ChallengeProof != "" {
		ictx, cancel := uc.providerCtx(ctx)
		if err := uc.challenge.Invalidate(ictx, old.ChallengeProof); err != nil {
			logger.WarnCtx(ctx, "Failed to invalidate challenge proof on reset", logger.Err(err))
		}
		cancel()
	}

	uc.recordOutcome(ctx, old)
	if err := uc.sessionRepo.Delete(ctx, sessionID); err != nil {
		return "", err
	}

	session := &models.VerificationSession{
		ID:          uuid.New().String(),
		PhoneNumber: old.PhoneNumber,
		State:       models.StateAwaitingChallenge,
	}

	proof, handle, err := uc.sendCode(ctx, old.PhoneNumber, true)
	if err != nil {
		session.LastError = verification.Kind(err)
		logger.WarnCtx(ctx, "Reset could not dispatch a code, session awaits challenge",
			logger.String("session_id", session.ID),
			logger.String("error_kind", session.LastError))
	} else {
		// Clock read after the dispatch returns, as in StartVerification
		now := time.Now()
		session.State = models.StateCodeSent
		session.ChallengeProof = proof
		session.ConfirmationHandle = handle
		session.CodeSentAt = now
		session.CodeExpiresAt = now.Add(uc.codeTTL())
		session.ResendAvailableAt = now.Add(uc.resendCooldown())
		session.ResendCount = 1
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}

	if err := uc.auditRepo.RecordStarted(ctx, session); err != nil {
		logger.WarnCtx(ctx, "Failed to record verification audit row", logger.Err(err))
	}

	logger.InfoCtx(ctx, "Verification session reset",
		logger.String("old_session_id", sessionID),
		logger.String("session_id", session.ID))

	return session.ID, nil
}

// GetSession returns the caller-facing view of a session. Remaining
// windows are recomputed from the stored timestamps.
func (uc *VerificationUC) GetSession(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	resp := &models.SessionResponse{
		SessionID:         session.ID,
		PhoneNumber:       utils.MaskPhoneNumber(session.PhoneNumber),
		State:             string(session.State),
		VerifyAttempts:    session.VerifyAttempts,
		AttemptsRemaining: maxInt(0, uc.cfg.Verification.MaxVerifyAttempts-session.VerifyAttempts),
		ResendCount:       session.ResendCount,
		ResendsRemaining:  maxInt(0, uc.cfg.Verification.MaxResends-session.ResendCount),
		CooldownSeconds:   ceilSeconds(session.CooldownRemaining(now)),
		LastError:         session.LastError,
	}

	if session.State == models.StateCodeSent && !session.CodeExpired(now) {
		resp.CodeTTLSeconds = ceilSeconds(session.CodeExpiresAt.Sub(now))
	}

	return resp, nil
}

func (uc *VerificationUC) recordOutcome(ctx context.Context, session *models.VerificationSession) {
	if err := uc.auditRepo.RecordOutcome(ctx, session); err != nil {
		logger.WarnCtx(ctx, "Failed to record verification outcome",
			logger.String("session_id", session.ID),
			logger.Err(err))
	}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
