package models

import "time"

// SessionState is the lifecycle state of a verification session
type SessionState string

const (
	// StateAwaitingChallenge means no code has been dispatched yet; the
	// session needs a successful challenge pass before anything else
	StateAwaitingChallenge SessionState = "AWAITING_CHALLENGE"
	// StateCodeSent means a code is outstanding and can be verified
	StateCodeSent SessionState = "CODE_SENT"
	// StateVerified means the phone number was proven; final
	StateVerified SessionState = "VERIFIED"
	// StateFailed means the attempt budget was exhausted; final
	StateFailed SessionState = "FAILED"
	// StateExpired means the outstanding code lapsed; a resend revives it
	StateExpired SessionState = "EXPIRED"
)

// Terminal reports whether the state accepts no further transitions.
// EXPIRED is not terminal: a resend moves it back to CODE_SENT.
func (s SessionState) Terminal() bool {
	return s == StateVerified || s == StateFailed
}

// VerificationSession tracks one phone number through the verify flow.
// PhoneNumber never changes after creation; starting over for a different
// number means a new session.
type VerificationSession struct {
	ID                 string       `json:"id"`
	PhoneNumber        string       `json:"phone_number"`
	State              SessionState `json:"state"`
	ChallengeProof     string       `json:"challenge_proof,omitempty"`
	ConfirmationHandle string       `json:"confirmation_handle,omitempty"`
	CodeSentAt         time.Time    `json:"code_sent_at,omitempty"`
	CodeExpiresAt      time.Time    `json:"code_expires_at,omitempty"`
	ResendAvailableAt  time.Time    `json:"resend_available_at,omitempty"`
	VerifyAttempts     int          `json:"verify_attempts"`
	ResendCount        int          `json:"resend_count"`
	LastError          string       `json:"last_error,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// CodeExpired reports whether the outstanding code lapsed by now
func (s *VerificationSession) CodeExpired(now time.Time) bool {
	return !s.CodeExpiresAt.IsZero() && now.After(s.CodeExpiresAt)
}

// CooldownRemaining returns how long until another resend is allowed
func (s *VerificationSession) CooldownRemaining(now time.Time) time.Duration {
	if s.ResendAvailableAt.IsZero() {
		return 0
	}
	remaining := s.ResendAvailableAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
