package models

// StartVerificationRequest represents a request to begin verifying a phone number
type StartVerificationRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// VerifyCodeRequest represents a request to check a user-entered code
type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// SessionResponse is the caller-facing view of a verification session.
// Remaining windows are recomputed server-side from stored timestamps so
// clients never have to keep their own countdown accurate.
type SessionResponse struct {
	SessionID         string `json:"session_id"`
	PhoneNumber       string `json:"phone_number"`
	State             string `json:"state"`
	VerifyAttempts    int    `json:"verify_attempts"`
	AttemptsRemaining int    `json:"attempts_remaining"`
	ResendCount       int    `json:"resend_count"`
	ResendsRemaining  int    `json:"resends_remaining"`
	CooldownSeconds   int    `json:"cooldown_seconds"`
	CodeTTLSeconds    int    `json:"code_ttl_seconds"`
	LastError         string `json:"last_error,omitempty"`
}

// PhoneVerifiedEvent is emitted once when a session reaches VERIFIED.
// Downstream login/signup services exchange it for an application session.
type PhoneVerifiedEvent struct {
	SessionID   string `json:"session_id"`
	PhoneNumber string `json:"phone_number"`
	VerifiedAt  int64  `json:"verified_at"`
}
