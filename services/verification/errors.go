package verification

import "errors"

// Input errors, rejected before any provider call
var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrInvalidCodeFormat  = errors.New("invalid code format")
)

// Challenge errors
var (
	ErrChallengeUnavailable = errors.New("challenge provider unavailable")
	ErrChallengeExpired     = errors.New("challenge proof expired")
)

// Delivery errors
var (
	ErrInvalidChallenge    = errors.New("challenge proof rejected by delivery provider")
	ErrRateLimited         = errors.New("rate limited by delivery provider")
	ErrDeliveryUnavailable = errors.New("delivery provider unavailable")
)

// Verification errors
var (
	ErrInvalidCode            = errors.New("invalid verification code")
	ErrAttemptsExceeded       = errors.New("verification attempts exceeded")
	ErrHandleExpiredOrUnknown = errors.New("confirmation handle expired or unknown")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("verification session not found")
	ErrCooldownActive  = errors.New("resend cooldown active")
	ErrTooManyResends  = errors.New("resend limit reached")
	ErrSessionTerminal = errors.New("verification session already finished")
)

// Infrastructure errors
var (
	ErrProviderTimeout  = errors.New("provider call timed out")
	ErrStoreUnavailable = errors.New("session store unavailable")
)

// Kind returns the short error-kind name surfaced to callers, e.g. in the
// session's last_error field. Unrecognized errors map to "Internal".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidPhoneNumber):
		return "InvalidPhoneNumber"
	case errors.Is(err, ErrInvalidCodeFormat):
		return "InvalidCodeFormat"
	case errors.Is(err, ErrChallengeUnavailable):
		return "ChallengeUnavailable"
	case errors.Is(err, ErrChallengeExpired):
		return "ChallengeExpired"
	case errors.Is(err, ErrInvalidChallenge):
		return "InvalidChallenge"
	case errors.Is(err, ErrRateLimited):
		return "RateLimited"
	case errors.Is(err, ErrDeliveryUnavailable):
		return "DeliveryUnavailable"
	case errors.Is(err, ErrInvalidCode):
		return "InvalidCode"
	case errors.Is(err, ErrAttemptsExceeded):
		return "AttemptsExceeded"
	case errors.Is(err, ErrHandleExpiredOrUnknown):
		return "HandleExpiredOrUnknown"
	case errors.Is(err, ErrSessionNotFound):
		return "SessionNotFound"
	case errors.Is(err, ErrCooldownActive):
		return "CooldownActive"
	case errors.Is(err, ErrTooManyResends):
		return "TooManyResends"
	case errors.Is(err, ErrSessionTerminal):
		return "SessionTerminal"
	case errors.Is(err, ErrProviderTimeout):
		return "ProviderTimeout"
	case errors.Is(err, ErrStoreUnavailable):
		return "StoreUnavailable"
	default:
		return "Internal"
	}
}
