package verification

import "context"

//go:generate mockgen -destination=mocks/mock_providers.go -package=mocks github.com/pratama/phoneverify/services/verification ChallengeProvider,OtpDeliveryProvider

// ChallengeProvider obtains and discards anti-abuse proofs. A proof must
// accompany every code dispatch; the delivery provider rejects stale ones.
type ChallengeProvider interface {
	// Issue obtains a fresh proof, blocking until the underlying challenge
	// resolves or the context expires.
	Issue(ctx context.Context) (string, error)

	// Invalidate discards a proof so provider-side state is not reused.
	// Best-effort; failures are logged, never surfaced.
	Invalidate(ctx context.Context, proof string) error
}

// OtpDeliveryProvider dispatches one-time codes through an external channel
// and later checks user-entered codes against the outstanding dispatch.
type OtpDeliveryProvider interface {
	// SendCode dispatches a code to the phone number and returns an opaque
	// confirmation handle identifying the dispatch.
	SendCode(ctx context.Context, phoneNumber, challengeProof string) (string, error)

	// ConfirmCode checks code against the dispatch identified by handle.
	// Returns false with a nil error on a plain mismatch.
	ConfirmCode(ctx context.Context, handle, code string) (bool, error)
}
