package constants

// Redis key formats
const (
	// Verification Service
	KeyVerifySession  = "verify:session:%s"   // Format: verify:session:{session_id}
	KeyVerifySweepIdx = "verify:sweep"        // ZSET of session ids scored by eviction deadline
	KeyLocalOTP       = "verify:otp:%s"       // Format: verify:otp:{handle} (local provider, bcrypt hash)
	KeyLocalOTPPhone  = "verify:otp:phone:%s" // Format: verify:otp:phone:{phone} -> outstanding handle
	KeyChallengeDeny  = "verify:denied:%s"    // Format: verify:denied:{jti} (invalidated proofs)

	// Rate Limiting (the middleware appends path and client ip)
	KeyRateLimitPrefix = "rate:limit:verify"
)
