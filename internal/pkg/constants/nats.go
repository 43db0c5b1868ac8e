package constants

// NATS Subjects
const (
	// Verification Service
	SubjectPhoneVerified = "phone.verified"
)
