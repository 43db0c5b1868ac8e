package models

// Config represents application configuration
type Config struct {
	App          AppConfig
	Server       ServerConfig
	Redis        RedisConfig
	Postgres     PostgresConfig
	NATS         NATSConfig
	NewRelic     NewRelicConfig
	Logger       LoggerConfig
	Verification VerificationConfig
	Challenge    ChallengeConfig
	SMSProvider  SMSProviderConfig
	RateLimit    RateLimitConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// PostgresConfig contains PostgreSQL connection configuration
type PostgresConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// VerificationConfig bounds the verification session state machine.
// Durations are in seconds to keep env parsing uniform.
type VerificationConfig struct {
	CodeTTL           int // validity window of a dispatched code
	ResendCooldown    int // minimum gap between sends on one session
	MaxVerifyAttempts int // wrong codes tolerated before FAILED
	MaxResends        int // codes dispatched per session before forcing a new one
	SessionIdleTTL    int // idle sessions are purged after this
	TerminalGrace     int // VERIFIED/FAILED sessions linger this long for status polling
	ProviderTimeout   int // per-call timeout for challenge and delivery providers
	CodeLength        int
}

// ChallengeConfig configures the anti-abuse challenge provider
type ChallengeConfig struct {
	Mode        string // "signed", "riskapi" or "static"
	Secret      string // HMAC secret for signed proofs
	ProofTTL    int    // seconds a proof stays valid
	RiskAPIURL  string
	RiskAPIKey  string
	MaxRiskTier int
}

// SMSProviderConfig configures the OTP delivery provider
type SMSProviderConfig struct {
	Mode      string // "http" or "local"
	BaseURL   string
	APIKey    string
	SenderID  string
	MaxRetry  int
	RetryWait int // milliseconds between retries
}

// RateLimitConfig configures the edge rate limiter on public routes
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Period  int // seconds
}
