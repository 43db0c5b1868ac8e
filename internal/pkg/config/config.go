package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pratama/phoneverify/internal/pkg/models"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "verification-service")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9990)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 0)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// Postgres config
	configs.Postgres.Host = GetEnv("DB_HOST", "")
	configs.Postgres.Port = GetEnvAsInt("DB_PORT", 0)
	configs.Postgres.Username = GetEnv("DB_USERNAME", "")
	configs.Postgres.Password = GetEnv("DB_PASSWORD", "")
	configs.Postgres.Database = GetEnv("DB_DATABASE", "")
	configs.Postgres.SSLMode = GetEnv("DB_SSL_MODE", "")
	configs.Postgres.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Postgres.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	// Verification config
	configs.Verification.CodeTTL = GetEnvAsInt("VERIFY_CODE_TTL", 120)
	configs.Verification.ResendCooldown = GetEnvAsInt("VERIFY_RESEND_COOLDOWN", 30)
	configs.Verification.MaxVerifyAttempts = GetEnvAsInt("VERIFY_MAX_ATTEMPTS", 5)
	configs.Verification.MaxResends = GetEnvAsInt("VERIFY_MAX_RESENDS", 5)
	configs.Verification.SessionIdleTTL = GetEnvAsInt("VERIFY_SESSION_IDLE_TTL", 900)
	configs.Verification.TerminalGrace = GetEnvAsInt("VERIFY_TERMINAL_GRACE", 300)
	configs.Verification.ProviderTimeout = GetEnvAsInt("VERIFY_PROVIDER_TIMEOUT", 10)
	configs.Verification.CodeLength = GetEnvAsInt("VERIFY_CODE_LENGTH", 6)

	// Challenge provider config
	configs.Challenge.Mode = GetEnv("CHALLENGE_MODE", "signed")
	configs.Challenge.Secret = GetEnv("CHALLENGE_SECRET", "")
	configs.Challenge.ProofTTL = GetEnvAsInt("CHALLENGE_PROOF_TTL", 180)
	configs.Challenge.RiskAPIURL = GetEnv("CHALLENGE_RISK_API_URL", "")
	configs.Challenge.RiskAPIKey = GetEnv("CHALLENGE_RISK_API_KEY", "")
	configs.Challenge.MaxRiskTier = GetEnvAsInt("CHALLENGE_MAX_RISK_TIER", 2)

	// SMS provider config
	configs.SMSProvider.Mode = GetEnv("SMS_PROVIDER_MODE", "local")
	configs.SMSProvider.BaseURL = GetEnv("SMS_PROVIDER_URL", "")
	configs.SMSProvider.APIKey = GetEnv("SMS_PROVIDER_API_KEY", "")
	configs.SMSProvider.SenderID = GetEnv("SMS_PROVIDER_SENDER_ID", "")
	configs.SMSProvider.MaxRetry = GetEnvAsInt("SMS_PROVIDER_MAX_RETRY", 2)
	configs.SMSProvider.RetryWait = GetEnvAsInt("SMS_PROVIDER_RETRY_WAIT", 500)

	// Rate limit config
	configs.RateLimit.Enabled = GetEnvAsBool("RATE_LIMIT_ENABLED", true)
	configs.RateLimit.Limit = GetEnvAsInt("RATE_LIMIT_REQUESTS", 10)
	configs.RateLimit.Period = GetEnvAsInt("RATE_LIMIT_PERIOD", 60)

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
