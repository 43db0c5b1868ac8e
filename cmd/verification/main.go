package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pratama/phoneverify/internal/pkg/circuitbreaker"
	"github.com/pratama/phoneverify/internal/pkg/config"
	"github.com/pratama/phoneverify/internal/pkg/database"
	"github.com/pratama/phoneverify/internal/pkg/health"
	httppkg "github.com/pratama/phoneverify/internal/pkg/http"
	"github.com/pratama/phoneverify/internal/pkg/logger"
	"github.com/pratama/phoneverify/internal/pkg/middleware"
	"github.com/pratama/phoneverify/internal/pkg/models"
	natspkg "github.com/pratama/phoneverify/internal/pkg/nats"
	nrpkg "github.com/pratama/phoneverify/internal/pkg/newrelic"
	"github.com/pratama/phoneverify/internal/pkg/retry"
	"github.com/pratama/phoneverify/internal/pkg/server"
	"github.com/pratama/phoneverify/services/verification"
	gatewayNats "github.com/pratama/phoneverify/services/verification/gateway/nats"
	"github.com/pratama/phoneverify/services/verification/handler"
	httpHandler "github.com/pratama/phoneverify/services/verification/handler/http"
	"github.com/pratama/phoneverify/services/verification/provider/challenge"
	"github.com/pratama/phoneverify/services/verification/provider/sms"
	"github.com/pratama/phoneverify/services/verification/repository"
	"github.com/pratama/phoneverify/services/verification/usecase"
)

const sweepInterval = 30 * time.Second

func main() {
	appName := "verification-service"
	configPath := "config/verification.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL for the audit trail
	postgresClient, err := database.NewPostgresClient(configs.Postgres)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis for session storage
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	// Initialize repositories
	sessionRepo := repository.NewSessionRepo(configs, redisClient)
	auditRepo := repository.NewAuditRepo(postgresClient.GetDB())

	// Initialize providers
	challengeProvider := buildChallengeProvider(configs, zapLogger, redisClient)
	deliveryProvider := buildDeliveryProvider(configs, zapLogger, redisClient, challengeProvider)

	// Initialize gateway
	verificationGW := gatewayNats.NewNATSGateway(natsClient)

	// Initialize usecase
	verificationUC := usecase.NewVerificationUC(
		sessionRepo,
		auditRepo,
		challengeProvider,
		deliveryProvider,
		verificationGW,
		configs,
	)

	// Background sweeper evicts expired sessions
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	sessionRepo.StartSweeper(sweepCtx, sweepInterval)

	// Initialize handlers
	verificationHandler := httpHandler.NewVerificationHandler(verificationUC)
	h := handler.NewHandler(verificationHandler, redisClient, configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName)
	h.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server error", logger.Err(err))
	}
}

// buildChallengeProvider selects the anti-abuse challenge provider by mode
func buildChallengeProvider(
	configs *models.Config,
	zapLogger *logger.ZapLogger,
	redisClient *database.RedisClient,
) verification.ChallengeProvider {
	switch configs.Challenge.Mode {
	case "riskapi":
		client := httppkg.NewClient(configs.Challenge.RiskAPIURL,
			time.Duration(configs.Verification.ProviderTimeout)*time.Second)
		breaker := circuitbreaker.New(circuitbreaker.DefaultConfig("risk-api"), zapLogger)
		return challenge.NewRiskAPIProvider(configs.Challenge, client, breaker)
	case "static":
		zapLogger.Warn("Using static challenge provider; do not use in production")
		return challenge.NewStaticProvider()
	default:
		return challenge.NewSignedNonceProvider(configs.Challenge, redisClient)
	}
}

// buildDeliveryProvider selects the OTP delivery provider by mode. The local
// provider needs the challenge provider to double as a proof validator.
func buildDeliveryProvider(
	configs *models.Config,
	zapLogger *logger.ZapLogger,
	redisClient *database.RedisClient,
	challengeProvider verification.ChallengeProvider,
) verification.OtpDeliveryProvider {
	switch configs.SMSProvider.Mode {
	case "http":
		client := httppkg.NewClient(configs.SMSProvider.BaseURL,
			time.Duration(configs.Verification.ProviderTimeout)*time.Second)
		breaker := circuitbreaker.New(circuitbreaker.DefaultConfig("sms-provider"), zapLogger)
		retrier := retry.New(sms.RetryConfig(configs.SMSProvider), zapLogger)
		return sms.NewHTTPProvider(configs.SMSProvider, client, breaker, retrier)
	default:
		validator, ok := challengeProvider.(sms.ProofValidator)
		if !ok {
			zapLogger.Fatal("Local SMS provider requires a challenge provider that validates proofs",
				logger.String("challenge_mode", configs.Challenge.Mode))
		}
		return sms.NewLocalProvider(configs.Verification, redisClient, validator)
	}
}
