package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pratama/phoneverify/internal/pkg/constants"
	"github.com/pratama/phoneverify/internal/pkg/database"
	"github.com/pratama/phoneverify/internal/pkg/middleware"
	"github.com/pratama/phoneverify/internal/pkg/models"
	httpHandler "github.com/pratama/phoneverify/services/verification/handler/http"
)

// Handler coordinates the HTTP handlers for the verification service
type Handler struct {
	verificationHandler *httpHandler.VerificationHandler
	redisClient         *database.RedisClient
	cfg                 *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	verificationHandler *httpHandler.VerificationHandler,
	redisClient *database.RedisClient,
	cfg *models.Config,
) *Handler {
	return &Handler{
		verificationHandler: verificationHandler,
		redisClient:         redisClient,
		cfg:                 cfg,
	}
}

// RegisterRoutes registers all routes. Start and resend get the edge rate
// limiter on top of the state machine's own cooldown.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	group := e.Group("/verifications")

	var limited *echo.Group
	if h.cfg.RateLimit.Enabled {
		limited = e.Group("/verifications", middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RedisClient: h.redisClient.GetClient(),
			Key:         constants.KeyRateLimitPrefix,
			Limit:       h.cfg.RateLimit.Limit,
			Period:      time.Duration(h.cfg.RateLimit.Period) * time.Second,
		}))
	} else {
		limited = group
	}

	limited.POST("", h.verificationHandler.StartVerification)
	limited.POST("/:id/resend", h.verificationHandler.ResendCode)

	group.POST("/:id/verify", h.verificationHandler.VerifyCode)
	group.POST("/:id/reset", h.verificationHandler.Reset)
	group.GET("/:id", h.verificationHandler.GetSession)
}
