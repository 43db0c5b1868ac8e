package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/internal/utils"
	"github.com/pratama/phoneverify/services/verification"
)

// VerificationHandler exposes the verification operations over HTTP
type VerificationHandler struct {
	verificationUC verification.VerificationUC
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationUC verification.VerificationUC) *VerificationHandler {
	return &VerificationHandler{verificationUC: verificationUC}
}

// StartVerification handles POST /verifications
func (h *VerificationHandler) StartVerification(c echo.Context) error {
	var request models.StartVerificationRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if request.PhoneNumber == "" {
		return utils.BadRequestResponse(c, "phone_number is required")
	}

	sessionID, err := h.verificationUC.StartVerification(c.Request().Context(), request.PhoneNumber)
	if err != nil {
		return errorToResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Verification code sent", map[string]string{
		"session_id": sessionID,
	})
}

// ResendCode handles POST /verifications/:id/resend
func (h *VerificationHandler) ResendCode(c echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return utils.BadRequestResponse(c, "session id is required")
	}

	if err := h.verificationUC.ResendCode(c.Request().Context(), sessionID); err != nil {
		return errorToResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Verification code resent", nil)
}

// VerifyCode handles POST /verifications/:id/verify
func (h *VerificationHandler) VerifyCode(c echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return utils.BadRequestResponse(c, "session id is required")
	}

	var request models.VerifyCodeRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if request.Code == "" {
		return utils.BadRequestResponse(c, "code is required")
	}

	if err := h.verificationUC.VerifyCode(c.Request().Context(), sessionID, request.Code); err != nil {
		return errorToResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Phone number verified", nil)
}

// Reset handles POST /verifications/:id/reset
func (h *VerificationHandler) Reset(c echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return utils.BadRequestResponse(c, "session id is required")
	}

	newSessionID, err := h.verificationUC.Reset(c.Request().Context(), sessionID)
	if err != nil {
		return errorToResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Verification session reset", map[string]string{
		"session_id": newSessionID,
	})
}

// GetSession handles GET /verifications/:id
func (h *VerificationHandler) GetSession(c echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return utils.BadRequestResponse(c, "session id is required")
	}

	session, err := h.verificationUC.GetSession(c.Request().Context(), sessionID)
	if err != nil {
		return errorToResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "", session)
}

// errorToResponse maps domain error kinds onto HTTP status codes. The kind
// name is returned as the error string so clients can branch on it.
func errorToResponse(c echo.Context, err error) error {
	kind := verification.Kind(err)

	switch {
	case errors.Is(err, verification.ErrInvalidPhoneNumber),
		errors.Is(err, verification.ErrInvalidCodeFormat):
		return utils.BadRequestResponse(c, kind)

	case errors.Is(err, verification.ErrSessionNotFound):
		return utils.NotFoundResponse(c, kind)

	case errors.Is(err, verification.ErrCooldownActive),
		errors.Is(err, verification.ErrRateLimited),
		errors.Is(err, verification.ErrTooManyResends):
		return utils.TooManyRequestsResponse(c, kind)

	case errors.Is(err, verification.ErrSessionTerminal),
		errors.Is(err, verification.ErrAttemptsExceeded):
		return utils.ConflictResponse(c, kind)

	case errors.Is(err, verification.ErrInvalidCode),
		errors.Is(err, verification.ErrHandleExpiredOrUnknown),
		errors.Is(err, verification.ErrInvalidChallenge),
		errors.Is(err, verification.ErrChallengeExpired):
		return utils.ErrorResponseHandler(c, http.StatusUnprocessableEntity, kind)

	case errors.Is(err, verification.ErrChallengeUnavailable),
		errors.Is(err, verification.ErrDeliveryUnavailable),
		errors.Is(err, verification.ErrProviderTimeout),
		errors.Is(err, verification.ErrStoreUnavailable):
		return utils.ServiceUnavailableResponse(c, kind)

	default:
		return utils.InternalServerErrorResponse(c, kind)
	}
}
