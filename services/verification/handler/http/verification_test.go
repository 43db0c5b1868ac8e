package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratama/phoneverify/internal/pkg/models"
	"github.com/pratama/phoneverify/services/verification"
	"github.com/pratama/phoneverify/services/verification/mocks"
)

func setupHandlerTest(t *testing.T) (*VerificationHandler, *mocks.MockVerificationUC, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockVerificationUC(ctrl)
	return NewVerificationHandler(mockUC), mockUC, ctrl
}

func newEchoContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestStartVerification_Success(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications", `{"phone_number": "+14155550100"}`)

	mockUC.EXPECT().
		StartVerification(gomock.Any(), "+14155550100").
		Return("session-1", nil)

	err := handler.StartVerification(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "session-1", data["session_id"])
}

func TestStartVerification_EmptyPhoneNumber(t *testing.T) {
	handler, _, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications", `{"phone_number": ""}`)

	err := handler.StartVerification(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartVerification_InvalidPhoneNumber(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications", `{"phone_number": "12345"}`)

	mockUC.EXPECT().
		StartVerification(gomock.Any(), "12345").
		Return("", verification.ErrInvalidPhoneNumber)

	err := handler.StartVerification(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "InvalidPhoneNumber", response["error"])
}

func TestStartVerification_DeliveryUnavailable(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications", `{"phone_number": "+14155550100"}`)

	mockUC.EXPECT().
		StartVerification(gomock.Any(), "+14155550100").
		Return("", verification.ErrDeliveryUnavailable)

	err := handler.StartVerification(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestResendCode_Success(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications/session-1/resend", "")
	c.SetParamNames("id")
	c.SetParamValues("session-1")

	mockUC.EXPECT().ResendCode(gomock.Any(), "session-1").Return(nil)

	err := handler.ResendCode(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResendCode_CooldownActive(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications/session-1/resend", "")
	c.SetParamNames("id")
	c.SetParamValues("session-1")

	mockUC.EXPECT().ResendCode(gomock.Any(), "session-1").Return(verification.ErrCooldownActive)

	err := handler.ResendCode(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "CooldownActive", response["error"])
}

func TestResendCode_SessionNotFound(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications/missing/resend", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	mockUC.EXPECT().ResendCode(gomock.Any(), "missing").Return(verification.ErrSessionNotFound)

	err := handler.ResendCode(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerifyCode_Success(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications/session-1/verify", `{"code": "123456"}`)
	c.SetParamNames("id")
	c.SetParamValues("session-1")

	mockUC.EXPECT().VerifyCode(gomock.Any(), "session-1", "123456").Return(nil)

	err := handler.VerifyCode(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVerifyCode_WrongCode(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications/session-1/verify", `{"code": "000000"}`)
	c.SetParamNames("id")
	c.SetParamValues("session-1")

	mockUC.EXPECT().VerifyCode(gomock.Any(), "session-1", "000000").Return(verification.ErrInvalidCode)

	err := handler.VerifyCode(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestVerifyCode_AttemptsExceeded(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications/session-1/verify", `{"code": "000000"}`)
	c.SetParamNames("id")
	c.SetParamValues("session-1")

	mockUC.EXPECT().VerifyCode(gomock.Any(), "session-1", "000000").Return(verification.ErrAttemptsExceeded)

	err := handler.VerifyCode(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVerifyCode_EmptyCode(t *testing.T) {
	handler, _, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications/session-1/verify", `{"code": ""}`)
	c.SetParamNames("id")
	c.SetParamValues("session-1")

	err := handler.VerifyCode(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReset_Success(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodPost, "/verifications/session-1/reset", "")
	c.SetParamNames("id")
	c.SetParamValues("session-1")

	mockUC.EXPECT().Reset(gomock.Any(), "session-1").Return("session-2", nil)

	err := handler.Reset(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "session-2", data["session_id"])
}

func TestGetSession_Success(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodGet, "/verifications/session-1", "")
	c.SetParamNames("id")
	c.SetParamValues("session-1")

	mockUC.EXPECT().
		GetSession(gomock.Any(), "session-1").
		Return(&models.SessionResponse{
			SessionID:         "session-1",
			PhoneNumber:       "+1415***0100",
			State:             "CODE_SENT",
			AttemptsRemaining: 3,
			ResendsRemaining:  2,
		}, nil)

	err := handler.GetSession(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "session-1", data["session_id"])
	assert.Equal(t, "+1415***0100", data["phone_number"])
	assert.Equal(t, "CODE_SENT", data["state"])
}

func TestGetSession_NotFound(t *testing.T) {
	handler, mockUC, ctrl := setupHandlerTest(t)
	defer ctrl.Finish()

	c, rec := newEchoContext(http.MethodGet, "/verifications/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	mockUC.EXPECT().GetSession(gomock.Any(), "missing").Return(nil, verification.ErrSessionNotFound)

	err := handler.GetSession(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
