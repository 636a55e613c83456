package handler

import (
	"net/http"

	"link-hub/internal/domain"
	"link-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler manages the credential fragments and the OTP pass-through.
type AuthHandler struct {
	otp    *usecase.SendOTP
	stores StoreFactory
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(otp *usecase.SendOTP, stores StoreFactory) *AuthHandler {
	return &AuthHandler{otp: otp, stores: stores}
}

// otpRequest is the body for POST /auth/otp.
type otpRequest struct {
	Email string `json:"email"`
}

// HandleSendOTP processes POST /auth/otp.
func (h *AuthHandler) HandleSendOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.otp.Execute(ctx, req.Email); err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// setSessionRequest is the body for PUT /auth/session.
type setSessionRequest struct {
	Session string `json:"session"`
	Token   string `json:"token"`
}

// HandleSetSession processes PUT /auth/session: persists both credential
// fragments as secure cookies. Both must be present; a partial credential
// is never stored.
func (h *AuthHandler) HandleSetSession(c echo.Context) error {
	var req setSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	fragments := domain.CredentialFragments{Session: req.Session, Token: req.Token}
	if _, err := domain.ComposeCredential(fragments); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "both session and token are required")
	}

	h.stores(c).Set(fragments)
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// HandleClearSession processes DELETE /auth/session.
func (h *AuthHandler) HandleClearSession(c echo.Context) error {
	h.stores(c).Clear()
	return c.NoContent(http.StatusNoContent)
}
