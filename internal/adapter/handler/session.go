package handler

import (
	"net/http"

	"link-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionHandler handles GET /session returning the caller's resolved role
// for the frontend, plus a signed backend token header.
type SessionHandler struct {
	uc     *usecase.GetSession
	stores StoreFactory
}

// NewSessionHandler creates the session handler.
func NewSessionHandler(uc *usecase.GetSession, stores StoreFactory) *SessionHandler {
	return &SessionHandler{uc: uc, stores: stores}
}

// sessionResponse represents the JSON response structure. The role here is
// a display hint only; privileged routes re-resolve it on every call.
type sessionResponse struct {
	OK   bool   `json:"ok"`
	Role string `json:"role"`
}

// Handle processes the /session endpoint.
func (h *SessionHandler) Handle(c echo.Context) error {
	result, err := h.uc.Execute(c.Request().Context(), h.stores(c))
	if err != nil {
		return mapDomainError(err)
	}

	c.Response().Header().Set("X-Backend-Token", result.BackendToken)

	return c.JSON(http.StatusOK, sessionResponse{
		OK:   true,
		Role: string(result.Role),
	})
}
