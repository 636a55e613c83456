package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	linkPolicy string
}

// NewHealthHandler creates a health handler that reports the active link policy.
func NewHealthHandler(linkPolicy string) *HealthHandler {
	return &HealthHandler{linkPolicy: linkPolicy}
}

// Handle processes the /health endpoint.
func (h *HealthHandler) Handle(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "healthy",
		"service":     "link-hub",
		"link_policy": h.linkPolicy,
	})
}
