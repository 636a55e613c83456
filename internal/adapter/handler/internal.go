package handler

import (
	"log/slog"
	"net/http"

	"link-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// InternalHandler handles internal ops requests, protected by the shared
// secret middleware.
type InternalHandler struct {
	registry domain.AttemptRegistry
	logger   *slog.Logger
}

// NewInternalHandler creates a new internal handler.
func NewInternalHandler(registry domain.AttemptRegistry, logger *slog.Logger) *InternalHandler {
	return &InternalHandler{registry: registry, logger: logger}
}

// HandleFlushAttempts drops all tracked link attempts. Useful after a
// provider-side incident leaves stale supersede entries behind.
func (h *InternalHandler) HandleFlushAttempts(c echo.Context) error {
	ctx := c.Request().Context()

	h.registry.Flush()

	h.logger.InfoContext(ctx, "link attempt registry flushed", "remote_addr", c.RealIP())
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
