package handler

import (
	"errors"
	"net/http"

	"link-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
// Upstream payloads are never echoed back to the caller.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrMissingCredential):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	case errors.Is(err, domain.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "not permitted")

	case errors.Is(err, domain.ErrLinkExpired):
		return echo.NewHTTPError(http.StatusGone, "link expired, start linking again")

	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrLinkSuperseded):
		return echo.NewHTTPError(http.StatusConflict, "operation not valid for this link session")

	case errors.Is(err, domain.ErrNoIdentifiers),
		errors.Is(err, domain.ErrInvalidEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")

	case errors.Is(err, domain.ErrRoleResolution):
		return echo.NewHTTPError(http.StatusBadGateway, "could not verify permissions")

	case errors.Is(err, domain.ErrTokenGeneration):
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation error")
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		switch upstream.Kind {
		case domain.UpstreamNetwork, domain.UpstreamServerFault:
			return echo.NewHTTPError(http.StatusBadGateway, "upstream unavailable, try again later")
		case domain.UpstreamMalformed:
			return echo.NewHTTPError(http.StatusBadGateway, "unexpected upstream response")
		default:
			return echo.NewHTTPError(http.StatusBadGateway, "upstream rejected the request")
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
