package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plasturgie/learning-platform/internal/api/middleware"
	"github.com/plasturgie/learning-platform/internal/core/domain"
)

// requirePrincipal extracts the principal injected by the Authenticate
// middleware. Handlers behind an owner-or-role policy call this before any
// service call: the policy layer guarantees presence on configured routes,
// but the handler re-checks so it never depends on table completeness.
func requirePrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.Principal(c)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}
