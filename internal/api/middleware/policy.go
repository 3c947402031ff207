package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plasturgie/learning-platform/internal/api/metrics"
	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/policy"
)

// RouteKey builds the lookup key used by the route policy table: the HTTP
// method and the registered route pattern, e.g. "PUT /api/reviews/:id".
func RouteKey(method, path string) string {
	return method + " " + path
}

// EnforcePolicy authorizes every request against a static route policy
// table. Routes absent from the table require authentication; whitelisting
// is always explicit. Ownership checks under an owner-or-role policy are
// completed by the service layer, which knows who owns the resource; here
// only the presence and role requirements are enforced.
func EnforcePolicy(table map[string]policy.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			pol, ok := table[RouteKey(c.Request().Method, c.Path())]
			if !ok {
				pol = policy.Authenticated()
			}

			if err := policy.Authorize(Principal(c), pol); err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthorized):
					metrics.AuthFailuresTotal.WithLabelValues("missing_principal").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				case errors.Is(err, domain.ErrForbidden):
					metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
				default:
					return err
				}
			}

			return next(c)
		}
	}
}
