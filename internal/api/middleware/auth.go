package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/plasturgie/learning-platform/internal/api/metrics"
	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/service"
)

// PrincipalKey is the echo context key under which Authenticate stores the
// caller's *domain.Principal.
const PrincipalKey = "principal"

// Authenticate parses the Authorization header when one is present and
// injects the resulting principal into the request context.
//
// A missing header is not an error here: the request proceeds without a
// principal and the policy layer decides whether that is acceptable for the
// route. A header that is present but unusable (wrong scheme, malformed
// token, expired token, bad signature) fails immediately with 401.
func Authenticate(codec *service.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := codec.Validate(parts[1])
			if err != nil {
				reason, msg := authFailure(err)
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msg)
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

func authFailure(err error) (reason, message string) {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired", "token expired"
	case errors.Is(err, domain.ErrBadSignature):
		return "bad_signature", "invalid token signature"
	default:
		return "malformed", "invalid token"
	}
}

// Principal returns the authenticated principal from the echo context, or
// nil when the request carried no credentials.
func Principal(c echo.Context) *domain.Principal {
	p, _ := c.Get(PrincipalKey).(*domain.Principal)
	return p
}
