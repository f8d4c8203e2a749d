package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sairam-Chetpelly/visafrontend/internal/api/handler"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// SessionChecker answers whether a token is currently stored.
type SessionChecker interface {
	Authenticated(ctx context.Context) bool
}

// Guard redirects page requests according to token presence alone and
// records the answer in the context for the handler.
func Guard(sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authenticated := sessions.Authenticated(c.Request().Context())
			c.Set(handler.CtxAuthenticated, authenticated)

			target, redirect := domain.GuardRedirect(domain.Route(c.Path()), authenticated)
			if !redirect {
				return next(c)
			}

			code := http.StatusFound
			if c.Request().Method != http.MethodGet && c.Request().Method != http.MethodHead {
				code = http.StatusSeeOther
			}
			return c.Redirect(code, string(target))
		}
	}
}
