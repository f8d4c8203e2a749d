package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// CtxAuthenticated is the context key the Guard middleware sets with the
// token-presence check it already made for this request.
const CtxAuthenticated = "authenticated"

// ctxAuthenticated returns the guard's answer. ok is false when the guard did
// not run for this route.
func ctxAuthenticated(c echo.Context) (authenticated, ok bool) {
	authenticated, ok = c.Get(CtxAuthenticated).(bool)
	return authenticated, ok
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func currentRoute(c echo.Context) domain.Route {
	return domain.Route(c.Path())
}
