package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// StatusFor maps an error from the session layer to the HTTP status and the
// message shown to the user. ok is false for errors with no user-facing mapping.
func StatusFor(err error) (code int, msg string, ok bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, isString := he.Message.(string); isString {
			return he.Code, m, true
		}
		return he.Code, http.StatusText(he.Code), true
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Error(), true
	}

	var ae *domain.AuthError
	if errors.As(err, &ae) {
		if ae.StatusCode >= 400 && ae.StatusCode <= 599 {
			return ae.StatusCode, ae.Message, true
		}
		return http.StatusBadGateway, ae.Message, true
	}

	if errors.Is(err, domain.ErrSessionSuperseded) {
		return http.StatusConflict, "session changed, please try again", true
	}
	return http.StatusInternalServerError, "internal server error", false
}
