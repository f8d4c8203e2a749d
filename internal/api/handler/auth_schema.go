package handler

import (
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginResponse struct {
	User *domain.User `json:"user"`
	// Destination is the dashboard chosen from the user record.
	Destination domain.Route `json:"destination"`
	// Redirect is the dashboard chosen from the stored token; clients navigate
	// there after RedirectAfterMs.
	Redirect        domain.Route `json:"redirect"`
	RedirectAfterMs int64        `json:"redirectAfterMs"`
	Message         string       `json:"message"`
}

type registerResponse struct {
	Message         string       `json:"message"`
	Redirect        domain.Route `json:"redirect"`
	RedirectAfterMs int64        `json:"redirectAfterMs"`
	Confirmation    any          `json:"confirmation,omitempty"`
}

type sessionResponse struct {
	State         ports.SessionState `json:"state"`
	Authenticated bool               `json:"authenticated"`
	Destination   domain.Route       `json:"destination,omitempty"`
}

type logoutResponse struct {
	Redirect domain.Route `json:"redirect"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}
