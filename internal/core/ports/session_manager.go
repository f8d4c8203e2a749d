package ports

import (
	"context"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// SessionState is the observable state of a SessionManager.
type SessionState struct {
	User        *domain.User `json:"user"`
	Loading     bool         `json:"loading"`
	Error       string       `json:"error,omitempty"`
	Initialized bool         `json:"initialized"`
}

// SessionManager drives the login, registration and logout lifecycle.
type SessionManager interface {
	Init(ctx context.Context) SessionState
	State() SessionState
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, req domain.RegistrationRequest) (*domain.Confirmation, error)
	Logout(ctx context.Context) error
	Authenticated(ctx context.Context) bool
	LandingRoute(ctx context.Context, fallback domain.User) domain.Route
	ScheduleLanding(ctx context.Context, user domain.User) domain.Route
	ScheduleSignIn() domain.Route
}
