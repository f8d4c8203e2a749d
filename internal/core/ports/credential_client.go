package ports

import (
	"context"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// CredentialClient performs the remote credential exchanges. Every failure is a
// *domain.AuthError.
type CredentialClient interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Session, error)
	CreateAccount(ctx context.Context, req domain.RegistrationRequest) (*domain.Confirmation, error)
}

// TokenDecoder extracts the claims the client needs from a bearer token.
type TokenDecoder interface {
	Decode(raw string) (domain.TokenClaims, error)
}
