package ports

import (
	"context"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// SessionStore persists the current session across restarts. Missing or corrupt
// data reads as "no session"; it is never reported as an error.
type SessionStore interface {
	Has(ctx context.Context) bool
	HasToken(ctx context.Context) bool
	Read(ctx context.Context) (*domain.Session, bool)
	Write(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
