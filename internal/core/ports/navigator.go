package ports

import (
	"time"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

// Navigator delivers navigation signals to whatever surface is showing the views.
type Navigator interface {
	Navigate(route domain.Route)
	NavigateAfter(delay time.Duration, route domain.Route)
	CancelPending()
}
