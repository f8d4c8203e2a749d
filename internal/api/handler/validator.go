package handler

import (
	"github.com/Sairam-Chetpelly/visafrontend/internal/pkg/validation"
)

// echoValidator lets Echo call c.Validate(req) through the shared validator.
// Failures are *domain.ValidationError values.
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validation.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}
