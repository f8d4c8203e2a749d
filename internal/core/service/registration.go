package service

import (
	"strings"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/pkg/validation"
)

// Form messages shown verbatim to the user.
const (
	MsgPasswordMismatch = "Passwords do not match"
	MsgMobileRequired   = "Please enter a valid mobile number with country code"
)

var formValidator = validation.New()

// ValidateLogin checks that both credentials were supplied.
func ValidateLogin(email, password string) error {
	return formValidator.Struct(domain.Credentials{Email: strings.TrimSpace(email), Password: password})
}

// ValidateRegistration checks the sign-up form locally and builds the request
// sent to the remote API. It never touches the network.
func ValidateRegistration(form domain.RegistrationForm) (domain.RegistrationRequest, error) {
	if form.Password != form.ConfirmPassword {
		return domain.RegistrationRequest{}, domain.NewValidationError(MsgPasswordMismatch)
	}
	if strings.TrimSpace(form.Mobile) == "" {
		return domain.RegistrationRequest{}, domain.NewValidationError(MsgMobileRequired)
	}
	if err := formValidator.Struct(form); err != nil {
		return domain.RegistrationRequest{}, err
	}

	first, last, _ := strings.Cut(strings.TrimSpace(form.FullName), " ")

	country := form.Country
	if country == "" {
		country = domain.DefaultCountry
	}

	return domain.RegistrationRequest{
		FirstName: first,
		LastName:  last,
		Email:     form.Email,
		Mobile:    form.Mobile,
		Password:  form.Password,
		Country:   country,
	}, nil
}
