package domain

import (
	"encoding/json"
	"time"
)

// Session is the credential artifact held after a successful login. Token and User
// are always persisted and cleared together.
type Session struct {
	Token string
	User  User
}

// Credentials are transient and never persisted.
type Credentials struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegistrationRequest is the payload sent to the remote registration endpoint.
type RegistrationRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Password  string `json:"password"`
	Country   string `json:"country"`
}

// RegistrationForm is what the sign-up form collects before it is turned into a
// RegistrationRequest.
type RegistrationForm struct {
	FullName        string `json:"fullName"        form:"fullName"        validate:"required"`
	Email           string `json:"email"           form:"email"           validate:"required,email"`
	Mobile          string `json:"mobile"          form:"mobile"`
	Password        string `json:"password"        form:"password"        validate:"required"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	Country         string `json:"country"         form:"country"`
	AgreeTerms      bool   `json:"agreeTerms"      form:"agreeTerms"`
}

// DefaultCountry is sent when the form leaves the country blank.
const DefaultCountry = "other"

// Confirmation is the remote API's answer to a successful registration.
type Confirmation struct {
	Message string
	Raw     json.RawMessage
}

// TokenClaims is the subset of the token payload the client relies on.
type TokenClaims struct {
	UserType  UserType
	Subject   string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Expired reports whether the claims carry an expiry that is not after now.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
