package service

import (
	"errors"
	"testing"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

func validForm() domain.RegistrationForm {
	return domain.RegistrationForm{
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		Mobile:          "+91 98765 43210",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestValidateRegistration_PasswordMismatch(t *testing.T) {
	form := validForm()
	form.Password = "x"
	form.ConfirmPassword = "y"

	_, err := ValidateRegistration(form)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if err.Error() != "Passwords do not match" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidateRegistration_MismatchCheckedBeforeMobile(t *testing.T) {
	form := validForm()
	form.ConfirmPassword = "other"
	form.Mobile = "   "

	_, err := ValidateRegistration(form)
	if err == nil || err.Error() != MsgPasswordMismatch {
		t.Fatalf("expected password mismatch first, got %v", err)
	}
}

func TestValidateRegistration_BlankMobile(t *testing.T) {
	form := validForm()
	form.Mobile = " \t"

	_, err := ValidateRegistration(form)
	if err == nil || err.Error() != MsgMobileRequired {
		t.Fatalf("expected mobile message, got %v", err)
	}
}

func TestValidateRegistration_FieldChecks(t *testing.T) {
	form := validForm()
	form.FullName = ""
	form.Email = "not-an-email"

	_, err := ValidateRegistration(form)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["fullName"] == "" || ve.Fields["email"] == "" {
		t.Fatalf("expected fullName and email failures, got %+v", ve.Fields)
	}
}

func TestValidateRegistration_BuildsRequest(t *testing.T) {
	form := validForm()
	form.FullName = "  Jane Mary  Doe "

	req, err := ValidateRegistration(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.FirstName != "Jane" || req.LastName != "Mary  Doe" {
		t.Fatalf("unexpected name split %q / %q", req.FirstName, req.LastName)
	}
	if req.Country != domain.DefaultCountry {
		t.Fatalf("expected default country, got %q", req.Country)
	}
	if req.Mobile != form.Mobile || req.Email != form.Email || req.Password != form.Password {
		t.Fatalf("fields not carried over: %+v", req)
	}

	form.FullName = "Cher"
	form.Country = "IN"
	req, err = ValidateRegistration(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.FirstName != "Cher" || req.LastName != "" || req.Country != "IN" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestValidateLogin(t *testing.T) {
	if err := ValidateLogin("a@b.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateLogin(" ", "pw"); err == nil {
		t.Fatalf("expected blank email to fail")
	}
	if err := ValidateLogin("a@b.com", ""); err == nil {
		t.Fatalf("expected blank password to fail")
	}
}
