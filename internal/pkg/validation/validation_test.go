package validation

import (
	"errors"
	"testing"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required,jwt"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	err := v.Struct(sample{Email: "a@b.com", Token: "aaa.bbb.ccc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Struct(sample{Email: "nope"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["email"] != "email must be a valid email" {
		t.Fatalf("unexpected email message: %q", ve.Fields["email"])
	}
	if ve.Fields["token"] != "token is required" {
		t.Fatalf("unexpected token message: %q", ve.Fields["token"])
	}
}

func TestStruct_MalformedToken(t *testing.T) {
	v := New()
	err := v.Struct(sample{Email: "a@b.com", Token: "only-one-segment"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["token"] != "token must be a well-formed token" {
		t.Fatalf("unexpected token message: %q", ve.Fields["token"])
	}
}
