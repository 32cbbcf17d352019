package validator

import (
	"testing"
)

type registrationPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := registrationPayload{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "s3cret-pass",
	}

	if err := ValidateStruct(payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	payload := registrationPayload{
		Email:    "invalid",
		Username: "al",
		Password: "",
	}

	err := ValidateStruct(payload)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	failures, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(failures) != 3 {
		t.Fatalf("expected 3 failures, got %d", len(failures))
	}

	// Field names come from the json tag
	if failures[0].Field != "email" || failures[0].Tag != "email" {
		t.Fatalf("unexpected first failure: %+v", failures[0])
	}
	if failures[1].Field != "username" || failures[1].Tag != "min" || failures[1].Param != "3" {
		t.Fatalf("unexpected second failure: %+v", failures[1])
	}
	if failures[2].Field != "password" || failures[2].Tag != "required" {
		t.Fatalf("unexpected third failure: %+v", failures[2])
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	failures := ValidationErrors{
		{Field: "email", Tag: "required"},
		{Field: "password", Tag: "min", Param: "8"},
	}

	want := "email failed on required; password failed on min=8"
	if failures.Error() != want {
		t.Fatalf("unexpected message: %s", failures.Error())
	}

	if (ValidationErrors{}).Error() != "validation failed" {
		t.Fatal("expected fallback message for empty failures")
	}
}
