package service

import (
	"errors"
	"testing"

	"daylog/internal/apperr"
)

func TestWrapError(t *testing.T) {
	if WrapError(nil, "sync metrics") != nil {
		t.Fatal("WrapError(nil) should return nil")
	}

	err := WrapError(apperr.ErrSyncInProgress, "sync metrics")
	if err.Error() != "sync metrics: metrics sync already in progress" {
		t.Errorf("WrapError() = %q", err.Error())
	}
	if !errors.Is(err, apperr.ErrSyncInProgress) {
		t.Error("WrapError() should keep the wrapped error matchable")
	}
}

func TestValidationErrorIsShared(t *testing.T) {
	var err error = &apperr.ValidationError{Field: "from", Message: "must be before to"}

	var target *ValidationError
	if !errors.As(err, &target) {
		t.Fatal("errors.As should match apperr.ValidationError as service.ValidationError")
	}
	if target.Field != "from" {
		t.Errorf("Field = %q, want from", target.Field)
	}
}
