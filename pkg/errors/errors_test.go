package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("animal", "SB-001")

	if got := err.Error(); got != "animal with ID SB-001 not found" {
		t.Errorf("unexpected message: %s", got)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound) to be true")
	}
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
}

func TestNotFoundErrorWithoutID(t *testing.T) {
	err := NewNotFoundError("telemetry", "")
	if got := err.Error(); got != "telemetry not found" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("location", nil, "coordinates out of range")

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("expected errors.Is(err, ErrInvalidInput) to be true")
	}
	if !IsValidationError(err) {
		t.Error("expected IsValidationError to be true")
	}
	if got := err.Error(); got != "validation failed for field location: coordinates out of range" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError("insert", "telemetry", cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if !IsStoreUnavailable(err) {
		t.Error("expected IsStoreUnavailable to be true")
	}
	if got := err.Error(); got != "store error during insert on telemetry: connection refused" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("missing value")
	err := NewConfigError("mongodb", "MONGODB_URI is required", cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if got := err.Error(); got != "configuration error in mongodb: MONGODB_URI is required" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapValidation("species", nil) != nil {
		t.Error("WrapValidation(nil) should return nil")
	}
	if WrapStore("count", "users", nil) != nil {
		t.Error("WrapStore(nil) should return nil")
	}

	wrapped := WrapStore("count", "users", fmt.Errorf("boom"))
	var storeErr *StoreError
	if !errors.As(wrapped, &storeErr) {
		t.Fatal("expected *StoreError")
	}
	if storeErr.Collection != "users" {
		t.Errorf("unexpected collection: %s", storeErr.Collection)
	}
}

func TestPublishError(t *testing.T) {
	cause := errors.New("no responders")
	err := &PublishError{Subject: "alerts", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if got := err.Error(); got != "publish error on subject alerts: no responders" {
		t.Errorf("unexpected message: %s", got)
	}
}
