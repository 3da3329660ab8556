package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"hotelier/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		kind    string
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			kind:    failure.KindValidation,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			kind:    failure.KindValidation,
			message: "invalid limit parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			kind:    failure.KindForbidden,
			message: "You don't have the required permissions",
		},
		{
			name:    "ResourceRestrictedError",
			failure: failure.ResourceRestrictedError,
			code:    http.StatusForbidden,
			kind:    failure.KindForbidden,
			message: "You don't have permission to access this resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Kind != tt.kind {
				t.Errorf("expected kind to be %s, got %s", tt.kind, tt.failure.Kind)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	err := failure.BadRequest(errors.New("validation failed"))
	if failure.GetCode(err) != http.StatusBadRequest {
		t.Errorf("expected code %d, got %d", http.StatusBadRequest, failure.GetCode(err))
	}
	if failure.GetKind(err) != failure.KindValidation {
		t.Errorf("expected kind %s, got %s", failure.KindValidation, failure.GetKind(err))
	}

	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for nil input")
	}
}

func TestValidation(t *testing.T) {
	err := failure.Validation("start_date", "invalid date format")

	var fail *failure.Failure
	if !errors.As(err, &fail) {
		t.Fatal("expected a *failure.Failure")
	}

	if fail.Field != "start_date" {
		t.Errorf("expected field start_date, got %s", fail.Field)
	}
	if fail.Kind != failure.KindValidation {
		t.Errorf("expected kind %s, got %s", failure.KindValidation, fail.Kind)
	}
}

func TestLoginFailures(t *testing.T) {
	invalid := failure.InvalidCredentials()
	if failure.GetCode(invalid) != http.StatusUnauthorized {
		t.Errorf("expected code %d, got %d", http.StatusUnauthorized, failure.GetCode(invalid))
	}
	if !failure.IsKind(invalid, failure.KindInvalidCredentials) {
		t.Errorf("expected kind %s, got %s", failure.KindInvalidCredentials, failure.GetKind(invalid))
	}

	banned := failure.AccountBanned()
	if failure.GetCode(banned) != http.StatusForbidden {
		t.Errorf("expected code %d, got %d", http.StatusForbidden, failure.GetCode(banned))
	}
	if !failure.IsKind(banned, failure.KindAccountBanned) {
		t.Errorf("expected kind %s, got %s", failure.KindAccountBanned, failure.GetKind(banned))
	}

	// The two rejections must stay distinguishable.
	if failure.GetKind(invalid) == failure.GetKind(banned) {
		t.Error("invalid credentials and banned account must not share a kind")
	}
}

func TestNotFound(t *testing.T) {
	err := failure.NotFound("booking")

	if err.Error() != "booking not found" {
		t.Errorf("expected 'booking not found', got %s", err.Error())
	}
	if failure.GetCode(err) != http.StatusNotFound {
		t.Errorf("expected code %d, got %d", http.StatusNotFound, failure.GetCode(err))
	}
	if !failure.IsKind(err, failure.KindNotFound) {
		t.Errorf("expected kind %s, got %s", failure.KindNotFound, failure.GetKind(err))
	}
}

func TestConflict(t *testing.T) {
	err := failure.Conflict("room is already booked for the requested dates")

	if failure.GetCode(err) != http.StatusConflict {
		t.Errorf("expected code %d, got %d", http.StatusConflict, failure.GetCode(err))
	}
	if !failure.IsKind(err, failure.KindConflict) {
		t.Errorf("expected kind %s, got %s", failure.KindConflict, failure.GetKind(err))
	}
}

func TestInternalError(t *testing.T) {
	err := failure.InternalError(errors.New("connection refused"))

	if failure.GetCode(err) != http.StatusInternalServerError {
		t.Errorf("expected code %d, got %d", http.StatusInternalServerError, failure.GetCode(err))
	}
	if !failure.IsKind(err, failure.KindStore) {
		t.Errorf("expected kind %s, got %s", failure.KindStore, failure.GetKind(err))
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected nil for nil input")
	}
}

func TestGetCodeAndKindForUntypedErrors(t *testing.T) {
	err := errors.New("plain error")

	if failure.GetCode(err) != http.StatusInternalServerError {
		t.Errorf("expected code %d, got %d", http.StatusInternalServerError, failure.GetCode(err))
	}
	if failure.GetKind(err) != failure.KindStore {
		t.Errorf("expected kind %s, got %s", failure.KindStore, failure.GetKind(err))
	}
}

func TestUnauthorized(t *testing.T) {
	err := failure.Unauthorized("Missing authorization header")

	if failure.GetCode(err) != http.StatusUnauthorized {
		t.Errorf("expected code %d, got %d", http.StatusUnauthorized, failure.GetCode(err))
	}
	if !failure.IsKind(err, failure.KindUnauthorized) {
		t.Errorf("expected kind %s, got %s", failure.KindUnauthorized, failure.GetKind(err))
	}
}
