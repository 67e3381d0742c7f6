package errors

import (
	"fmt"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	inner := EmptyResult("values query")
	wrapped := Wrap(inner, "loading indicator data")

	if GetCode(wrapped) != CodeEmptyResult {
		t.Errorf("code = %q, want %q", GetCode(wrapped), CodeEmptyResult)
	}
	if !IsAppError(wrapped) {
		t.Error("wrapped error should stay an AppError")
	}
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("connection refused"), "failed to connect")
	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("code = %q, want %q", GetCode(wrapped), CodeInternalError)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "nothing") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if GetCode(fmt.Errorf("plain")) != "UNKNOWN" {
		t.Error("plain errors have no code")
	}
}

func TestConstructors(t *testing.T) {
	if got := ColumnMissing("region").Error(); got != `required column "region" is absent` {
		t.Errorf("ColumnMissing message = %q", got)
	}
	if GetCode(QueryFailed(fmt.Errorf("boom"))) != CodeQueryFailed {
		t.Error("QueryFailed code mismatch")
	}
	if GetCode(InvalidInput("bad")) != CodeInvalidInput {
		t.Error("InvalidInput code mismatch")
	}
}
