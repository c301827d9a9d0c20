package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSelectError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *SelectError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestSelectError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name     string
		err      *SelectError
		wantCode int
		wantMsg  string
	}{
		{"config", ConfigError("bad settings", cause), ExitConfigError, "bad settings"},
		{"load", LoadFailed("http://example.test", cause), ExitLoadError, "failed to load options from http://example.test"},
		{"no selection", NoSelection(), ExitNoSelection, "nothing selected"},
		{"cancelled", Cancelled(), ExitCancelled, "selection cancelled"},
		{"validation", ValidationError("bad input"), ExitGeneralError, "bad input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "SelectError",
			err:      Cancelled(),
			wantCode: ExitCancelled,
		},
		{
			name:     "wrapped SelectError",
			err:      fmt.Errorf("outer: %w", ConfigError("bad", nil)),
			wantCode: ExitConfigError,
		},
		{
			name:     "regular error",
			err:      fmt.Errorf("some error"),
			wantCode: ExitGeneralError,
		},
		{
			name:     "nil error",
			err:      nil,
			wantCode: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.wantCode {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	root := fmt.Errorf("root cause")
	middle := LoadFailed("remote", root)
	outer := fmt.Errorf("filter failed: %w", middle)

	if !errors.Is(outer, root) {
		t.Error("errors.Is should find root cause")
	}

	var selectErr *SelectError
	if !As(outer, &selectErr) {
		t.Fatal("As should find SelectError")
	}
	if selectErr.Code != ExitLoadError {
		t.Errorf("Code = %d, want %d", selectErr.Code, ExitLoadError)
	}
	if !Is(outer, root) {
		t.Error("Is should find root cause")
	}
}
