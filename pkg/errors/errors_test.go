// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/precheck/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "plugin not found",
			wantStr: "[NOT_FOUND] plugin not found",
		},
		{
			name:    "config_invalid_error",
			code:    errors.ErrConfigInvalid,
			message: "deploy_plugin must be defined",
			wantStr: "[CONFIG_INVALID] deploy_plugin must be defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrPostPublishVerify, "version %s not found in %s", "1.0.0", "npm")

	if err.Message != "version 1.0.0 not found in npm" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Code != errors.ErrInternal {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrInternal)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrDelegateExecute, "%s failed", "prepare")
		if err.Message != "prepare failed" {
			t.Errorf("Wrapf() message = %q", err.Message)
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrPostPublishVerify, "not found").
		WithDetail(errors.DetailPlugin, "@semantic-release/npm").
		WithDetail(errors.DetailVersion, "1.0.0")

	if err.Details[errors.DetailPlugin] != "@semantic-release/npm" {
		t.Errorf("WithDetail() plugin = %v", err.Details[errors.DetailPlugin])
	}

	if err.Details[errors.DetailVersion] != "1.0.0" {
		t.Errorf("WithDetail() version = %v", err.Details[errors.DetailVersion])
	}
}

func TestWithDetails(t *testing.T) {
	details := map[string]interface{}{
		errors.DetailCommand:  "false",
		errors.DetailExitCode: 1,
	}

	err := errors.New(errors.ErrCommandExecute, "command failed").
		WithDetails(details)

	for k, v := range details {
		if err.Details[k] != v {
			t.Errorf("WithDetails() %s = %v, want %v", k, err.Details[k], v)
		}
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with Error")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrNotFound,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrTagDelete, "denied"),
			code:     errors.ErrTagDelete,
			expected: true,
		},
		{
			name:     "joined_error",
			err:      stderrors.Join(stderrors.New("publish failed"), errors.New(errors.ErrTagDelete, "push rejected")),
			code:     errors.ErrTagDelete,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "precheck_error",
			err:      errors.New(errors.ErrPluginNotInstalled, "plugin not installed"),
			expected: errors.ErrPluginNotInstalled,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRemediation(t *testing.T) {
	err := errors.New(errors.ErrPluginNotInstalled, "missing").
		WithDetail(errors.DetailRemediation, "# Install it")

	if got := errors.Remediation(err); got != "# Install it" {
		t.Errorf("Remediation() = %q", got)
	}

	if got := errors.Remediation(stderrors.New("plain")); got != "" {
		t.Errorf("Remediation() of plain error = %q, want empty", got)
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	lookupErr := errors.Wrap(rootCause, errors.ErrRegistryLookup, "registry unreachable")
	verifyErr := errors.Wrap(lookupErr, errors.ErrPostPublishVerify, "could not verify publish")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(verifyErr, errors.ErrPostPublishVerify) {
			t.Error("Top level should have ErrPostPublishVerify code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var precheckErr *errors.Error
		if stderrors.As(verifyErr.Unwrap(), &precheckErr) {
			if !errors.IsErrorCode(precheckErr, errors.ErrRegistryLookup) {
				t.Error("Middle error should have ErrRegistryLookup code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(verifyErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}
