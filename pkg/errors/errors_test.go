package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeVersionNotFound, "express: version %s not found", "9.9.9")

	if err.Code != ErrCodeVersionNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeVersionNotFound)
	}
	if !strings.Contains(err.Error(), "VERSION_NOT_FOUND") {
		t.Errorf("Error() = %q, should contain the code", err.Error())
	}
	if !strings.Contains(err.Error(), "9.9.9") {
		t.Errorf("Error() = %q, should contain formatted args", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeRegistry, cause, "fetching %s", "lodash")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, should contain cause", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeCycle, "circular dependency")

	if !Is(err, ErrCodeCycle) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeRegistry) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeCycle) {
		t.Error("Is() should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeAlreadyExists, "package.json exists")); got != ErrCodeAlreadyExists {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeAlreadyExists)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty for plain errors", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeUnsupportedSelector, "selector ^1.0.0 is not supported")
	if got := UserMessage(err); got != "selector ^1.0.0 is not supported" {
		t.Errorf("UserMessage() = %q, should strip the code prefix", got)
	}

	plain := stderrors.New("something broke")
	if got := UserMessage(plain); got != "something broke" {
		t.Errorf("UserMessage() = %q, want error string as-is", got)
	}
}
