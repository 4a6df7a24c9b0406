package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "interface not found")
		if err.Error() != "[NOT_FOUND] interface not found" {
			t.Errorf("expected [NOT_FOUND] interface not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("disk full")
		err := Wrap(original, CodeIO, "write backup")
		expected := "[IO_ERROR] write backup: disk full"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
		if !errors.Is(err, original) {
			t.Error("expected wrapped error to unwrap to original")
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeNotEJBProject, "no EJB markers")
		if !IsCode(err, CodeNotEJBProject) {
			t.Error("expected IsCode to return true for CodeNotEJBProject")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeThroughFmtWrap", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(CodeCanceled, "stopped"))
		if !IsCode(err, CodeCanceled) {
			t.Error("expected IsCode to see through fmt wrapping")
		}
	})
}

func TestAddContext(t *testing.T) {
	err := AddContext(New(CodeValidationError, "bad path"), CtxPath, "/tmp/x")
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatal("expected DomainError")
	}
	if de.Context[CtxPath] != "/tmp/x" {
		t.Errorf("expected path context, got %v", de.Context)
	}

	plain := AddContext(errors.New("boom"), CtxOperation, "scan")
	if !IsCode(plain, CodeInternal) {
		t.Error("expected plain error to be promoted to CodeInternal")
	}
}

func TestMessageOf(t *testing.T) {
	if got := MessageOf(Wrap(errors.New("x"), CodeIO, "read failed")); got != "read failed" {
		t.Errorf("unexpected message %q", got)
	}
	if got := MessageOf(errors.New("plain")); got != "plain" {
		t.Errorf("unexpected message %q", got)
	}
	if got := MessageOf(nil); got != "" {
		t.Errorf("expected empty message, got %q", got)
	}
}
