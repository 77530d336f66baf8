package errors

import (
	stderrors "errors"
	"testing"
)

func TestTypeError(t *testing.T) {
	err := NewTypeError("cannot assign to read only property '%s'", "x")
	if err.Kind() != "Type" {
		t.Errorf("kind = %q", err.Kind())
	}
	want := "TypeError: cannot assign to read only property 'x'"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
	if !IsTypeError(err) {
		t.Errorf("IsTypeError should match a TypeError")
	}
	if IsProxyTrapError(err) {
		t.Errorf("IsProxyTrapError should not match a TypeError")
	}
}

func TestProxyTrapErrorWrapsCause(t *testing.T) {
	cause := NewTypeError("boom")
	err := NewProxyTrapError("set", cause)
	if err.Kind() != "ProxyTrap" {
		t.Errorf("kind = %q", err.Kind())
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("cause should be reachable through Unwrap")
	}
	// A wrapped TypeError is visible through both predicates.
	if !IsProxyTrapError(err) || !IsTypeError(err) {
		t.Errorf("predicates should see both the trap error and its cause")
	}
}

func TestCausedBy(t *testing.T) {
	cause := stderrors.New("underlying")
	err := NewInvalidKeyError("bad key").CausedBy(cause)
	if !stderrors.Is(err, cause) {
		t.Errorf("CausedBy should chain the cause")
	}
	if err.Message() != "bad key" {
		t.Errorf("message = %q", err.Message())
	}
}

func TestAccessErrorInterface(t *testing.T) {
	var errs = []AccessError{
		NewTypeError("a"),
		NewProxyTrapError("get", nil),
		NewInvalidKeyError("b"),
	}
	kinds := []string{"Type", "ProxyTrap", "InvalidKey"}
	for i, e := range errs {
		if e.Kind() != kinds[i] {
			t.Errorf("kind[%d] = %q, want %q", i, e.Kind(), kinds[i])
		}
	}
}
