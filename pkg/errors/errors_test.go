package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodesMatchSentinels(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")

	tests := []struct {
		name string
		err  error
		is   error
		code string
	}{
		{"network", NewNetwork("https://v.douyin.com/x/", cause), ErrNetwork, CodeNetwork},
		{"resolution", WrapWithCode(cause, CodeResolution, "resolve"), ErrResolution, CodeResolution},
		{"invalid input", NewInvalidInput("bad url"), ErrInvalidInput, CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !Is(wrapped, tt.is) {
				t.Errorf("Is(%v, %v) = false", wrapped, tt.is)
			}
			if got := GetCode(wrapped); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestNetworkKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetwork("https://v.douyin.com/x/", cause)

	if !errors.Is(err, cause) {
		t.Error("cause should stay in the chain")
	}
	if IsResolution(err) || IsInvalidInput(err) {
		t.Error("network error matched an unrelated sentinel")
	}
	if got, want := err.Error(), "fetch https://v.douyin.com/x/: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "x") != nil || WrapWithCode(nil, CodeNetwork, "x") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestGetMessage(t *testing.T) {
	if got := GetMessage(nil); got != "" {
		t.Errorf("GetMessage(nil) = %q", got)
	}
	if got := GetMessage(Wrap(errors.New("inner"), "outer")); got != "outer" {
		t.Errorf("GetMessage() = %q, want outer", got)
	}
	if got := GetMessage(errors.New("plain")); got != "plain" {
		t.Errorf("GetMessage() = %q, want plain", got)
	}
	var e *Error
	if !As(New("x"), &e) || e.Code != "" {
		t.Error("New should produce an uncoded *Error")
	}
}
