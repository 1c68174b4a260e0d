package pipeline

import (
	"errors"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&EncodeError{Reason: "prompt is required"}, "encode request: prompt is required"},
		{&ServiceError{Message: "model overloaded"}, "service: model overloaded"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("error = %q, want %q", got, tc.want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")

	netErr := &NetworkError{Op: "submit", Err: cause}
	if !errors.Is(netErr, cause) {
		t.Fatalf("network error should unwrap to its cause")
	}

	decErr := &DecodeError{Reason: "malformed response body", Err: cause}
	if !errors.Is(decErr, cause) {
		t.Fatalf("decode error should unwrap to its cause")
	}
}
