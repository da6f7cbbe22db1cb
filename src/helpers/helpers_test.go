package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"market-climber/src/logger"
)

func TestErrorKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{NewNetworkError(errors.New("dial tcp: refused"), "request failed"), KindTransport},
		{NewStatusError(503), KindStatus},
		{NewUpstreamError("rate limited"), KindUpstream},
		{NewValidationError("top_gainers missing"), KindMalformed},
		{NewParseError(errors.New("eof"), "decode body"), KindParse},
		{errors.New("plain"), KindUnknown},
	}

	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestErrorKindSeesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("fetch: %w", NewStatusError(429))
	if got := ErrorKind(err); got != KindStatus {
		t.Errorf("expected status kind through wrapping, got %q", got)
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != 429 {
		t.Errorf("expected StatusCode 429, got %+v", statusErr)
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewDatabaseError(cause, "insert %s", "AAPL")
	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the cause")
	}
	if err.Error() != "insert AAPL: disk full" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestErrorHandlerCounts(t *testing.T) {
	var buf bytes.Buffer
	h := NewErrorHandler(logger.NewLogger(nil, "Test").WithOutput(&buf))

	h.Handle(nil, "noop")
	h.Handle(NewStatusError(500), "fetch")
	h.Handle(NewStatusError(500), "fetch")

	if h.Consecutive() != 2 {
		t.Errorf("expected 2 errors, got %d", h.Consecutive())
	}
	if !strings.Contains(buf.String(), "status, 2 in a row") {
		t.Errorf("expected kind in log, got %q", buf.String())
	}

	h.ResetErrorCount()
	if h.Consecutive() != 0 {
		t.Errorf("expected reset to zero")
	}
}

func TestProxyRotation(t *testing.T) {
	pm := NewProxyManager([]string{"10.0.0.1:8080", "", "https://10.0.0.2:3128"}, "", nil)

	if !pm.HasProxies() {
		t.Fatal("expected proxies")
	}
	first, _ := pm.GetCurrentProxy()
	if first != "http://10.0.0.1:8080" {
		t.Errorf("expected scheme to be added, got %q", first)
	}

	pm.RotateProxy()
	second, _ := pm.GetCurrentProxy()
	if second != "https://10.0.0.2:3128" {
		t.Errorf("expected second proxy, got %q", second)
	}

	pm.RotateProxy()
	again, _ := pm.GetCurrentProxy()
	if again != first {
		t.Errorf("expected rotation to wrap, got %q", again)
	}
}

func TestPinnedUserAgent(t *testing.T) {
	pm := NewProxyManager(nil, "market-climber/test", nil)
	if ua := pm.GetUserAgent(); ua != "market-climber/test" {
		t.Errorf("expected pinned agent, got %q", ua)
	}
	if pm.HasProxies() {
		t.Errorf("expected no proxies")
	}
}
