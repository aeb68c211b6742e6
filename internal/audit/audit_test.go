package audit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if !strings.HasPrefix(a, "audit-") {
		t.Fatalf("unexpected id %q", a)
	}
	if a == b {
		t.Fatalf("ids must be unique")
	}
}

func TestDigestJSON(t *testing.T) {
	if got := DigestJSON(nil); got != "" {
		t.Fatalf("empty payload must have an empty digest, got %q", got)
	}
	first := DigestJSON([]byte(`{"a":1}`))
	second := DigestJSON([]byte(`{"a":1}`))
	if first == "" || first != second {
		t.Fatalf("digest must be deterministic, got %q and %q", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected a sha256 hex digest, got %d chars", len(first))
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	if got := ClientIP(req); got != "10.0.0.5" {
		t.Fatalf("expected remote addr host, got %q", got)
	}

	req.Header.Set("X-Real-IP", "10.0.0.7")
	if got := ClientIP(req); got != "10.0.0.7" {
		t.Fatalf("expected X-Real-IP, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}
}
