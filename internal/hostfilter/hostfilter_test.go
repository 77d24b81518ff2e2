package hostfilter

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseAllowlistEmptyTrustsAll(t *testing.T) {
	for _, raw := range []string{"", " , ,"} {
		list := ParseAllowlist(raw)
		if !list.Allows("anything.example.com") {
			t.Fatalf("ParseAllowlist(%q) should trust every host", raw)
		}
	}
}

func TestAllowlistExactMatch(t *testing.T) {
	list := ParseAllowlist("localhost,127.0.0.1")

	cases := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"localhost:8000", true},
		{"LOCALHOST", true},
		{"127.0.0.1:9999", true},
		{"evil.example.com", false},
		{"localhost.evil.com", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := list.Allows(tc.host); got != tc.want {
			t.Fatalf("Allows(%q) = %v, want %v", tc.host, got, tc.want)
		}
	}
}

func TestAllowlistWildcardSuffix(t *testing.T) {
	list := ParseAllowlist("*.internal,api.example.com")

	if !list.Allows("svc.internal") {
		t.Fatal("Allows(svc.internal) = false")
	}
	if !list.Allows("deep.svc.internal:8443") {
		t.Fatal("Allows(deep.svc.internal:8443) = false")
	}
	if list.Allows("internal") {
		t.Fatal("bare suffix host should not match *.internal")
	}
	if !list.Allows("api.example.com") {
		t.Fatal("Allows(api.example.com) = false")
	}
}

func TestAllowlistStar(t *testing.T) {
	list := ParseAllowlist("*")
	if !list.Allows("whatever:1234") {
		t.Fatal("Allows() = false with * entry")
	}
}

func TestMiddlewareRejectsUnknownHost(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	h := Middleware(logger, ParseAllowlist("localhost"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = "attacker.example.com"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestMiddlewarePassesTrustedHost(t *testing.T) {
	h := Middleware(nil, ParseAllowlist("localhost"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = "localhost:8000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
}
