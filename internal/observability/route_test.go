package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouteLabelPrefersMatchedPattern(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/echo?verbose=1", nil)
	resolve := func(*http.Request) string { return "POST /echo" }

	if got := RouteLabel(req, resolve); got != "/echo" {
		t.Fatalf("RouteLabel() = %q, want %q", got, "/echo")
	}
}

func TestRouteLabelStripsHostPrefix(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	resolve := func(*http.Request) string { return "GET example.com/live" }

	if got := RouteLabel(req, resolve); got != "/live" {
		t.Fatalf("RouteLabel() = %q, want %q", got, "/live")
	}
}

func TestRouteLabelFallsBackToRawPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)

	if got := RouteLabel(req, func(*http.Request) string { return "" }); got != "/nonexistent" {
		t.Fatalf("RouteLabel() = %q, want raw path", got)
	}
	if got := RouteLabel(req, nil); got != "/nonexistent" {
		t.Fatalf("RouteLabel() with nil resolver = %q, want raw path", got)
	}
}

func TestRouteLabelSurvivesResolverPanic(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	resolve := func(*http.Request) string { panic("resolver broke") }

	if got := RouteLabel(req, resolve); got != "/echo" {
		t.Fatalf("RouteLabel() = %q, want raw path fallback", got)
	}
}
