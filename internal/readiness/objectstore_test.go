package readiness

import (
	"testing"

	"github.com/secureapi/secureapi/internal/config"
)

func TestParseEndpoint(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		useSSL     bool
		wantHost   string
		wantSecure bool
		wantErr    bool
	}{
		{name: "bare host", raw: "localhost:9000", wantHost: "localhost:9000"},
		{name: "bare host ssl", raw: "s3.example.com", useSSL: true, wantHost: "s3.example.com", wantSecure: true},
		{name: "http url", raw: "http://localhost:9000", wantHost: "localhost:9000"},
		{name: "https url forces ssl", raw: "https://s3.example.com", wantHost: "s3.example.com", wantSecure: true},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "url without host", raw: "http://", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			host, secure, err := parseEndpoint(tc.raw, tc.useSSL)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEndpoint() error = %v", err)
			}
			if host != tc.wantHost {
				t.Fatalf("host = %q, want %q", host, tc.wantHost)
			}
			if secure != tc.wantSecure {
				t.Fatalf("secure = %v, want %v", secure, tc.wantSecure)
			}
		})
	}
}

func TestOpenObjectStoreRequiresEndpoint(t *testing.T) {
	if _, err := OpenObjectStore(config.ObjectStoreConfig{}); err == nil {
		t.Fatal("expected error")
	}
}
