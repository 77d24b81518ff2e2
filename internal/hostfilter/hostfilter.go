// Package hostfilter rejects requests whose Host header is not on the
// configured allowlist, which narrows the window for DNS-rebinding style
// tricks against the service.
package hostfilter

import (
	"net"
	"strings"
)

type Allowlist struct {
	allowAll bool
	exact    map[string]struct{}
	suffixes []string
}

// ParseAllowlist builds an allowlist from a comma-separated host list.
// "*" entries or an empty list trust every host; "*.example.com" entries
// match any subdomain of example.com.
func ParseAllowlist(raw string) Allowlist {
	list := Allowlist{exact: make(map[string]struct{})}
	entries := 0
	for _, entry := range strings.Split(raw, ",") {
		host := strings.ToLower(strings.TrimSpace(entry))
		if host == "" {
			continue
		}
		entries++
		switch {
		case host == "*":
			list.allowAll = true
		case strings.HasPrefix(host, "*."):
			list.suffixes = append(list.suffixes, host[1:])
		default:
			list.exact[host] = struct{}{}
		}
	}
	if entries == 0 {
		list.allowAll = true
	}
	return list
}

// Allows reports whether the given Host header value (possibly host:port)
// is trusted.
func (a Allowlist) Allows(hostport string) bool {
	if a.allowAll {
		return true
	}
	host := stripPort(strings.ToLower(strings.TrimSpace(hostport)))
	if host == "" {
		return false
	}
	if _, ok := a.exact[host]; ok {
		return true
	}
	for _, suffix := range a.suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
