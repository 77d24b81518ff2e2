package observability

import (
	"net/http"
	"strings"
)

// RouteFunc reports the mux pattern a request matched, or "" when nothing
// matched.
type RouteFunc func(*http.Request) string

// RouteLabel derives the metric label for a request. The matched pattern is
// preferred because the set of declared routes bounds its cardinality; the
// raw path is the fallback for unmatched requests (404s and the like).
// It never panics: any failure inside the resolver falls back to the raw path.
func RouteLabel(r *http.Request, resolve RouteFunc) (label string) {
	defer func() {
		if recover() != nil {
			label = r.URL.Path
		}
	}()
	if resolve != nil {
		if pattern := resolve(r); pattern != "" {
			return patternPath(pattern)
		}
	}
	return r.URL.Path
}

// patternPath strips the "METHOD " and host prefixes a ServeMux pattern may
// carry, leaving the path template.
func patternPath(pattern string) string {
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		pattern = pattern[i+1:]
	}
	if !strings.HasPrefix(pattern, "/") {
		if i := strings.IndexByte(pattern, '/'); i >= 0 {
			pattern = pattern[i:]
		}
	}
	return pattern
}
