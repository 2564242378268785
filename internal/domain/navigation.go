package domain

import (
	"net/url"
	"path"
	"strings"
)

const (
	HomePath   = "/"
	SignInPath = "/signin"
	SignUpPath = "/signup"
)

type NavigationCommand struct {
	Path   string
	Reason TeardownReason
}

// PathSet is an ordered list of path patterns. A pattern ending in "/**"
// matches its base and everything below it; any other pattern is a
// path.Match glob.
type PathSet []string

func (s PathSet) Match(raw string) bool {
	p := NormalizePath(raw)
	for _, pattern := range s {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if base, ok := strings.CutSuffix(pattern, "/**"); ok {
			base = NormalizePath(base)
			if p == base || strings.HasPrefix(p, strings.TrimSuffix(base, "/")+"/") {
				return true
			}
			continue
		}
		if matched, err := path.Match(NormalizePath(pattern), p); err == nil && matched {
			return true
		}
	}
	return false
}

// NormalizePath drops the query, fragment and trailing slash of a path.
func NormalizePath(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil {
		trimmed = parsed.Path
	}
	if trimmed == "" {
		return HomePath
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	cleaned := path.Clean(trimmed)
	return cleaned
}
