package ratelimit

import (
	"strings"
	"time"
)

// Rule limits one route. Pattern is a slash-separated path in which a "{name}"
// segment matches any single segment, the way http.ServeMux patterns do.
type Rule struct {
	Method  string
	Pattern string
	Limit   int // requests per Window
	Window  time.Duration
	Burst   int // defaults to Limit
}

// Match returns the first rule whose method and pattern fit the request
func Match(rules []Rule, method, path string) (Rule, bool) {
	segments := splitPath(path)
	for _, r := range rules {
		if r.Method != "" && r.Method != method {
			continue
		}
		if matchSegments(splitPath(r.Pattern), segments) {
			return r, true
		}
	}
	return Rule{}, false
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, p := range pattern {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			if path[i] == "" {
				return false
			}
			continue
		}
		if p != path[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
