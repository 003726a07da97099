package ratelimit

import "strings"

// routeMatches reports whether a "METHOD /path" route covers the request.
func routeMatches(route, method, path string) bool {
	m, p, ok := strings.Cut(route, " ")
	if !ok || m != method {
		return false
	}
	if p == path {
		return true
	}
	return strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)
}

// MatchRule finds the rule for a request. Exact routes win over prefix
// routes. unlimited is true when the route is listed in cfg.Unlimited.
func MatchRule(cfg *Config, method, path string) (rule *Rule, unlimited bool) {
	for _, route := range cfg.Unlimited {
		if routeMatches(route, method, path) {
			return nil, true
		}
	}

	var prefix *Rule
	for i := range cfg.Rules {
		r := &cfg.Rules[i]
		_, p, _ := strings.Cut(r.Route, " ")
		if !routeMatches(r.Route, method, path) {
			continue
		}
		if p == path {
			return r, false
		}
		if prefix == nil {
			prefix = r
		}
	}
	return prefix, false
}
