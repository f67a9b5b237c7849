package auth

import (
	"fmt"
	"sort"
	"strings"
)

// AllScopes lists every scope a token can be issued with.
var AllScopes = []Scope{ScopeMenus, ScopeOrders, ScopeLunchtimes, ScopeReports, ScopeAdmin}

// ParseScope validates a scope name
func ParseScope(s string) (Scope, error) {
	v := Scope(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllScopes {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown scope '%s'", s)
}

// ParseScopes validates and de-duplicates scope names, returning them sorted.
func ParseScopes(names []string) ([]Scope, error) {
	seen := make(map[Scope]bool, len(names))
	var scopes []Scope
	for _, n := range names {
		s, err := ParseScope(n)
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			scopes = append(scopes, s)
		}
	}
	if len(scopes) == 0 {
		return nil, fmt.Errorf("at least one scope is required")
	}
	sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })
	return scopes, nil
}

// HasScope reports whether granted covers the required scope.
func HasScope(granted []Scope, required Scope) bool {
	for _, s := range granted {
		if s == required || s == ScopeAdmin {
			return true
		}
	}
	return false
}
