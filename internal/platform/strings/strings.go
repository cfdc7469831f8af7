// Package strings provides helpers for optional string values
package strings

import std "strings"

// Deref returns *p, or "" when p is nil
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// NullIf returns nil when s equals one of the sentinels, otherwise a pointer to s.
// Blank input is always nil
func NullIf(s string, sentinels ...string) *string {
	if std.TrimSpace(s) == "" {
		return nil
	}
	for _, n := range sentinels {
		if s == n {
			return nil
		}
	}
	return &s
}
