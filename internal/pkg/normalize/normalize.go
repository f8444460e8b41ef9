// Package normalize coerces the loosely-typed form payloads the site's
// front-ends send — including legacy field names still in circulation — into
// bounded, canonical values.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Clamp trims v and truncates it to max bytes. Truncation is silent.
func Clamp(v string, max int) string {
	v = strings.TrimSpace(v)
	if len(v) > max {
		v = v[:max]
	}
	return v
}

// First returns the first non-empty string value among the given keys, in
// priority order. Non-string values are stringified the way the old
// front-ends expected (numbers and booleans pass through, anything else is
// treated as empty).
func First(body map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(body[k]); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Number returns the first value among the given keys that parses as an
// integer, or 0 when none does. Used for the form-render timestamp, which
// arrives as either a JSON number or a string.
func Number(body map[string]any, keys ...string) int64 {
	for _, k := range keys {
		switch v := body[k].(type) {
		case float64:
			return int64(v)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

// ValidEmail reports whether e looks like a deliverable address: length in
// [6,254] and a local@domain.tld shape. No DNS or mailbox verification.
func ValidEmail(e string) bool {
	e = strings.TrimSpace(e)
	if len(e) < 6 || len(e) > 254 {
		return false
	}
	return emailPattern.MatchString(e)
}

// Email clamps and lowercases an address for use as a store key.
func Email(e string) string {
	return strings.ToLower(Clamp(e, 254))
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
