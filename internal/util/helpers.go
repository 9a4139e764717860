package util

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// =============================================================================
// URL Building Helpers
// =============================================================================

// URLParamOrder defines the canonical order for gallery query parameters.
// Parameters are grouped semantically: pagination -> display flags -> lightbox
var URLParamOrder = []string{
	// Pagination
	"offset", "limit",
	// Display flags
	"metadata", "lightbox", "links", "dark", "inline",
	// Lightbox
	"open",
	// Cache
	"refresh",
	// Fragments
	"css",
}

// BuildURL constructs a URL with query parameters in canonical order.
// Empty values are omitted. Parameters not in the canonical order are appended alphabetically.
func BuildURL(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}

	var parts []string
	used := make(map[string]bool, len(params))

	// Add parameters in canonical order
	for _, key := range URLParamOrder {
		if val, ok := params[key]; ok && val != "" {
			parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(val))
			used[key] = true
		}
	}

	// Collect any remaining parameters not in canonical order
	var remaining []string
	for key := range params {
		if !used[key] && params[key] != "" {
			remaining = append(remaining, key)
		}
	}

	// Add remaining parameters in alphabetical order
	sort.Strings(remaining)
	for _, key := range remaining {
		parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(params[key]))
	}

	if len(parts) == 0 {
		return path
	}
	return path + "?" + strings.Join(parts, "&")
}

// QueryParams flattens url.Values to their first value, for use with BuildURL.
func QueryParams(q url.Values) map[string]string {
	params := make(map[string]string, len(q))
	for key, vals := range q {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}

// =============================================================================
// Query Parsing Helpers
// =============================================================================

// ParseBool parses a query flag. Unknown or empty values return nil so the
// configured default applies.
func ParseBool(s string) *bool {
	var v bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		v = true
	case "0", "false", "off", "no":
		v = false
	default:
		return nil
	}
	return &v
}

// ParseOffset parses a non-negative offset, returning 0 when invalid.
func ParseOffset(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseIndex parses a non-negative index. ok is false when s is empty or invalid.
func ParseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
