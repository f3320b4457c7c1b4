package app

import (
	"net/url"
	"strings"
)

const (
	binaryResultParam     = "disable_prepared_binary_result"
	maxTracedQueryLength  = 512
	tracedQueryTruncation = "..."
)

// normalizeDBURL asks lib/pq for text results unless the DSN already sets the
// flag. Both URL and key=value DSNs are supported.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult || strings.Contains(raw, binaryResultParam+"=") {
		return raw
	}

	if !isURLDSN(raw) {
		if strings.TrimSpace(raw) == "" {
			return raw
		}
		return strings.TrimSpace(raw) + " " + binaryResultParam + "=yes"
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	query.Set(binaryResultParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if isURLDSN(raw) {
		if parsed, err := url.Parse(raw); err == nil {
			return strings.Trim(parsed.Path, "/ ")
		}
		return ""
	}

	for _, field := range strings.Fields(raw) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

func isURLDSN(raw string) bool {
	return strings.Contains(raw, "://")
}

// formatDBQueryForTrace collapses whitespace and caps the statement recorded
// on database spans.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + tracedQueryTruncation
}
