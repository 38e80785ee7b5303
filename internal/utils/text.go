package utils

import "unicode/utf8"

// TruncateBytes returns the longest prefix of s that fits into limit bytes
// without splitting a multi-byte UTF-8 sequence.
func TruncateBytes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}
