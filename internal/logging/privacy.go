// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package logging

import (
	"strings"
	"unicode/utf8"
)

// maxLabelLen bounds free-text fields copied into log entries.
const maxLabelLen = 32

// SanitizeUserID masks a user ID, keeping the first and last four
// characters. IDs of eight characters or fewer are fully masked.
//
//	SanitizeUserID("user-12345678") // "user...5678"
func SanitizeUserID(userID string) string {
	if userID == "" {
		return ""
	}
	runes := []rune(userID)
	if len(runes) <= 8 {
		return "***"
	}
	return string(runes[:4]) + "..." + string(runes[len(runes)-4:])
}

// SanitizeLabel lowercases and truncates an emotion label and strips
// control characters so client input cannot forge log lines.
func SanitizeLabel(label string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(label)))
	return truncateString(cleaned, maxLabelLen)
}

// truncateString keeps at most maxLen characters of s.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}
