// SPDX-License-Identifier: Apache-2.0

// Package textnorm canonicalizes captured text before it is split, parsed, or compared.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize converts CRLF line endings to LF and trims surrounding whitespace.
func Normalize(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
}

// ForComparison reduces text to lower-case ASCII letters, digits, and single spaces.
// The result is only used for duplicate detection and signatures, never for display.
func ForComparison(raw string) string {
	folded := strings.ToLower(norm.NFKC.String(Normalize(raw)))
	// Every other rune becomes a space, so "2+2" and "2 + 2" both reduce to "2 2".
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(mapped), " ")
}
