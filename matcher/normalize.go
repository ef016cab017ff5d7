package matcher

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText canonicalizes a raw header name or keyword for comparison.
// The result contains only lowercase ASCII letters, digits and single
// spaces; separator punctuation (hyphen, underscore, slash, pipe, comma)
// and whitespace runs collapse to one space, everything else is dropped.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.ToLower(normed)
	var b strings.Builder
	b.Grow(len(normed))
	for _, r := range normed {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\u00a0',
			r == '-', r == '_', r == '/', r == '|', r == ',':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeAll normalizes a slice of strings, preserving order.
func NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = NormalizeText(t)
	}
	return out
}
