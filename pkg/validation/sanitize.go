package validation

import (
	"strings"
)

// htmlEntities encodes the five characters that matter in HTML text and
// attribute values. Single quotes use the numeric form mail clients expect.
var htmlEntities = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// SanitizeText trims s, removes backslash escapes and HTML-encodes the result.
// Every free-text form field goes through it before any other use.
func SanitizeText(s string) string {
	return htmlEntities.Replace(StripSlashes(strings.TrimSpace(s)))
}

// StripSlashes un-quotes a backslash-escaped string: `\x` becomes `x`,
// `\\` becomes `\` and a trailing lone backslash is dropped.
func StripSlashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// SanitizeEmail trims s and removes every character that cannot appear in an
// email address.
func SanitizeEmail(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if isEmailRune(r) {
			return r
		}
		return -1
	}, s)
}

func isEmailRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("!#$%&'*+-=?^_`{|}~@.[]", r)
}
