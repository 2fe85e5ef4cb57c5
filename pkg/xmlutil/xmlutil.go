// Package xmlutil provides XML escaping and qualified-name helpers for
// writing RDF/XML.
package xmlutil

import (
	"encoding/xml"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Escape replaces characters with special meaning in XML. The result is
// safe in both element content and double-quoted attribute values.
func Escape(s string) string {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		// EscapeText only fails on writer errors; strings.Builder has none.
		return s
	}
	return buf.String()
}

// SplitIRI splits iri into a namespace and an XML local name at the last
// '#', '/' or ':' such that the local name is a valid NCName. It reports
// false when no such split exists.
func SplitIRI(iri string) (namespace, local string, ok bool) {
	i := strings.LastIndexAny(iri, "#/:")
	if i < 0 || i == len(iri)-1 {
		return "", "", false
	}
	namespace, local = iri[:i+1], iri[i+1:]
	if !IsNCName(local) {
		return "", "", false
	}
	return namespace, local, true
}

// IsNCName reports whether s is a non-colonized XML name.
func IsNCName(s string) bool {
	if s == "" {
		return false
	}
	first, size := utf8.DecodeRuneInString(s)
	if first != '_' && !unicode.IsLetter(first) {
		return false
	}
	for _, r := range s[size:] {
		switch {
		case r == '_' || r == '-' || r == '.':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
