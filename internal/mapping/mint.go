package mapping

import (
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
)

// Minter derives resource identifiers under an instance namespace.
type Minter struct {
	base  string
	newID func() string
}

// NewMinter returns a minter rooted at base. newID generates opaque
// identifiers; nil selects random UUIDs.
func NewMinter(base string, newID func() string) Minter {
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	return Minter{base: base, newID: newID}
}

// Content returns the identifier for a content-keyed entity. The result
// depends only on path and key.
func (m Minter) Content(path, key string) quad.IRI {
	return quad.IRI(m.base + path + Escape(key))
}

// Opaque returns a freshly generated identifier under path.
func (m Minter) Opaque(path string) quad.IRI {
	return quad.IRI(m.base + path + m.newID())
}

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes every byte of s except ASCII letters, digits,
// "_.-~" and "/".
func Escape(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '~', c == '/':
		return true
	}
	return false
}
