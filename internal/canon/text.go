package canon

import (
	"strings"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/encoding/charmap"
)

// decode turns raw bytes of unknown encoding into text: UTF-8 when valid,
// otherwise ISO-8859-1.
func decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// ISO-8859-1 maps every byte, so this only guards against decoder changes.
		return strings.ToValidUTF8(string(b), "")
	}
	return string(s)
}

// toASCII transliterates text to plain ASCII.
func toASCII(s string) string {
	return unidecode.Unidecode(s)
}

// collapseSpace replaces every run of whitespace with a single space and trims the ends.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isAlnum reports whether c is an ASCII letter or digit.
func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// alnumOnly drops every byte that is not an ASCII letter or digit.
func alnumOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isAlnum(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
