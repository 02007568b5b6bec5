// Package sanitize takes care of normalizing untrusted user input before it
// is persisted or placed into an outbound message.
package sanitize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the maximum length of a cleaned string, in characters.
const MaxLength = 35000

// ErrInvalidUTF8 is returned when the input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 string")

var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean makes an arbitrary string safe to put on the wire.
//
// The input must be valid UTF-8, otherwise ErrInvalidUTF8 is returned and no
// partial result is produced. The cleaning is a single left-to-right byte
// scan that:
//
// 	• replaces the control characters 0-8, 11-12, 14-31 and 127 with a space
// 	  (tab and line feed are kept as they are)
// 	• drops carriage returns
// 	• drops the sequences U+2028-U+202E (0xE2 0x80 0xA8-0xAE), line and
// 	  paragraph separators and directional marks
// 	• drops the combining marks 0xCC 0xB3, 0xCC 0xBF and 0xCC 0x8A
// 	• copies any other character verbatim, multi-byte runes as a whole
//
// The result is capped at MaxLength characters and stripped of surrounding
// whitespace. Cleaning an already clean string returns it unchanged.
//
// The exact byte patterns above are a fixed table shared with peer clients,
// do not replace them with a general Unicode normalization.
func Clean(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}

	var b strings.Builder
	b.Grow(len(s))

	chars := 0
	for i := 0; i < len(s) && chars < MaxLength; {
		c := s[i]
		switch {
		case c <= 8 || c == 11 || c == 12 || (c >= 14 && c <= 31) || c == 127:
			b.WriteByte(' ')
			chars++
			i++

		case c == '\r':
			i++

		case c == 0xE2 && i+2 < len(s) && s[i+1] == 0x80 && s[i+2] >= 0xA8 && s[i+2] <= 0xAE:
			i += 3

		case c == 0xCC && i+1 < len(s) && (s[i+1] == 0xB3 || s[i+1] == 0xBF || s[i+1] == 0x8A):
			i += 2

		default:
			n := charLen(c)
			if i+n > len(s) {
				// Unreachable on valid UTF-8, do not emit a broken rune
				i = len(s)
				break
			}
			b.WriteString(s[i : i+n])
			chars++
			i += n
		}
	}

	return strings.TrimSpace(b.String()), nil
}

// charLen returns the length in bytes of the UTF-8 character starting with
// the byte received.
func charLen(c byte) int {
	switch {
	case c < 0x80:
		return 1
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// Normalize returns a version of the string received without diacritics.
func Normalize(s string) string {
	result, _, err := transform.String(normalizer, s)
	if err != nil {
		return s
	}
	return result
}

// UserInput returns an error if the text contains characters typically used
// to inject SQL statements into a query.
func UserInput(s string) error {
	if strings.ContainsAny(s, "'\";") {
		return errors.New("invalid characters in query")
	}
	return nil
}
