package sanitize

import (
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	cases := []struct {
		desc     string
		in       string
		expected string
	}{
		{desc: "Untouched", in: "Hello, world!", expected: "Hello, world!"},
		{desc: "Empty", in: "", expected: ""},
		{desc: "Whitespace only", in: "   ", expected: ""},
		{desc: "Null byte", in: "Cafe\x00Pushkin", expected: "Cafe Pushkin"},
		{desc: "Control characters", in: "a\x01b\x08c\x0Bd\x0Ce\x0Ef\x1Fg\x7Fh", expected: "a b c d e f g h"},
		{desc: "Carriage return dropped", in: "Hello\rWorld", expected: "HelloWorld"},
		{desc: "CRLF keeps the line feed", in: "Hello\r\nWorld", expected: "Hello\nWorld"},
		{desc: "Tab kept", in: "Hello\tWorld", expected: "Hello\tWorld"},
		{desc: "Line separator", in: "Hello World", expected: "HelloWorld"},
		{desc: "Paragraph separator", in: "Hello World", expected: "HelloWorld"},
		{desc: "Right-to-left override", in: "Hello‮World", expected: "HelloWorld"},
		{desc: "Combining vertical line below", in: "Hello̳World", expected: "HelloWorld"},
		{desc: "Combining low line", in: "Hello̿World", expected: "HelloWorld"},
		{desc: "Combining ring above", in: "Hello̊World", expected: "HelloWorld"},
		{desc: "Other 0xE2 sequences untouched", in: "10€", expected: "10€"},
		{desc: "Other 0xCC sequences untouched", in: "é", expected: "é"},
		{desc: "Cyrillic", in: "Пушкинская площадь", expected: "Пушкинская площадь"},
		{desc: "CJK", in: "你好", expected: "你好"},
		{desc: "Emoji", in: "🍕 pizza", expected: "🍕 pizza"},
		{desc: "Surrounding whitespace", in: "  Hello  ", expected: "Hello"},
		{desc: "Control characters trimmed at the edges", in: "\x00Hello\x01\x02World\x1F\x7F", expected: "Hello  World"},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := Clean(tc.in)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCleanInvalidUTF8(t *testing.T) {
	cases := []string{
		"\xFF",
		"abc\xC0\x80",
		"truncated \xE2\x80",
		string([]byte{0xE2, 0x28, 0xA1}),
	}

	for i, tc := range cases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got, err := Clean(tc)
			assert.ErrorIs(t, err, ErrInvalidUTF8)
			assert.Empty(t, got)
		})
	}
}

func TestCleanTruncates(t *testing.T) {
	in := strings.Repeat("a", MaxLength+1000)
	got, err := Clean(in)
	assert.NoError(t, err)
	assert.Equal(t, MaxLength, len(got))

	// The cap counts characters, not bytes
	in = strings.Repeat("ñ", MaxLength+1000)
	got, err = Clean(in)
	assert.NoError(t, err)
	assert.Equal(t, MaxLength, utf8.RuneCountInString(got))
}

func TestCleanIdempotent(t *testing.T) {
	cases := []string{
		"Hello, world!",
		"Cafe\x00Pushkin",
		"Hello\r\nWorld",
		"  a b̳c  ",
		strings.Repeat("word ", 10000),
	}

	for i, tc := range cases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			once, err := Clean(tc)
			assert.NoError(t, err)
			twice, err := Clean(once)
			assert.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{in: "Dança", expected: "Danca"},
		{in: "Çomer", expected: "Comer"},
		{in: "úser", expected: "user"},
		{in: "ïd", expected: "id"},
		{in: "nÀmệ", expected: "nAme"},
	}

	for i, tc := range cases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got := Normalize(tc.in)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestUserInput(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		query := "searching for values"
		err := UserInput(query)
		assert.NoError(t, err)
	})
	t.Run("Invalid", func(t *testing.T) {
		query := "'; DROP TABLE venues; --"
		err := UserInput(query)
		assert.Error(t, err)
	})
}

func BenchmarkClean(b *testing.B) {
	str := "Pushkin\x00Square,\r\nMoscow "
	for i := 0; i < b.N; i++ {
		Clean(str)
	}
}

func BenchmarkNormalize(b *testing.B) {
	str := "BénçhmẬrkstrïng"
	for i := 0; i < b.N; i++ {
		str = Normalize(str)
	}
}
