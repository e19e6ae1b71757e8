package script

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Unquote decodes a JavaScript string literal, including its quotes.
// It reports false if s is not a single- or double-quoted literal.
func Unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}

	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return "", false
	}

	s = s[1 : len(s)-1]
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}

	var (
		buf  strings.Builder
		high rune // pending high surrogate
	)

	flush := func() {
		if high != 0 {
			buf.WriteRune(utf8.RuneError)
			high = 0
		}
	}

	emit := func(r rune) {
		switch {
		case utf16.IsSurrogate(r) && r < 0xdc00:
			flush()
			high = r

		case utf16.IsSurrogate(r) && high != 0:
			buf.WriteRune(utf16.DecodeRune(high, r))
			high = 0

		default:
			flush()
			buf.WriteRune(r)
		}
	}

	buf.Grow(len(s))

	for len(s) > 0 {
		if s[0] != '\\' {
			r, n := utf8.DecodeRuneInString(s)
			emit(r)
			s = s[n:]

			continue
		}

		if len(s) == 1 {
			// A trailing backslash cannot occur in a well-formed literal.
			emit('\\')

			break
		}

		c, n := utf8.DecodeRuneInString(s[1:])
		s = s[1+n:]

		switch c {
		case 'n':
			emit('\n')
		case 'r':
			emit('\r')
		case 't':
			emit('\t')
		case 'b':
			emit('\b')
		case 'f':
			emit('\f')
		case 'v':
			emit('\v')

		case '\r':
			// Line continuation, CRLF or CR.
			s = strings.TrimPrefix(s, "\n")
		case '\n', '\u2028', '\u2029':
			// Line continuation.

		case 'x':
			r, rest, ok := hex(s, 2)
			if !ok {
				emit('x')

				continue
			}

			emit(r)
			s = rest

		case 'u':
			r, rest, ok := unicodeEscape(s)
			if !ok {
				emit('u')

				continue
			}

			emit(r)
			s = rest

		case '0', '1', '2', '3', '4', '5', '6', '7':
			r, rest := octal(c, s)
			emit(r)
			s = rest

		default:
			emit(c)
		}
	}

	flush()

	return buf.String(), true
}

// unicodeEscape decodes the part of a \u escape following the "u".
func unicodeEscape(s string) (rune, string, bool) {
	if !strings.HasPrefix(s, "{") {
		return hex(s, 4)
	}

	end := strings.IndexByte(s, '}')
	if end < 2 {
		return 0, s, false
	}

	v, err := strconv.ParseUint(s[1:end], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, s, false
	}

	return rune(v), s[end+1:], true
}

func hex(s string, n int) (rune, string, bool) {
	if len(s) < n {
		return 0, s, false
	}

	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, s, false
	}

	return rune(v), s[n:], true
}

// octal decodes a legacy octal escape whose first digit is d.
// At most three digits are consumed and the value never exceeds 0377.
func octal(d rune, s string) (rune, string) {
	v := d - '0'
	limit := 2

	if d > '3' {
		limit = 1
	}

	for i := 0; i < limit && len(s) > 0 && s[0] >= '0' && s[0] <= '7'; i++ {
		v = v*8 + rune(s[0]-'0')
		s = s[1:]
	}

	return v, s
}
