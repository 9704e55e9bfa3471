package ckv

import "fmt"

// escape2char translates the character after a backslash in a quoted
// string. 0 marks an invalid escape, 'u' a unicode escape.
var escape2char = [256]byte{
	'"': '"', '\\': '\\', '/': '/',
	'b': '\b', 't': '\t', 'n': '\n', 'f': '\f', 'r': '\r',
	'u': 'u',
}

// char2escape translates bytes that must be escaped when encoding a quoted
// string. Empty means the byte passes through verbatim.
var char2escape [256]string

func init() {
	for i := 0; i < 0x20; i++ {
		char2escape[i] = fmt.Sprintf(`\u%04x`, i)
	}
	char2escape['"'] = `\"`
	char2escape['\\'] = `\\`
	char2escape['\b'] = `\b`
	char2escape['\t'] = `\t`
	char2escape['\n'] = `\n`
	char2escape['\f'] = `\f`
	char2escape['\r'] = `\r`
	char2escape[0x7F] = `\u007f`
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// decodeHex4 reads 4 hex digits at data[i:]. Returns -1 on malformed input.
func decodeHex4(data []byte, i int) int {
	if i+4 > len(data) {
		return -1
	}
	cp := 0
	for k := 0; k < 4; k++ {
		d := hexDigit(data[i+k])
		if d < 0 {
			return -1
		}
		cp = cp<<4 | d
	}
	return cp
}

// appendCodepoint writes cp as UTF-8. cp is at most 0x10FFFF after
// surrogate combination.
func appendCodepoint(dst []byte, cp int) []byte {
	switch {
	case cp <= 0x7F:
		return append(dst, byte(cp))
	case cp <= 0x7FF:
		return append(dst, byte(cp>>6)|0xC0, byte(cp&0x3F)|0x80)
	case cp <= 0xFFFF:
		return append(dst, byte(cp>>12)|0xE0, byte(cp>>6&0x3F)|0x80,
			byte(cp&0x3F)|0x80)
	default:
		return append(dst, byte(cp>>18)|0xF0, byte(cp>>12&0x3F)|0x80,
			byte(cp>>6&0x3F)|0x80, byte(cp&0x3F)|0x80)
	}
}

// appendUnicodeEscape decodes the \uXXXX sequence at s.pos, combining
// UTF-16 surrogate pairs. On success the scratch buffer holds the UTF-8
// bytes and s.pos is past the sequence.
func (s *scanner) appendUnicodeEscape() bool {
	cp := decodeHex4(s.data, s.pos+2)
	if cp < 0 {
		return false
	}
	width := 6
	if cp&0xF800 == 0xD800 {
		// high surrogate; a low one in its own \u escape must follow
		if cp&0x400 != 0 {
			return false
		}
		if s.pos+8 > len(s.data) || s.data[s.pos+6] != '\\' || s.data[s.pos+7] != 'u' {
			return false
		}
		low := decodeHex4(s.data, s.pos+8)
		if low < 0 || low&0xFC00 != 0xDC00 {
			return false
		}
		cp = (cp&0x3FF)<<10 | low&0x3FF
		cp += 0x10000
		width = 12
	}
	s.tmp = appendCodepoint(s.tmp, cp)
	s.pos += width
	return true
}

// appendEscaped writes s with the fixed escape table applied, no quotes.
func appendEscaped(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		if esc := char2escape[s[i]]; esc != "" {
			dst = append(dst, esc...)
		} else {
			dst = append(dst, s[i])
		}
	}
	return dst
}
