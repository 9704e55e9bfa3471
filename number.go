package ckv

import (
	"math"
	"strconv"

	"github.com/valyala/fastjson/fastfloat"
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// hasCaseFold reports whether b starts with the lowercase ASCII word s,
// ignoring case.
func hasCaseFold(b []byte, s string) bool {
	if len(b) < len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if b[i]|0x20 != s[i] {
			return false
		}
	}
	return true
}

// isInvalidNumber checks the token at s.pos against the strict numeric
// grammar: no leading +, no hex, no leading zeros, no inf/nan words.
func (s *scanner) isInvalidNumber() bool {
	p := s.pos
	if p >= len(s.data) {
		return false
	}
	if s.data[p] == '+' {
		return true
	}
	if s.data[p] == '-' {
		p++
	}
	if p >= len(s.data) {
		return false
	}
	c := s.data[p]
	if c == '0' {
		if p+1 < len(s.data) {
			c2 := s.data[p+1]
			if c2|0x20 == 'x' || isDigit(c2) {
				return true
			}
		}
		return false
	}
	if c <= '9' {
		return false
	}
	rest := s.data[p:]
	return hasCaseFold(rest, "inf") || hasCaseFold(rest, "nan")
}

// scanNumber consumes a numeric token with strtod extent semantics.
func (s *scanner) scanNumber() token {
	start := s.pos
	val, end, ok := scanFloat(s.data, s.pos)
	if !ok {
		return token{typ: errToken, index: start, str: "invalid number"}
	}
	s.pos = end
	return token{typ: numberToken, index: start, num: val}
}

func signed(v float64, neg bool) float64 {
	if neg {
		return -v
	}
	return v
}

// scanFloat converts the longest numeric prefix at data[pos:], accepting
// the strtod extensions: optional sign, inf/infinity/nan words in any case,
// 0x hex integers, and an exponent that only counts when digits follow it.
func scanFloat(data []byte, pos int) (val float64, end int, ok bool) {
	p := pos
	neg := false
	if p < len(data) && (data[p] == '+' || data[p] == '-') {
		neg = data[p] == '-'
		p++
	}
	rest := data[p:]
	switch {
	case hasCaseFold(rest, "infinity"):
		return signed(math.Inf(1), neg), p + 8, true
	case hasCaseFold(rest, "inf"):
		return signed(math.Inf(1), neg), p + 3, true
	case hasCaseFold(rest, "nan"):
		return math.NaN(), p + 3, true
	}
	if len(rest) >= 2 && rest[0] == '0' && rest[1]|0x20 == 'x' {
		q := p + 2
		v := 0.0
		for q < len(data) {
			d := hexDigit(data[q])
			if d < 0 {
				break
			}
			v = v*16 + float64(d)
			q++
		}
		if q == p+2 {
			// a bare "0x" converts as plain zero ending after the 0
			return signed(0, neg), p + 1, true
		}
		return signed(v, neg), q, true
	}
	q := p
	for q < len(data) && isDigit(data[q]) {
		q++
	}
	digits := q > p
	if q < len(data) && data[q] == '.' {
		q++
		r := q
		for q < len(data) && isDigit(data[q]) {
			q++
		}
		digits = digits || q > r
	}
	if !digits {
		return 0, 0, false
	}
	end = q
	if q < len(data) && data[q]|0x20 == 'e' {
		r := q + 1
		if r < len(data) && (data[r] == '+' || data[r] == '-') {
			r++
		}
		d := r
		for d < len(data) && isDigit(data[d]) {
			d++
		}
		if d > r {
			end = d
		}
	}
	span := string(data[p:end])
	v, err := fastfloat.Parse(span)
	if err != nil {
		// fastfloat rejects ".5" and "5." forms; strconv takes them
		v, err = strconv.ParseFloat(span, 64)
		if err != nil {
			return 0, 0, false
		}
	}
	return signed(v, neg), end, true
}

// appendNumber formats f with the configured significant digits, applying
// the invalid-number policy to NaN and infinities.
func appendNumber(dst []byte, f float64, cfg *Config) ([]byte, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		switch cfg.encodeInvalidNumbers {
		case NumberLiteral:
			switch {
			case math.IsNaN(f):
				return append(dst, "NaN"...), nil
			case f > 0:
				return append(dst, "Infinity"...), nil
			default:
				return append(dst, "-Infinity"...), nil
			}
		case NumberNull:
			return append(dst, "null"...), nil
		default:
			return dst, &EncodeTypeError{Type: Number, Reason: "must not be NaN or Infinity"}
		}
	}
	return strconv.AppendFloat(dst, f, 'g', cfg.precision, 64), nil
}
