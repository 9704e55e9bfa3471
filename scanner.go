package ckv

// Character classifier tables, one per dialect family. Unlisted bytes are
// token errors so that arbitrary binary input fails fast.

func buildMapClasses() (t [256]tokenType) {
	t['{'] = objBeginToken
	t['}'] = objEndToken
	t[','] = commaToken
	t['#'] = refToken
	t['/'] = commentToken
	for _, c := range []byte{' ', '\t', '\n', '\r'} {
		t[c] = whitespaceToken
	}
	for _, c := range []byte{'"', '+', '-', 'f', 'i', 'I', 'n', 'N', 't'} {
		t[c] = unknownToken
	}
	for c := byte('0'); c <= '9'; c++ {
		t[c] = unknownToken
	}
	return t
}

func buildBraceClasses() (t [256]tokenType) {
	t['{'] = objBeginToken
	t['}'] = objEndToken
	t['['] = arrBeginToken
	t[']'] = arrEndToken
	t['='] = sepToken
	t[','] = commaToken
	for _, c := range []byte{' ', '\t', '\n', '\r'} {
		t[c] = whitespaceToken
	}
	for _, c := range []byte{'"', '+', '-', '<', '\\'} {
		t[c] = unknownToken
	}
	for c := byte('0'); c <= '9'; c++ {
		t[c] = unknownToken
	}
	for c := byte('a'); c <= 'z'; c++ {
		t[c] = unknownToken
	}
	for c := byte('A'); c <= 'Z'; c++ {
		t[c] = unknownToken
	}
	return t
}

var (
	mapClasses   = buildMapClasses()
	braceClasses = buildBraceClasses()
)

// scanner is the per-call parse context. pos indexes data, tmp is the
// scratch buffer string payloads are assembled in, depth counts open
// containers against the decode limit.
type scanner struct {
	data    []byte
	pos     int
	tmp     []byte
	classes *[256]tokenType
	cfg     *Config
	depth   int
}

// newScanner runs the input entry checks: a NUL in the first two bytes
// means a UTF-16/32 encoding, a UTF-8 BOM is skipped, and without a BOM
// the first byte must be a known class.
func newScanner(data []byte, classes *[256]tokenType, cfg *Config) (*scanner, error) {
	if len(data) >= 2 && (data[0] == 0 || data[1] == 0) {
		return nil, ErrUTF16
	}
	s := &scanner{
		data:    data,
		tmp:     make([]byte, 0, 64),
		classes: classes,
		cfg:     cfg,
	}
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		s.pos = 3
	} else if len(data) > 0 && classes[data[0]] == errToken {
		return nil, ErrNotUTF8
	}
	return s, nil
}

func (s *scanner) descend() error {
	s.depth++
	if s.depth > s.cfg.decodeMaxDepth {
		return &DepthError{Depth: s.depth, Offset: s.pos}
	}
	return nil
}

func (s *scanner) ascend() { s.depth-- }

// errExpected builds the grammar error for tok, passing token errors
// through with their own reason and offset.
func (s *scanner) errExpected(expected string, tok token) error {
	if tok.typ == errToken {
		return &TokenError{Offset: tok.index, Reason: tok.str}
	}
	return &ParseError{Expected: expected, Found: tok.typ.String(), Offset: tok.index}
}

// nextMap reads the next Map-dialect token. Comments run from a slash to
// the end of the line.
func (s *scanner) nextMap() token {
skip:
	for {
		if s.pos >= len(s.data) {
			return token{typ: endToken, index: s.pos}
		}
		switch s.classes[s.data[s.pos]] {
		case whitespaceToken:
			s.pos++
		case commentToken:
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		default:
			break skip
		}
	}
	start := s.pos
	c := s.data[s.pos]
	t := s.classes[c]
	if t == errToken {
		return token{typ: errToken, index: start, str: "invalid token"}
	}
	if t != unknownToken {
		s.pos++
		return token{typ: t, index: start}
	}
	if c == '"' {
		return s.scanString()
	}
	if c == '-' || isDigit(c) {
		if !s.cfg.decodeInvalidNumbers && s.isInvalidNumber() {
			return token{typ: errToken, index: start, str: "invalid number"}
		}
		return s.scanNumber()
	}
	if s.cfg.decodeInvalidNumbers && s.isInvalidNumber() {
		return s.scanNumber()
	}
	return token{typ: errToken, index: start, str: "invalid token"}
}

// skipSpaceAndMarks consumes whitespace and <!-- --> comments.
func (s *scanner) skipSpaceAndMarks() {
	const markEnd = "-->"
	for {
		for s.pos < len(s.data) && s.classes[s.data[s.pos]] == whitespaceToken {
			s.pos++
		}
		if s.pos+3 < len(s.data) && s.data[s.pos] == '<' && s.data[s.pos+1] == '!' &&
			s.data[s.pos+2] == '-' && s.data[s.pos+3] == '-' {
			s.pos += 4
			off := 0
			for s.pos < len(s.data) {
				c := s.data[s.pos]
				s.pos++
				if c == markEnd[off] {
					off++
					if off == len(markEnd) {
						break
					}
				} else {
					off = 0
				}
			}
			continue
		}
		return
	}
}

// nextBrace reads the next Brace-dialect token. Letters always start a bare
// word; a digit or minus starts a bare word in key position and a number in
// value position.
func (s *scanner) nextBrace(isKey bool) token {
	s.skipSpaceAndMarks()
	if s.pos >= len(s.data) {
		return token{typ: endToken, index: s.pos}
	}
	start := s.pos
	c := s.data[s.pos]
	t := s.classes[c]
	if t == errToken {
		return token{typ: errToken, index: start, str: "invalid token"}
	}
	if isLetter(c) || c == '\\' {
		return s.scanWord()
	}
	if (c == '-' || isDigit(c)) && isKey {
		return s.scanWord()
	}
	if t != unknownToken {
		s.pos++
		return token{typ: t, index: start}
	}
	if c == '"' {
		return s.scanString()
	}
	if c == '-' || isDigit(c) {
		if !s.cfg.decodeInvalidNumbers && s.isInvalidNumber() {
			return token{typ: errToken, index: start, str: "invalid number"}
		}
		return s.scanNumber()
	}
	if s.cfg.decodeInvalidNumbers && s.isInvalidNumber() {
		return s.scanNumber()
	}
	return token{typ: errToken, index: start, str: "invalid token"}
}

// nextTyped reads the next Typed-dialect token. Only quoted strings and
// the single-character tokens exist; bare words and numbers do not.
func (s *scanner) nextTyped() token {
	s.skipSpaceAndMarks()
	if s.pos >= len(s.data) {
		return token{typ: endToken, index: s.pos}
	}
	start := s.pos
	c := s.data[s.pos]
	switch t := s.classes[c]; t {
	case errToken, unknownToken:
		if c == '"' {
			return s.scanString()
		}
		return token{typ: errToken, index: start, str: "invalid token"}
	default:
		s.pos++
		return token{typ: t, index: start}
	}
}

// scanString consumes a quoted string, decoding escapes through the escape
// table and \uXXXX sequences including surrogate pairs.
func (s *scanner) scanString() token {
	start := s.pos
	s.pos++
	s.tmp = s.tmp[:0]
	for {
		if s.pos >= len(s.data) {
			return token{typ: errToken, index: s.pos, str: "unexpected end of string"}
		}
		c := s.data[s.pos]
		if c == '"' {
			s.pos++
			return token{typ: stringToken, index: start, str: string(s.tmp)}
		}
		if c == '\\' {
			if s.pos+1 >= len(s.data) {
				return token{typ: errToken, index: s.pos, str: "unexpected end of string"}
			}
			switch e := escape2char[s.data[s.pos+1]]; e {
			case 'u':
				if !s.appendUnicodeEscape() {
					return token{typ: errToken, index: s.pos, str: "invalid unicode escape code"}
				}
			case 0:
				return token{typ: errToken, index: s.pos, str: "invalid escape code"}
			default:
				s.tmp = append(s.tmp, e)
				s.pos += 2
			}
			continue
		}
		s.tmp = append(s.tmp, c)
		s.pos++
	}
}

// scanWord consumes a bare word up to whitespace or the separator. Runs of
// backslashes collapse to a single slash, and the character ending a run is
// taken verbatim. A word cut off by the end of input is an error.
func (s *scanner) scanWord() token {
	start := s.pos
	s.tmp = s.tmp[:0]
	for {
		if s.pos >= len(s.data) {
			return token{typ: errToken, index: s.pos, str: "unexpected end of string"}
		}
		c := s.data[s.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '=' {
			break
		}
		if c == '\\' {
			for s.pos < len(s.data) && s.data[s.pos] == '\\' {
				s.pos++
			}
			if s.pos >= len(s.data) {
				return token{typ: errToken, index: s.pos, str: "unexpected end of string"}
			}
			c = s.data[s.pos]
			s.tmp = append(s.tmp, '/')
		}
		s.tmp = append(s.tmp, c)
		s.pos++
	}
	return token{typ: stringToken, index: start, str: string(s.tmp)}
}
