package ckv

import "fmt"

type tokenType uint8

const (
	errToken tokenType = iota
	objBeginToken
	objEndToken
	arrBeginToken
	arrEndToken
	stringToken
	numberToken
	sepToken
	commaToken
	refToken
	endToken
	// classifier-only classes, never returned from a token read
	whitespaceToken
	commentToken
	unknownToken
)

// String returns the historical token name used in error messages.
func (t tokenType) String() string {
	switch t {
	case errToken:
		return "T_ERROR"
	case objBeginToken:
		return "T_OBJ_BEGIN"
	case objEndToken:
		return "T_OBJ_END"
	case arrBeginToken:
		return "T_ARR_BEGIN"
	case arrEndToken:
		return "T_ARR_END"
	case stringToken:
		return "T_STRING"
	case numberToken:
		return "T_NUMBER"
	case sepToken:
		return "T_COLON"
	case commaToken:
		return "T_COMMA"
	case refToken:
		return "T_REF"
	case endToken:
		return "T_END"
	case whitespaceToken:
		return "T_WHITESPACE"
	case commentToken:
		return "T_COMMENT"
	case unknownToken:
		return "T_UNKNOWN"
	default:
		return fmt.Sprintf("tokenType(%d)", uint8(t))
	}
}

// token carries its source offset and an owned payload. str is a copy out of
// the scanner's scratch buffer and stays valid past the next read.
type token struct {
	typ   tokenType
	index int
	str   string
	num   float64
}

// String generates a readable form of a token meant for debugging.
func (t token) String() string {
	switch t.typ {
	case stringToken:
		return fmt.Sprintf("%s %q", t.typ, t.str)
	case numberToken:
		return fmt.Sprintf("%s %v", t.typ, t.num)
	case errToken:
		return fmt.Sprintf("%s %s at %d", t.typ, t.str, t.index)
	default:
		return t.typ.String()
	}
}
