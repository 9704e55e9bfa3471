package ckv

import (
	"fmt"

	"github.com/pkg/errors"
)

// Input encoding errors detected before tokenization starts.
var (
	ErrUTF16   = errors.New("input looks like UTF-16 or UTF-32, only UTF-8 is supported")
	ErrNotUTF8 = errors.New("input is not valid UTF-8 text")
)

// TokenError captures a byte sequence the tokenizer could not resolve.
type TokenError struct {
	Offset int
	Reason string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s at character %d", e.Reason, e.Offset+1)
}

// ParseError captures a well-formed token in a position the grammar does not
// allow. Found holds the historical token name, Offset the 0-based byte
// index of the token (displayed 1-based).
type ParseError struct {
	Expected string
	Found    string
	Offset   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Expected %s but found %s at character %d",
		e.Expected, e.Found, e.Offset+1)
}

// DepthError captures nesting beyond the configured maximum.
type DepthError struct {
	Depth  int
	Offset int
	Encode bool
}

func (e *DepthError) Error() string {
	if e.Encode {
		return fmt.Sprintf("Cannot serialise, excessive nesting (%d)", e.Depth)
	}
	return fmt.Sprintf("Found too many nested data structures (%d) at character %d",
		e.Depth, e.Offset)
}

// EncodeTypeError captures a node an encoder cannot represent.
type EncodeTypeError struct {
	Type   Type
	Reason string
}

func (e *EncodeTypeError) Error() string {
	return fmt.Sprintf("Cannot serialise %s: %s", e.Type, e.Reason)
}

// SparseArrayError captures an integer-keyed object too sparse to promote
// while conversion back to object form is disabled.
type SparseArrayError struct {
	MaxIndex int
	Items    int
}

func (e *SparseArrayError) Error() string {
	return fmt.Sprintf("Cannot serialise object: excessively sparse array (%d items up to index %d)",
		e.Items, e.MaxIndex)
}
