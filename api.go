package ckv

import "github.com/pkg/errors"

// Dialect selects one of the three document syntaxes.
type Dialect uint8

const (
	Map Dialect = iota
	MapArray
	Brace
	BraceArray
	Typed
)

func (d Dialect) String() string {
	switch d {
	case Map:
		return "map"
	case MapArray:
		return "map-array"
	case Brace:
		return "brace"
	case BraceArray:
		return "brace-array"
	case Typed:
		return "typed"
	default:
		return "unknown"
	}
}

// Decode parses data in the given dialect.
func Decode(d Dialect, data []byte, cfg *Config) (*Node, error) {
	switch d {
	case Map:
		return DecodeMap(data, cfg)
	case MapArray:
		return DecodeMapArray(data, cfg)
	case Brace:
		return DecodeBrace(data, cfg)
	case BraceArray:
		return DecodeBraceArray(data, cfg)
	case Typed:
		return DecodeTyped(data, cfg)
	default:
		return nil, errors.Errorf("unknown dialect %d", uint8(d))
	}
}

// Encode renders n in the given dialect.
func Encode(d Dialect, n *Node, cfg *Config) ([]byte, error) {
	switch d {
	case Map:
		return EncodeMap(n, cfg)
	case MapArray:
		return EncodeMapArray(n, cfg)
	case Brace:
		return EncodeBrace(n, cfg)
	case BraceArray:
		return EncodeBraceArray(n, cfg)
	case Typed:
		return EncodeTyped(n, cfg)
	default:
		return nil, errors.Errorf("unknown dialect %d", uint8(d))
	}
}

// Valid reports whether data is a well-formed document of the dialect.
func Valid(d Dialect, data []byte) bool {
	_, err := Decode(d, data, nil)
	return err == nil
}
