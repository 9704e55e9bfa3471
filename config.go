package ckv

import (
	"sync"

	"github.com/pkg/errors"
)

// NumberPolicy selects how encoders render NaN and infinities.
type NumberPolicy uint8

const (
	NumberReject  NumberPolicy = iota // refuse with an EncodeTypeError
	NumberLiteral                     // emit NaN / Infinity / -Infinity
	NumberNull                        // emit null
)

const (
	DefaultSparseConvert  = false
	DefaultSparseRatio    = 2
	DefaultSparseSafe     = 10
	DefaultDecodeMaxDepth = 1000
	DefaultEncodeMaxDepth = 1000
	DefaultPrecision      = 14

	maxPrecision = 14
	maxDepth     = 1<<31 - 1
)

// Config holds the decode and encode knobs of all three dialects. A nil
// *Config passed to any entry point means the defaults. A Config may be
// shared between goroutines; the persistent encode buffer is mutex-guarded.
type Config struct {
	sparseConvert        bool
	sparseRatio          int
	sparseSafe           int
	decodeMaxDepth       int
	encodeMaxDepth       int
	decodeInvalidNumbers bool
	encodeInvalidNumbers NumberPolicy
	precision            int
	mapIndent            bool
	includeFreshDepth    bool
	keepBuffer           bool

	mu  sync.Mutex
	buf []byte
}

// NewConfig returns a Config carrying the historical defaults: sparse
// promotion with ratio 2 above 10 items, depth limits of 1000, 14
// significant digits, NaN/Infinity decoded but not encoded, indented Map
// output, a fresh depth budget per included file.
//
// The persistent encode buffer defaults to off; sharing one buffer across
// calls serializes encodes and aliases their results.
func NewConfig() *Config {
	return &Config{
		sparseConvert:        DefaultSparseConvert,
		sparseRatio:          DefaultSparseRatio,
		sparseSafe:           DefaultSparseSafe,
		decodeMaxDepth:       DefaultDecodeMaxDepth,
		encodeMaxDepth:       DefaultEncodeMaxDepth,
		decodeInvalidNumbers: true,
		encodeInvalidNumbers: NumberReject,
		precision:            DefaultPrecision,
		mapIndent:            true,
		includeFreshDepth:    true,
	}
}

var defaultConfig = NewConfig()

func (c *Config) orDefault() *Config {
	if c == nil {
		return defaultConfig
	}
	return c
}

// SetSparse configures the array promotion heuristic: an integer-keyed
// object stays an array while maxIndex <= items*ratio or maxIndex <= safe.
// A ratio of 0 disables the sparseness check. convert selects falling back
// to object form instead of failing.
func (c *Config) SetSparse(convert bool, ratio, safe int) error {
	if ratio < 0 || safe < 0 {
		return errors.Errorf("expected integer between 0 and %d", maxDepth)
	}
	c.sparseConvert = convert
	c.sparseRatio = ratio
	c.sparseSafe = safe
	return nil
}

func (c *Config) SetDecodeMaxDepth(n int) error {
	if n < 1 || n > maxDepth {
		return errors.Errorf("expected integer between 1 and %d", maxDepth)
	}
	c.decodeMaxDepth = n
	return nil
}

func (c *Config) SetEncodeMaxDepth(n int) error {
	if n < 1 || n > maxDepth {
		return errors.Errorf("expected integer between 1 and %d", maxDepth)
	}
	c.encodeMaxDepth = n
	return nil
}

// SetEncodeNumberPrecision bounds the significant digits of encoded numbers.
func (c *Config) SetEncodeNumberPrecision(n int) error {
	if n < 1 || n > maxPrecision {
		return errors.Errorf("expected integer between 1 and %d", maxPrecision)
	}
	c.precision = n
	return nil
}

// SetDecodeInvalidNumbers toggles passthrough of NaN, Infinity, hex and
// other strtod extensions while decoding.
func (c *Config) SetDecodeInvalidNumbers(on bool) { c.decodeInvalidNumbers = on }

func (c *Config) SetEncodeInvalidNumbers(p NumberPolicy) error {
	if p > NumberNull {
		return errors.New("expected off, on or null")
	}
	c.encodeInvalidNumbers = p
	return nil
}

// SetMapIndent toggles the newline/tab layout of the Map dialect encoders.
func (c *Config) SetMapIndent(on bool) { c.mapIndent = on }

// SetIncludeFreshDepth selects whether each file pulled in by a #"path"
// reference parses with a fresh nesting budget (true) or inherits the
// including chain's depth (false).
func (c *Config) SetIncludeFreshDepth(on bool) { c.includeFreshDepth = on }

// SetEncodeKeepBuffer toggles reuse of a Config-owned output buffer across
// encode calls. With it on, the bytes returned by an encode alias that
// buffer and are invalidated by the next encode through the same Config.
func (c *Config) SetEncodeKeepBuffer(on bool) {
	c.mu.Lock()
	c.keepBuffer = on
	if !on {
		c.buf = nil
	}
	c.mu.Unlock()
}
