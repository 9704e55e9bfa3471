package ckv_test

import (
	"strings"
	"testing"

	ckv "github.com/d1ced/kvparser_ckv"
	"github.com/stretchr/testify/require"
)

func TestDialectString(t *testing.T) {
	want := map[ckv.Dialect]string{
		ckv.Map:        "map",
		ckv.MapArray:   "map-array",
		ckv.Brace:      "brace",
		ckv.BraceArray: "brace-array",
		ckv.Typed:      "typed",
		ckv.Dialect(9): "unknown",
	}
	for d, s := range want {
		if d.String() != s {
			t.Errorf("Dialect(%d).String() = %q, want %q", uint8(d), d.String(), s)
		}
	}
}

func TestDecodeDispatch(t *testing.T) {
	tests := []struct {
		d  ckv.Dialect
		in string
	}{
		{ckv.Map, `"name" "arthur"`},
		{ckv.MapArray, `"pos" {"1" "2"}`},
		{ckv.Brace, `name="arthur"`},
		{ckv.BraceArray, `"a" "b"`},
		{ckv.Typed, `"name" "str" "arthur"`},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			n, err := ckv.Decode(tt.d, []byte(tt.in), nil)
			require.NoError(t, err)
			require.NotNil(t, n)

			out, err := ckv.Encode(tt.d, n, nil)
			require.NoError(t, err)
			back, err := ckv.Decode(tt.d, out, nil)
			require.NoError(t, err)
			if !ckv.EqNode(n, back) {
				t.Errorf("dispatch round trip changed the tree:\nfirst %+v\nsecond %+v", n, back)
			}
		})
	}
}

func TestUnknownDialect(t *testing.T) {
	_, err := ckv.Decode(ckv.Dialect(9), []byte(`x`), nil)
	require.Error(t, err)
	if !strings.Contains(err.Error(), "unknown dialect") {
		t.Errorf("unexpected error: %v", err)
	}

	doc := ckv.ObjectNode()
	_, err = ckv.Encode(ckv.Dialect(9), &doc, nil)
	require.Error(t, err)
}

func TestValid(t *testing.T) {
	tests := []struct {
		d    ckv.Dialect
		in   string
		want bool
	}{
		{ckv.Map, `"k" "v"`, true},
		{ckv.Map, `"k" {`, false},
		{ckv.Brace, `k="v"`, true},
		{ckv.Brace, `k=`, false},
		{ckv.Typed, `"k" "t" "v"`, true},
		{ckv.Typed, `5`, false},
	}
	for _, tt := range tests {
		if got := ckv.Valid(tt.d, []byte(tt.in)); got != tt.want {
			t.Errorf("Valid(%s, %q) = %v, want %v", tt.d, tt.in, got, tt.want)
		}
	}
}
