package ckv

import (
	"errors"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/stretchr/testify/require"
)

func TestDecodeMap(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Node
	}{
		{"empty", "", ObjectNode()},
		{"string pair", `"name" "arthur"`, ObjectNode(
			Member{Key: "name", Node: StringNode("arthur")},
		)},
		{"number pair", `"mass" -31.2`, ObjectNode(
			Member{Key: "mass", Node: NumberNode(-31.2)},
		)},
		{"nested", "\"cfg\"\t{\"a\" \"1\" \"b\" {\"x\" \"2\"}}", ObjectNode(
			Member{Key: "cfg", Node: ObjectNode(
				Member{Key: "a", Node: StringNode("1")},
				Member{Key: "b", Node: ObjectNode(
					Member{Key: "x", Node: StringNode("2")},
				)},
			)},
		)},
		{"empty block", `"cfg" {}`, ObjectNode(
			Member{Key: "cfg", Node: ObjectNode()},
		)},
		{"comments", "/ header\n\"k\" \"v\" / trailer", ObjectNode(
			Member{Key: "k", Node: StringNode("v")},
		)},
		{"duplicate keys kept", `"cfg" {"a" "1" "a" "2"}`, ObjectNode(
			Member{Key: "cfg", Node: ObjectNode(
				Member{Key: "a", Node: StringNode("1")},
				Member{Key: "a", Node: StringNode("2")},
			)},
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			have, err := DecodeMap([]byte(tt.in), nil)
			require.NoError(t, err)
			if !EqNode(have, &tt.want) {
				t.Errorf("have %+v, want %+v", have, tt.want)
			}
		})
	}
}

func TestDecodeMapErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"literal", `"a" true`, "invalid token at character 5"},
		{"number key", `5 "x"`, "Expected object key string but found T_NUMBER at character 1"},
		{"trailing data", `"a" "b" "c"`, "Expected the end but found T_STRING at character 9"},
		{"brace as value", `"a" }`, "Expected value but found T_OBJ_END at character 5"},
		{"key in block", `"a" {5 "x"}`, "Expected object key string but found T_NUMBER at character 6"},
		{"comma in block", `"a" {"x" , "y"}`, "Expected value but found T_COMMA at character 10"},
		{"unterminated", `"a" {"x" "y"`, "Expected object key string but found T_END at character 13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMap([]byte(tt.in), nil)
			require.Error(t, err)
			if err.Error() != tt.want {
				t.Errorf("have %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestDecodeMapDepth(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.SetDecodeMaxDepth(3))

	build := func(n int) []byte {
		return []byte(`"k" ` + strings.Repeat(`{"a" `, n) + `"v"` + strings.Repeat(`}`, n))
	}
	if _, err := DecodeMap(build(3), cfg); err != nil {
		t.Errorf("depth 3 with limit 3: %v", err)
	}
	_, err := DecodeMap(build(4), cfg)
	var depthErr *DepthError
	if !errors.As(err, &depthErr) {
		t.Fatalf("depth 4 with limit 3: have %v, want DepthError", err)
	}
	if depthErr.Encode {
		t.Error("decode depth error flagged as encode")
	}
}

func TestEncodeMapDepth(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.SetEncodeMaxDepth(2))

	build := func(n int) Node {
		node := StringNode("v")
		for i := 0; i < n; i++ {
			node = ObjectNode(Member{Key: "a", Node: node})
		}
		return ObjectNode(Member{Key: "k", Node: node})
	}
	two := build(2)
	if _, err := EncodeMap(&two, cfg); err != nil {
		t.Errorf("depth 2 with limit 2: %v", err)
	}
	three := build(3)
	_, err := EncodeMap(&three, cfg)
	var depthErr *DepthError
	if !errors.As(err, &depthErr) {
		t.Fatalf("depth 3 with limit 2: have %v, want DepthError", err)
	}
	if !depthErr.Encode {
		t.Error("encode depth error not flagged as encode")
	}
}

func TestDecodeMapArray(t *testing.T) {
	have, err := DecodeMapArray([]byte(`"pos" {"1" "2" {"3"} "4"}`), nil)
	require.NoError(t, err)
	want := ObjectNode(Member{Key: "pos", Node: ArrayNode(
		StringNode("1"), StringNode("2"),
		ArrayNode(StringNode("3")),
		StringNode("4"),
	)})
	if !EqNode(have, &want) {
		t.Errorf("have %+v, want %+v", have, want)
	}
}

func TestEncodeMap(t *testing.T) {
	tests := []struct {
		name string
		doc  Node
		want string
	}{
		{"scalar", ObjectNode(Member{Key: "name", Node: StringNode("arthur")}),
			"\"name\"\t\"arthur\""},
		{"number", ObjectNode(Member{Key: "mass", Node: NumberNode(-31.2)}),
			"\"mass\"\t-31.2"},
		{"block", ObjectNode(Member{Key: "cfg", Node: ObjectNode(
			Member{Key: "a", Node: StringNode("1")},
			Member{Key: "b", Node: StringNode("2")},
		)}),
			"\"cfg\"\t\n{\n\t\"a\"\t\"1\"\n\t\"b\"\t\"2\"\n}"},
		{"nested block", ObjectNode(Member{Key: "cfg", Node: ObjectNode(
			Member{Key: "a", Node: ObjectNode(
				Member{Key: "x", Node: StringNode("2")},
			)},
		)}),
			"\"cfg\"\t\n{\n\t\"a\"\t\n\t{\n\t\t\"x\"\t\"2\"\n\t}\n}"},
		{"escaped key", ObjectNode(Member{Key: "a\tb", Node: StringNode("v")}),
			"\"a\\tb\"\t\"v\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := EncodeMap(&tt.doc, nil)
			require.NoError(t, err)
			if string(out) != tt.want {
				t.Errorf("output differs:\n%s", diff.LineDiff(tt.want, string(out)))
			}
		})
	}
}

func TestEncodeMapCompact(t *testing.T) {
	cfg := NewConfig()
	cfg.SetMapIndent(false)
	doc := ObjectNode(Member{Key: "cfg", Node: ObjectNode(
		Member{Key: "a", Node: StringNode("1")},
		Member{Key: "b", Node: StringNode("2")},
	)})
	out, err := EncodeMap(&doc, cfg)
	require.NoError(t, err)
	want := "\"cfg\"\t{\"a\"\t\"1\"\"b\"\t\"2\"}"
	if string(out) != want {
		t.Errorf("have %q, want %q", out, want)
	}
	// compact output still parses
	back, err := DecodeMap(out, cfg)
	require.NoError(t, err)
	if !EqNode(back, &doc) {
		t.Error("compact output does not round-trip")
	}
}

func TestEncodeMapErrors(t *testing.T) {
	boolDoc := ObjectNode(Member{Key: "k", Node: BoolNode(true)})
	if _, err := EncodeMap(&boolDoc, nil); err == nil {
		t.Error("boolean value: no error")
	}
	str := StringNode("x")
	if _, err := EncodeMap(&str, nil); err == nil {
		t.Error("non-object root: no error")
	}
	empty := ObjectNode()
	if _, err := EncodeMap(&empty, nil); err == nil {
		t.Error("empty document: no error")
	}
}

func TestEncodeMapArray(t *testing.T) {
	doc := ObjectNode(Member{Key: "pos", Node: ArrayNode(
		StringNode("a"), StringNode("1"),
		StringNode("b"), StringNode("2"),
	)})
	out, err := EncodeMapArray(&doc, nil)
	require.NoError(t, err)
	want := "\"pos\"\t\n{\n\t\"a\"\t\"1\"\n\t\"b\"\t\"2\"\n}"
	if string(out) != want {
		t.Errorf("output differs:\n%s", diff.LineDiff(want, string(out)))
	}

	back, err := DecodeMapArray(out, nil)
	require.NoError(t, err)
	if !EqNode(back, &doc) {
		t.Error("array form does not round-trip")
	}
}

func TestEncodeMapArrayOddCount(t *testing.T) {
	doc := ObjectNode(Member{Key: "pos", Node: ArrayNode(
		StringNode("a"), StringNode("1"), StringNode("b"),
	)})
	out, err := EncodeMapArray(&doc, nil)
	require.NoError(t, err)
	want := "\"pos\"\t\n{\n\t\"a\"\t\"1\"\n\t\"b\"\tnull\n}"
	if string(out) != want {
		t.Errorf("output differs:\n%s", diff.LineDiff(want, string(out)))
	}
}

func TestMapRoundTrip(t *testing.T) {
	in := "\"cfg\"\t\n{\n\t\"a\"\t\"1\"\n\t\"b\"\t\n\t{\n\t\t\"x\"\t-2.5\n\t}\n}"
	doc, err := DecodeMap([]byte(in), nil)
	require.NoError(t, err)
	out, err := EncodeMap(doc, nil)
	require.NoError(t, err)
	if string(out) != in {
		t.Errorf("round trip differs:\n%s", diff.LineDiff(in, string(out)))
	}
}
