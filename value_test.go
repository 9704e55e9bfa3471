package ckv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeAccessors(t *testing.T) {
	doc := ObjectNode(
		Member{Key: "name", Node: StringNode("arthur")},
		Member{Key: "scores", Node: ArrayNode(NumberNode(1), NumberNode(2))},
	)
	if doc.Type() != Object || doc.Len() != 2 {
		t.Fatalf("have %v with %d members", doc.Type(), doc.Len())
	}
	name, ok := doc.Get("name")
	require.True(t, ok)
	require.Equal(t, String, name.Type())

	scores, ok := doc.Get("scores")
	require.True(t, ok)
	second, ok := scores.Index(1)
	require.True(t, ok)
	require.Equal(t, Number, second.Type())

	if _, ok := doc.Get("missing"); ok {
		t.Error("Get found a missing key")
	}
	if _, ok := scores.Index(2); ok {
		t.Error("Index found an out-of-range element")
	}
}

func TestNodeValue(t *testing.T) {
	doc := ObjectNode(
		Member{Key: "a", Node: StringNode("x")},
		Member{Key: "b", Node: ArrayNode(NullNode(), BoolNode(true), NumberNode(5))},
	)
	v, err := doc.Value()
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"a": "x",
		"b": []interface{}{nil, true, float64(5)},
	}, v)
}

func TestEqNode(t *testing.T) {
	a := ObjectNode(Member{Key: "k", Node: ArrayNode(StringNode("v"), NumberNode(math.NaN()))})
	b := ObjectNode(Member{Key: "k", Node: ArrayNode(StringNode("v"), NumberNode(math.NaN()))})
	if !EqNode(&a, &b) {
		t.Error("equal trees with NaN compared unequal")
	}
	c := ObjectNode(Member{Key: "k", Node: ArrayNode(StringNode("v"), NumberNode(1))})
	if EqNode(&a, &c) {
		t.Error("different trees compared equal")
	}
	d := ObjectNode(Member{Key: "other", Node: ArrayNode(StringNode("v"), NumberNode(math.NaN()))})
	if EqNode(&a, &d) {
		t.Error("different keys compared equal")
	}
}

func TestArrayLength(t *testing.T) {
	cfg := NewConfig()
	dense := []Member{
		{Key: "1", Node: StringNode("a")},
		{Key: "2", Node: StringNode("b")},
		{Key: "3", Node: StringNode("c")},
		{Key: "4", Node: StringNode("d")},
	}
	n, ok, err := arrayLength(dense, cfg)
	require.NoError(t, err)
	if !ok || n != 4 {
		t.Fatalf("dense table: have (%d,%v)", n, ok)
	}

	sparse := append(dense[:3:3], Member{Key: "100", Node: StringNode("d")})
	if _, _, err := arrayLength(sparse, cfg); err == nil {
		t.Fatal("sparse table without conversion: no error")
	}

	require.NoError(t, cfg.SetSparse(true, DefaultSparseRatio, DefaultSparseSafe))
	_, ok, err = arrayLength(sparse, cfg)
	require.NoError(t, err)
	if ok {
		t.Fatal("sparse table with conversion: not demoted to object form")
	}

	words := []Member{{Key: "one", Node: StringNode("a")}}
	_, ok, err = arrayLength(words, cfg)
	require.NoError(t, err)
	if ok {
		t.Fatal("string keys promoted to array")
	}
}

func TestPromoteArrayHoles(t *testing.T) {
	members := []Member{
		{Key: "1", Node: StringNode("a")},
		{Key: "3", Node: StringNode("c")},
	}
	elems, ok, err := promoteArray(members, NewConfig())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, elems, 3)
	if elems[1].Type() != Null {
		t.Errorf("hole is %v, want null", elems[1].Type())
	}
}
