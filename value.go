package ckv

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Type is the set of value kinds a Node can hold.
type Type uint8

const (
	Invalid Type = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

func (t Type) String() string {
	switch t {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// Shape records which container form an array was decoded from in the brace
// dialect's array mode, so that encoding can reproduce it. A flattened {}
// block carries ShapeObject, a [] block ShapeArray.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeObject
	ShapeArray
)

// Member is one key/value pair of an object. Objects keep their members in
// document order and may contain duplicate keys.
type Member struct {
	Key string
	Node
}

// Node is one value of a decoded document.
//
// The zero Node is invalid. value holds nil, bool, float64, string, []Node
// or []Member depending on kind.
type Node struct {
	kind  Type
	value interface{}
	shape Shape
}

func NullNode() Node { return Node{kind: Null} }

func BoolNode(b bool) Node { return Node{kind: Bool, value: b} }

func NumberNode(f float64) Node { return Node{kind: Number, value: f} }

func StringNode(s string) Node { return Node{kind: String, value: s} }

func ArrayNode(elems ...Node) Node {
	if elems == nil {
		elems = []Node{}
	}
	return Node{kind: Array, value: elems}
}

func ObjectNode(members ...Member) Node {
	if members == nil {
		members = []Member{}
	}
	return Node{kind: Object, value: members}
}

// Type returns the kind of the node. Safe on a nil receiver.
func (n *Node) Type() Type {
	if n == nil {
		return Invalid
	}
	return n.kind
}

func (n *Node) Shape() Shape { return n.shape }

func (n *Node) SetShape(s Shape) { n.shape = s }

// Len returns the number of members or elements of a container node and 0
// for anything else.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch v := n.value.(type) {
	case []Member:
		return len(v)
	case []Node:
		return len(v)
	default:
		return 0
	}
}

// Members returns the ordered members of an object node, nil otherwise.
func (n *Node) Members() []Member {
	if n == nil || n.kind != Object {
		return nil
	}
	return n.value.([]Member)
}

// Elems returns the elements of an array node, nil otherwise.
func (n *Node) Elems() []Node {
	if n == nil || n.kind != Array {
		return nil
	}
	return n.value.([]Node)
}

// Get returns the first member with the given key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.kind != Object {
		return nil, false
	}
	members := n.value.([]Member)
	for i := range members {
		if members[i].Key == key {
			return &members[i].Node, true
		}
	}
	return nil, false
}

// Index returns the i-th element of an array node.
func (n *Node) Index(i int) (*Node, bool) {
	if n == nil || n.kind != Array {
		return nil, false
	}
	elems := n.value.([]Node)
	if i < 0 || i >= len(elems) {
		return nil, false
	}
	return &elems[i], true
}

// Value converts the tree to native Go values. Objects become
// map[string]interface{}; member order is lost and duplicate keys collapse
// to the last one.
func (n *Node) Value() (interface{}, error) {
	if n == nil {
		return nil, errors.New("nil node")
	}
	switch n.kind {
	case Null:
		return nil, nil
	case Bool:
		return n.value.(bool), nil
	case Number:
		return n.value.(float64), nil
	case String:
		return n.value.(string), nil
	case Array:
		elems := n.value.([]Node)
		out := make([]interface{}, len(elems))
		for i := range elems {
			v, err := elems[i].Value()
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			out[i] = v
		}
		return out, nil
	case Object:
		members := n.value.([]Member)
		out := make(map[string]interface{}, len(members))
		for i := range members {
			v, err := members[i].Node.Value()
			if err != nil {
				return nil, errors.Wrapf(err, "member %q", members[i].Key)
			}
			out[members[i].Key] = v
		}
		return out, nil
	default:
		return nil, errors.New("invalid node")
	}
}

// EqNode compares two trees structurally. Object members compare in order,
// NaN numbers compare equal to each other, shape tags are ignored.
func EqNode(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.value.(bool) == b.value.(bool)
	case String:
		return a.value.(string) == b.value.(string)
	case Number:
		x, y := a.value.(float64), b.value.(float64)
		if math.IsNaN(x) && math.IsNaN(y) {
			return true
		}
		return x == y
	case Array:
		xs, ys := a.value.([]Node), b.value.([]Node)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !EqNode(&xs[i], &ys[i]) {
				return false
			}
		}
		return true
	case Object:
		xs, ys := a.value.([]Member), b.value.([]Member)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if xs[i].Key != ys[i].Key || !EqNode(&xs[i].Node, &ys[i].Node) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// arrayLength reports the positional length an object's members would cover
// if promoted to an array. ok is false when the keys are not all positive
// integers or the table is sparse with conversion enabled; a sparse table
// without conversion is an error.
func arrayLength(members []Member, cfg *Config) (length int, ok bool, err error) {
	max, items := 0, 0
	for i := range members {
		k, aerr := strconv.Atoi(members[i].Key)
		if aerr != nil || k < 1 {
			return 0, false, nil
		}
		if k > max {
			max = k
		}
		items++
	}
	if cfg.sparseRatio > 0 && max > items*cfg.sparseRatio && max > cfg.sparseSafe {
		if !cfg.sparseConvert {
			return 0, false, &SparseArrayError{MaxIndex: max, Items: items}
		}
		return 0, false, nil
	}
	return max, true, nil
}

// promoteArray lays an integer-keyed object out positionally. Holes become
// null elements.
func promoteArray(members []Member, cfg *Config) ([]Node, bool, error) {
	length, ok, err := arrayLength(members, cfg)
	if err != nil || !ok {
		return nil, ok, err
	}
	elems := make([]Node, length)
	for i := range elems {
		elems[i] = Node{kind: Null}
	}
	for i := range members {
		k, _ := strconv.Atoi(members[i].Key)
		elems[k-1] = members[i].Node
	}
	return elems, true, nil
}

// indexMembers renders array elements as an object with 1-based string keys.
func indexMembers(elems []Node) []Member {
	members := make([]Member, len(elems))
	for i := range elems {
		members[i] = Member{Key: strconv.Itoa(i + 1), Node: elems[i]}
	}
	return members
}

// flattenMembers lays an object out as alternating key and value entries.
func flattenMembers(members []Member) []Node {
	elems := make([]Node, 0, 2*len(members))
	for i := range members {
		elems = append(elems, StringNode(members[i].Key), members[i].Node)
	}
	return elems
}
