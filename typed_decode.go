package ckv

// DecodeTyped parses a Typed-array document: "key" "type" [payload]
// triples, where a key followed directly by a container takes it as the
// value. Scalars are always quoted strings.
func DecodeTyped(data []byte, cfg *Config) (*Node, error) {
	cfg = cfg.orDefault()
	s, err := newScanner(data, &braceClasses, cfg)
	if err != nil {
		return nil, err
	}
	return s.decodeTypedDoc()
}

// Per-frame parser states.
const (
	tsDocFirst uint8 = iota // document start, first key required
	tsKey                   // expect key or closer
	tsType                  // expect type name or a direct container
	tsPayload               // expect the payload of a triple
	tsElem                  // array: expect element, closer ends a trailing comma
	tsDelim                 // array: comma, closer, or the second half of a pair
	tsAfter                 // array: after a pair, a bare token starts an element
)

type typedFrame struct {
	isDoc    bool
	isObj    bool
	members  []Member
	elems    []Node
	key      string
	typeName string
	hasType  bool
	pairKey  string
	hasPair  bool
	state    uint8
}

func (s *scanner) decodeTypedDoc() (*Node, error) {
	stack := []typedFrame{{isDoc: true, isObj: true, members: []Member{}, state: tsDocFirst}}

	// attach hands a finished value to the top frame: a triple wraps it
	// with its type name, a pair with its key.
	attach := func(n Node) {
		top := &stack[len(stack)-1]
		if top.isObj {
			if top.hasType {
				n = ArrayNode(StringNode(top.typeName), n)
				top.hasType = false
			}
			top.members = append(top.members, Member{Key: top.key, Node: n})
			top.state = tsKey
			return
		}
		if top.hasPair {
			top.elems = append(top.elems, ArrayNode(StringNode(top.pairKey), n))
			top.hasPair = false
			top.state = tsAfter
			return
		}
		top.elems = append(top.elems, n)
		top.state = tsDelim
	}

	pop := func() (Node, bool) {
		top := stack[len(stack)-1]
		s.ascend()
		var n Node
		if top.isObj {
			n = Node{kind: Object, value: top.members}
		} else {
			n = Node{kind: Array, value: top.elems}
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return n, true
		}
		attach(n)
		return Node{}, false
	}

	push := func(isObj bool) error {
		if err := s.descend(); err != nil {
			return err
		}
		f := typedFrame{isObj: isObj, state: tsKey}
		if isObj {
			f.members = []Member{}
		} else {
			f.elems = []Node{}
			f.state = tsElem
		}
		stack = append(stack, f)
		return nil
	}

	var tok token
	pending := false
	for {
		top := &stack[len(stack)-1]
		if !pending {
			tok = s.nextTyped()
		}
		pending = false

		switch top.state {
		case tsDocFirst:
			if tok.typ != stringToken {
				return nil, s.errExpected("Must begin with string", tok)
			}
			top.key = tok.str
			top.state = tsType

		case tsKey:
			if top.isDoc && tok.typ == endToken {
				doc := Node{kind: Object, value: top.members}
				return &doc, nil
			}
			if !top.isDoc && tok.typ == objEndToken {
				pop()
				continue
			}
			if tok.typ != stringToken {
				return nil, s.errExpected("object key string", tok)
			}
			top.key = tok.str
			top.state = tsType

		case tsType:
			switch tok.typ {
			case stringToken:
				top.typeName = tok.str
				top.hasType = true
				top.state = tsPayload
			case objBeginToken:
				if err := push(true); err != nil {
					return nil, err
				}
			case arrBeginToken:
				if err := push(false); err != nil {
					return nil, err
				}
			default:
				return nil, s.errExpected("unexpected token", tok)
			}

		case tsPayload:
			switch tok.typ {
			case stringToken:
				attach(StringNode(tok.str))
			case objBeginToken:
				if err := push(true); err != nil {
					return nil, err
				}
			case arrBeginToken:
				if err := push(false); err != nil {
					return nil, err
				}
			default:
				return nil, s.errExpected("value", tok)
			}

		case tsElem:
			switch tok.typ {
			case arrEndToken:
				pop()
			case stringToken:
				attach(StringNode(tok.str))
			case objBeginToken:
				if err := push(true); err != nil {
					return nil, err
				}
			case arrBeginToken:
				if err := push(false); err != nil {
					return nil, err
				}
			default:
				return nil, s.errExpected("value", tok)
			}

		case tsDelim:
			switch tok.typ {
			case commaToken:
				top.state = tsElem
			case arrEndToken:
				pop()
			default:
				// the previous element was the name of a pair, with the
				// separator optional
				last := len(top.elems) - 1
				if top.elems[last].kind != String {
					return nil, s.errExpected("comma or array end", tok)
				}
				top.pairKey = top.elems[last].value.(string)
				top.hasPair = true
				top.elems = top.elems[:last]
				if tok.typ == sepToken {
					tok = s.nextTyped()
				}
				switch tok.typ {
				case stringToken:
					attach(StringNode(tok.str))
				case objBeginToken:
					if err := push(true); err != nil {
						return nil, err
					}
				case arrBeginToken:
					if err := push(false); err != nil {
						return nil, err
					}
				default:
					return nil, s.errExpected("value", tok)
				}
			}

		case tsAfter:
			switch tok.typ {
			case commaToken:
				top.state = tsElem
			case arrEndToken:
				pop()
			default:
				top.state = tsElem
				pending = true
			}
		}
	}
}
