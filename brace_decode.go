package ckv

// loadMode selects how the brace dialect builds containers: map mode keeps
// {} blocks as objects, array mode flattens everything into tagged arrays.
type loadMode uint8

const (
	loadMap loadMode = iota
	loadArray
)

// DecodeBrace parses a Brace-dialect document in map mode. The root is
// either a sequence of key=value pairs or a single {...} block.
func DecodeBrace(data []byte, cfg *Config) (*Node, error) {
	cfg = cfg.orDefault()
	s, err := newScanner(data, &braceClasses, cfg)
	if err != nil {
		return nil, err
	}
	return s.decodeBraceRoot()
}

// DecodeBraceArray parses a Brace-dialect document in array mode: the root
// is a value sequence, {} blocks flatten to arrays tagged ShapeObject and
// [] blocks to arrays tagged ShapeArray.
func DecodeBraceArray(data []byte, cfg *Config) (*Node, error) {
	cfg = cfg.orDefault()
	s, err := newScanner(data, &braceClasses, cfg)
	if err != nil {
		return nil, err
	}
	return s.decodeBraceArrayRoot()
}

func (s *scanner) decodeBraceRoot() (*Node, error) {
	tok := s.nextBrace(true)
	switch tok.typ {
	case endToken:
		doc := ObjectNode()
		return &doc, nil
	case objBeginToken:
		n, err := s.parseBraceContainer(loadMap, braceObject)
		if err != nil {
			return nil, err
		}
		if tok = s.nextBrace(false); tok.typ != endToken {
			return nil, s.errExpected("the end", tok)
		}
		return &n, nil
	case stringToken:
		members := []Member{}
		for {
			key := tok.str
			tok = s.nextBrace(false)
			if tok.typ == sepToken {
				tok = s.nextBrace(false)
			}
			val, err := s.parseBraceValue(loadMap, tok)
			if err != nil {
				return nil, err
			}
			members = append(members, Member{Key: key, Node: val})
			tok = s.nextBrace(true)
			if tok.typ == endToken {
				break
			}
			if tok.typ != stringToken {
				return nil, s.errExpected("object key string", tok)
			}
		}
		doc := Node{kind: Object, value: members}
		return &doc, nil
	default:
		return nil, s.errExpected("object key string", tok)
	}
}

func (s *scanner) decodeBraceArrayRoot() (*Node, error) {
	tok := s.nextBrace(true)
	switch tok.typ {
	case endToken:
		doc := ArrayNode()
		return &doc, nil
	case objBeginToken:
		n, err := s.parseBraceContainer(loadArray, braceFlatObject)
		if err != nil {
			return nil, err
		}
		if tok = s.nextBrace(false); tok.typ != endToken {
			return nil, s.errExpected("the end", tok)
		}
		doc := ArrayNode(n)
		return &doc, nil
	default:
		elems := []Node{}
		for {
			v, err := s.parseBraceValue(loadArray, tok)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
			tok = s.nextBrace(false)
			if tok.typ == endToken {
				break
			}
			if tok.typ == sepToken {
				tok = s.nextBrace(false)
			}
			v, err = s.parseBraceValue(loadArray, tok)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
			tok = s.nextBrace(true)
			if tok.typ == endToken {
				break
			}
		}
		doc := Node{kind: Array, value: elems}
		return &doc, nil
	}
}

// parseBraceValue resolves one value token, entering the container parser
// for braces and brackets.
func (s *scanner) parseBraceValue(mode loadMode, tok token) (Node, error) {
	switch tok.typ {
	case stringToken:
		return StringNode(tok.str), nil
	case numberToken:
		return NumberNode(tok.num), nil
	case objBeginToken:
		if mode == loadArray {
			return s.parseBraceContainer(mode, braceFlatObject)
		}
		return s.parseBraceContainer(mode, braceObject)
	case arrBeginToken:
		if mode == loadArray {
			return s.parseBraceContainer(mode, braceFlatArray)
		}
		return s.parseBraceContainer(mode, braceArray)
	default:
		return Node{}, s.errExpected("value", tok)
	}
}

type braceKind uint8

const (
	braceObject     braceKind = iota // {} as ordered members
	braceArray                       // [] as elements
	braceFlatObject                  // {} flattened to [k,v,...] (ShapeObject)
	braceFlatArray                   // [] flattened to [v,...] (ShapeArray)
)

// Per-frame parser states.
const (
	bsFirst     uint8 = iota // container just opened
	bsObjKey                 // expect member key or closing brace
	bsObjSep                 // expect separator or the value itself
	bsObjValue               // expect member value
	bsArrElem                // expect element, closer allowed after comma
	bsArrDelim               // expect comma or closer
	bsFlat                   // flat container element loop
	bsFlatValue              // flat container value after separator
)

type braceFrame struct {
	kind    braceKind
	members []Member
	elems   []Node
	key     string
	compat  bool // entered through a foreign typed-document wrapper
	pairIdx int  // synthesized index for = pairs in flat arrays
	state   uint8
	readKey bool // key-position flag for the next flat read
}

func newBraceFrame(kind braceKind) braceFrame {
	f := braceFrame{kind: kind, pairIdx: 1, state: bsFirst}
	if kind == braceObject {
		f.members = []Member{}
	} else {
		f.elems = []Node{}
	}
	return f
}

func (f *braceFrame) emptyClose(t tokenType) bool {
	switch f.kind {
	case braceObject:
		return t == objEndToken
	case braceFlatObject:
		return t == arrEndToken || t == objEndToken
	default:
		return t == arrEndToken
	}
}

// parseBraceContainer runs all nested containers of one brace value on an
// explicit frame stack. The opening token is already consumed.
func (s *scanner) parseBraceContainer(mode loadMode, kind braceKind) (Node, error) {
	if err := s.descend(); err != nil {
		return Node{}, err
	}
	stack := []braceFrame{newBraceFrame(kind)}

	// pop closes the top frame, consuming a compat wrapper's closing brace,
	// and attaches the node to the parent frame.
	pop := func() (Node, bool, error) {
		top := stack[len(stack)-1]
		if top.compat {
			tok := s.nextBrace(true)
			if tok.typ != objEndToken {
				return Node{}, false, s.errExpected("object end", tok)
			}
		}
		s.ascend()
		var n Node
		switch top.kind {
		case braceObject:
			n = Node{kind: Object, value: top.members}
		case braceArray:
			n = Node{kind: Array, value: top.elems}
		case braceFlatObject:
			n = Node{kind: Array, value: top.elems, shape: ShapeObject}
		case braceFlatArray:
			n = Node{kind: Array, value: top.elems, shape: ShapeArray}
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return n, true, nil
		}
		parent := &stack[len(stack)-1]
		if parent.kind == braceObject {
			parent.members = append(parent.members, Member{Key: parent.key, Node: n})
		} else {
			parent.elems = append(parent.elems, n)
		}
		return Node{}, false, nil
	}

	var tok token
	pending := false
	for {
		top := &stack[len(stack)-1]
		if !pending {
			isKey := false
			switch top.state {
			case bsFirst:
				isKey = top.kind == braceObject || top.kind == braceFlatObject
			case bsObjKey:
				isKey = true
			case bsFlat:
				isKey = top.readKey
			}
			tok = s.nextBrace(isKey)
		}
		pending = false

		switch top.state {
		case bsFirst:
			if top.emptyClose(tok.typ) {
				n, done, err := pop()
				if err != nil {
					return Node{}, err
				}
				if done {
					return n, nil
				}
				continue
			}
			if tok.typ == objBeginToken {
				// a typed document nested verbatim wraps its content in one
				// extra named level; skip it
				name := s.nextBrace(true)
				if name.typ != stringToken {
					return Node{}, s.errExpected("object key string", name)
				}
				top.compat = true
				tok = s.nextBrace(true)
			}
			switch top.kind {
			case braceObject:
				top.state = bsObjKey
			case braceArray:
				top.state = bsArrElem
			default:
				top.state = bsFlat
				top.readKey = false
			}
			pending = true

		case bsObjKey:
			switch tok.typ {
			case objEndToken:
				n, done, err := pop()
				if err != nil {
					return Node{}, err
				}
				if done {
					return n, nil
				}
			case stringToken:
				top.key = tok.str
				top.state = bsObjSep
			default:
				return Node{}, s.errExpected("object key string", tok)
			}

		case bsObjSep:
			top.state = bsObjValue
			if tok.typ != sepToken {
				// separator omitted, the token is the value
				pending = true
			}

		case bsObjValue:
			switch tok.typ {
			case stringToken:
				top.members = append(top.members, Member{Key: top.key, Node: StringNode(tok.str)})
				top.state = bsObjKey
			case numberToken:
				top.members = append(top.members, Member{Key: top.key, Node: NumberNode(tok.num)})
				top.state = bsObjKey
			case objBeginToken:
				if err := s.descend(); err != nil {
					return Node{}, err
				}
				top.state = bsObjKey
				stack = append(stack, newBraceFrame(braceObject))
			case arrBeginToken:
				if err := s.descend(); err != nil {
					return Node{}, err
				}
				top.state = bsObjKey
				stack = append(stack, newBraceFrame(braceArray))
			default:
				return Node{}, s.errExpected("value", tok)
			}

		case bsArrElem:
			if tok.typ == arrEndToken {
				n, done, err := pop()
				if err != nil {
					return Node{}, err
				}
				if done {
					return n, nil
				}
				continue
			}
			switch tok.typ {
			case stringToken:
				top.elems = append(top.elems, StringNode(tok.str))
				top.state = bsArrDelim
			case numberToken:
				top.elems = append(top.elems, NumberNode(tok.num))
				top.state = bsArrDelim
			case objBeginToken:
				if err := s.descend(); err != nil {
					return Node{}, err
				}
				top.state = bsArrDelim
				stack = append(stack, newBraceFrame(braceObject))
			case arrBeginToken:
				if err := s.descend(); err != nil {
					return Node{}, err
				}
				top.state = bsArrDelim
				stack = append(stack, newBraceFrame(braceArray))
			default:
				return Node{}, s.errExpected("value", tok)
			}

		case bsArrDelim:
			switch tok.typ {
			case commaToken:
				top.state = bsArrElem
			case arrEndToken:
				n, done, err := pop()
				if err != nil {
					return Node{}, err
				}
				if done {
					return n, nil
				}
			default:
				return Node{}, s.errExpected("comma or array end", tok)
			}

		case bsFlat:
			switch tok.typ {
			case commaToken:
				top.readKey = true
			case sepToken:
				if top.kind == braceFlatArray {
					// pair separators in a bare array synthesize an index
					top.elems = append(top.elems, NumberNode(float64(top.pairIdx)))
					top.pairIdx++
				}
				top.state = bsFlatValue
			case arrEndToken:
				n, done, err := pop()
				if err != nil {
					return Node{}, err
				}
				if done {
					return n, nil
				}
			case objEndToken:
				if top.kind != braceFlatObject {
					return Node{}, s.errExpected("value", tok)
				}
				n, done, err := pop()
				if err != nil {
					return Node{}, err
				}
				if done {
					return n, nil
				}
			case stringToken:
				top.elems = append(top.elems, StringNode(tok.str))
				top.readKey = false
			case numberToken:
				top.elems = append(top.elems, NumberNode(tok.num))
				top.readKey = false
			case objBeginToken:
				if err := s.descend(); err != nil {
					return Node{}, err
				}
				top.readKey = false
				stack = append(stack, newBraceFrame(braceFlatObject))
			case arrBeginToken:
				if err := s.descend(); err != nil {
					return Node{}, err
				}
				top.readKey = false
				stack = append(stack, newBraceFrame(braceFlatArray))
			default:
				return Node{}, s.errExpected("value", tok)
			}

		case bsFlatValue:
			switch tok.typ {
			case stringToken:
				top.elems = append(top.elems, StringNode(tok.str))
				top.state = bsFlat
				top.readKey = true
			case numberToken:
				top.elems = append(top.elems, NumberNode(tok.num))
				top.state = bsFlat
				top.readKey = true
			case objBeginToken:
				if err := s.descend(); err != nil {
					return Node{}, err
				}
				top.state = bsFlat
				top.readKey = true
				stack = append(stack, newBraceFrame(braceFlatObject))
			case arrBeginToken:
				if err := s.descend(); err != nil {
					return Node{}, err
				}
				top.state = bsFlat
				top.readKey = true
				stack = append(stack, newBraceFrame(braceFlatArray))
			default:
				return Node{}, s.errExpected("value", tok)
			}
		}
	}
}
