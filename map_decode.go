package ckv

// DecodeMap parses a Map-dialect document: exactly one "key value" pair
// where nested braces hold string/value pairs.
func DecodeMap(data []byte, cfg *Config) (*Node, error) {
	cfg = cfg.orDefault()
	s, err := newScanner(data, &mapClasses, cfg)
	if err != nil {
		return nil, err
	}
	return s.decodeMapDoc(false)
}

// DecodeMapArray parses a Map-dialect document with brace contents taken
// positionally instead of as key/value pairs.
func DecodeMapArray(data []byte, cfg *Config) (*Node, error) {
	cfg = cfg.orDefault()
	s, err := newScanner(data, &mapClasses, cfg)
	if err != nil {
		return nil, err
	}
	return s.decodeMapDoc(true)
}

func (s *scanner) decodeMapDoc(positional bool) (*Node, error) {
	doc := ObjectNode()
	tok := s.nextMap()
	if tok.typ == endToken {
		return &doc, nil
	}
	if tok.typ != stringToken {
		return nil, s.errExpected("object key string", tok)
	}
	key := tok.str
	tok = s.nextMap()
	val, err := s.parseMapValue(tok, positional)
	if err != nil {
		return nil, err
	}
	if tok = s.nextMap(); tok.typ != endToken {
		return nil, s.errExpected("the end", tok)
	}
	doc.value = []Member{{Key: key, Node: val}}
	return &doc, nil
}

func (s *scanner) parseMapValue(tok token, positional bool) (Node, error) {
	switch tok.typ {
	case stringToken:
		return StringNode(tok.str), nil
	case numberToken:
		return NumberNode(tok.num), nil
	case objBeginToken:
		if positional {
			return s.parseMapPairs()
		}
		return s.parseMapObject()
	default:
		return Node{}, s.errExpected("value", tok)
	}
}

// parseMapObject reads the members of a brace block after its opening
// brace. Containers are tracked on an explicit frame stack; the stack
// height is the nesting depth.
func (s *scanner) parseMapObject() (Node, error) {
	type frame struct {
		members []Member
		key     string
		haveKey bool
	}
	if err := s.descend(); err != nil {
		return Node{}, err
	}
	stack := []frame{{members: []Member{}}}
	for {
		tok := s.nextMap()
		top := &stack[len(stack)-1]
		if !top.haveKey {
			switch tok.typ {
			case objEndToken:
				node := Node{kind: Object, value: top.members}
				stack = stack[:len(stack)-1]
				s.ascend()
				if len(stack) == 0 {
					return node, nil
				}
				parent := &stack[len(stack)-1]
				parent.members = append(parent.members, Member{Key: parent.key, Node: node})
				parent.haveKey = false
			case stringToken:
				top.key, top.haveKey = tok.str, true
			default:
				return Node{}, s.errExpected("object key string", tok)
			}
			continue
		}
		switch tok.typ {
		case stringToken:
			top.members = append(top.members, Member{Key: top.key, Node: StringNode(tok.str)})
			top.haveKey = false
		case numberToken:
			top.members = append(top.members, Member{Key: top.key, Node: NumberNode(tok.num)})
			top.haveKey = false
		case objBeginToken:
			if err := s.descend(); err != nil {
				return Node{}, err
			}
			stack = append(stack, frame{members: []Member{}})
		default:
			return Node{}, s.errExpected("value", tok)
		}
	}
}

// parseMapPairs reads a brace block positionally: every value becomes an
// array element in document order.
func (s *scanner) parseMapPairs() (Node, error) {
	if err := s.descend(); err != nil {
		return Node{}, err
	}
	stack := [][]Node{make([]Node, 0)}
	for {
		tok := s.nextMap()
		switch tok.typ {
		case objEndToken:
			node := Node{kind: Array, value: stack[len(stack)-1]}
			stack = stack[:len(stack)-1]
			s.ascend()
			if len(stack) == 0 {
				return node, nil
			}
			stack[len(stack)-1] = append(stack[len(stack)-1], node)
		case stringToken:
			stack[len(stack)-1] = append(stack[len(stack)-1], StringNode(tok.str))
		case numberToken:
			stack[len(stack)-1] = append(stack[len(stack)-1], NumberNode(tok.num))
		case objBeginToken:
			if err := s.descend(); err != nil {
				return Node{}, err
			}
			stack = append(stack, make([]Node, 0))
		default:
			return Node{}, s.errExpected("value", tok)
		}
	}
}
