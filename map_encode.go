package ckv

// EncodeMap renders the first member of an object node as a Map-dialect
// document. The document form holds a single pair; further members are
// ignored like the original encoder ignored them.
func EncodeMap(n *Node, cfg *Config) ([]byte, error) {
	cfg = cfg.orDefault()
	e := newEncoder(cfg)
	return e.finish(e.encodeMapDoc(n, false))
}

// EncodeMapArray renders the document in the positional form: brace blocks
// hold their entries two per line.
func EncodeMapArray(n *Node, cfg *Config) ([]byte, error) {
	cfg = cfg.orDefault()
	e := newEncoder(cfg)
	return e.finish(e.encodeMapDoc(n, true))
}

func (e *encoder) encodeMapDoc(n *Node, positional bool) error {
	if n.Type() != Object {
		return &EncodeTypeError{Type: n.Type(), Reason: "table expected"}
	}
	members := n.value.([]Member)
	if len(members) == 0 {
		return &EncodeTypeError{Type: Object, Reason: "document holds one pair"}
	}
	e.appendQuoted(members[0].Key)
	e.buf = append(e.buf, '\t')
	if positional {
		return e.appendMapArrayData(&members[0].Node, 0)
	}
	return e.appendMapData(&members[0].Node, 0)
}

func (e *encoder) appendMapData(n *Node, depth int) error {
	switch n.kind {
	case String:
		e.appendQuoted(n.value.(string))
	case Null:
		e.buf = append(e.buf, "null"...)
	case Number:
		return e.appendNumber(n.value.(float64))
	case Object:
		depth++
		if err := e.checkDepth(depth); err != nil {
			return err
		}
		return e.appendMapObject(n.value.([]Member), depth)
	case Array:
		// positional values render as an object with 1-based keys
		depth++
		if err := e.checkDepth(depth); err != nil {
			return err
		}
		return e.appendMapObject(indexMembers(n.value.([]Node)), depth)
	default:
		return &EncodeTypeError{Type: n.kind, Reason: "type not supported"}
	}
	return nil
}

func (e *encoder) appendMapObject(members []Member, depth int) error {
	indent := e.cfg.mapIndent
	if indent {
		e.buf = append(e.buf, '\n')
		e.tabs(depth - 1)
	}
	e.buf = append(e.buf, '{')
	if indent {
		e.buf = append(e.buf, '\n')
	}
	for i := range members {
		if indent {
			e.tabs(depth)
		}
		e.appendQuoted(members[i].Key)
		e.buf = append(e.buf, '\t')
		if err := e.appendMapData(&members[i].Node, depth); err != nil {
			return err
		}
		if indent {
			e.buf = append(e.buf, '\n')
		}
	}
	if indent {
		e.tabs(depth - 1)
	}
	e.buf = append(e.buf, '}')
	return nil
}

func (e *encoder) appendMapArrayData(n *Node, depth int) error {
	switch n.kind {
	case String:
		e.appendQuoted(n.value.(string))
	case Null:
		e.buf = append(e.buf, "null"...)
	case Number:
		return e.appendNumber(n.value.(float64))
	case Array:
		depth++
		if err := e.checkDepth(depth); err != nil {
			return err
		}
		return e.appendMapPairs(n.value.([]Node), depth)
	case Object:
		depth++
		if err := e.checkDepth(depth); err != nil {
			return err
		}
		members := n.value.([]Member)
		elems, ok, err := promoteArray(members, e.cfg)
		if err != nil {
			return err
		}
		if !ok {
			elems = flattenMembers(members)
		}
		return e.appendMapPairs(elems, depth)
	default:
		return &EncodeTypeError{Type: n.kind, Reason: "type not supported"}
	}
	return nil
}

// appendMapPairs lays elements out two per line separated by a tab. An odd
// count gets a null placeholder.
func (e *encoder) appendMapPairs(elems []Node, depth int) error {
	indent := e.cfg.mapIndent
	if indent {
		e.buf = append(e.buf, '\n')
		e.tabs(depth - 1)
	}
	e.buf = append(e.buf, '{')
	if indent {
		e.buf = append(e.buf, '\n')
	}
	for i := 0; i < len(elems); i += 2 {
		if indent {
			e.tabs(depth)
		}
		if err := e.appendMapArrayData(&elems[i], depth); err != nil {
			return err
		}
		e.buf = append(e.buf, '\t')
		if i+1 < len(elems) {
			if err := e.appendMapArrayData(&elems[i+1], depth); err != nil {
				return err
			}
		} else {
			e.buf = append(e.buf, "null"...)
		}
		if indent {
			e.buf = append(e.buf, '\n')
		}
	}
	if indent {
		e.tabs(depth - 1)
	}
	e.buf = append(e.buf, '}')
	return nil
}
