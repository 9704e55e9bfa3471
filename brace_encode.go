package ckv

// EncodeBrace renders an object node as a Brace-dialect document:
// key=value lines at the root, nested {} and [] blocks below.
func EncodeBrace(n *Node, cfg *Config) ([]byte, error) {
	cfg = cfg.orDefault()
	e := newEncoder(cfg)
	return e.finish(e.encodeBraceDoc(n))
}

// EncodeBraceArray renders an array node as the bare value sequence of the
// dialect's array mode, rebuilding {} or [] blocks from each array's shape
// tag. An object root is flattened to its key/value sequence.
func EncodeBraceArray(n *Node, cfg *Config) ([]byte, error) {
	cfg = cfg.orDefault()
	e := newEncoder(cfg)
	return e.finish(e.encodeBraceArrayDoc(n))
}

func (e *encoder) encodeBraceDoc(n *Node) error {
	if n.Type() != Object {
		return &EncodeTypeError{Type: n.Type(), Reason: "table expected"}
	}
	members := n.value.([]Member)
	for i := range members {
		if i > 0 {
			e.buf = append(e.buf, '\n')
		}
		e.appendBare(members[i].Key)
		e.buf = append(e.buf, '=')
		if err := e.appendBraceData(&members[i].Node, 0, true); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) appendBraceData(n *Node, depth int, quote bool) error {
	switch n.kind {
	case String:
		if quote {
			e.appendQuoted(n.value.(string))
		} else {
			e.appendBare(n.value.(string))
		}
	case Number:
		return e.appendNumber(n.value.(float64))
	case Bool:
		if n.value.(bool) {
			e.buf = append(e.buf, "true"...)
		} else {
			e.buf = append(e.buf, "false"...)
		}
	case Null:
		e.buf = append(e.buf, "null"...)
	case Array:
		depth++
		if err := e.checkDepth(depth); err != nil {
			return err
		}
		elems := n.value.([]Node)
		if len(elems) > 0 {
			return e.appendBraceArray(elems, depth)
		}
		return e.appendBraceObject(nil, depth)
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
		if ok && len(elems) > 0 {
			return e.appendBraceArray(elems, depth)
		}
		return e.appendBraceObject(members, depth)
	default:
		return &EncodeTypeError{Type: n.kind, Reason: "type not supported"}
	}
	return nil
}

func (e *encoder) appendBraceObject(members []Member, depth int) error {
	d := depth + 1 // historical double increment, kept for layout fidelity
	e.buf = append(e.buf, '{')
	for i := range members {
		e.buf = append(e.buf, '\n')
		e.tabs(d - 2)
		e.appendBare(members[i].Key)
		e.buf = append(e.buf, '=')
		if err := e.appendBraceData(&members[i].Node, d, true); err != nil {
			return err
		}
	}
	e.buf = append(e.buf, '\n')
	e.tabs(d - 3)
	e.buf = append(e.buf, '}')
	return nil
}

func (e *encoder) appendBraceArray(elems []Node, depth int) error {
	e.buf = append(e.buf, '[')
	for i := range elems {
		e.buf = append(e.buf, '\n')
		e.tabs(depth)
		if err := e.appendBraceData(&elems[i], depth, true); err != nil {
			return err
		}
		e.buf = append(e.buf, ',')
	}
	e.buf = append(e.buf, '\n')
	e.tabs(depth - 1)
	e.buf = append(e.buf, ']')
	return nil
}

func (e *encoder) encodeBraceArrayDoc(n *Node) error {
	var elems []Node
	switch n.Type() {
	case Array:
		elems = n.value.([]Node)
	case Object:
		elems = flattenMembers(n.value.([]Member))
	default:
		return &EncodeTypeError{Type: n.Type(), Reason: "table expected"}
	}
	for i := 0; i < len(elems); i++ {
		if i > 0 {
			e.buf = append(e.buf, '\n')
		}
		if err := e.appendFlatData(&elems[i], 0, true); err != nil {
			return err
		}
		if elems[i].kind != Array && elems[i].kind != Object {
			// scalars pair up; the second half follows without a separator
			i++
			if i < len(elems) {
				if err := e.appendFlatData(&elems[i], 0, true); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (e *encoder) appendFlatData(n *Node, depth int, quote bool) error {
	switch n.kind {
	case String:
		if quote {
			e.appendQuoted(n.value.(string))
		} else {
			e.appendBare(n.value.(string))
		}
	case Number:
		return e.appendNumber(n.value.(float64))
	case Bool:
		if n.value.(bool) {
			e.buf = append(e.buf, "true"...)
		} else {
			e.buf = append(e.buf, "false"...)
		}
	case Null:
		e.buf = append(e.buf, "null"...)
	case Array, Object:
		depth++
		if err := e.checkDepth(depth); err != nil {
			return err
		}
		return e.appendFlatContainer(n, depth)
	default:
		return &EncodeTypeError{Type: n.kind, Reason: "type not supported"}
	}
	return nil
}

// appendFlatContainer writes a container in array-mode layout. Arrays
// tagged ShapeArray emit the [..] form with each element on its own quoted
// line; everything else emits the {..} pair form.
func (e *encoder) appendFlatContainer(n *Node, depth int) error {
	e.buf = append(e.buf, '\n')
	e.tabs(depth - 1)
	var elems []Node
	if n.kind == Object {
		elems = flattenMembers(n.value.([]Member))
	} else {
		elems = n.value.([]Node)
	}
	if n.kind == Array && n.shape == ShapeArray {
		e.buf = append(e.buf, '[', '\n')
		for i := range elems {
			e.tabs(depth)
			if elems[i].kind == Array || elems[i].kind == Object {
				if err := e.appendFlatData(&elems[i], depth, false); err != nil {
					return err
				}
			} else {
				e.buf = append(e.buf, '"')
				if err := e.appendFlatData(&elems[i], depth, false); err != nil {
					return err
				}
				e.buf = append(e.buf, '"')
			}
			e.buf = append(e.buf, ',', '\n')
		}
		e.tabs(depth - 1)
		e.buf = append(e.buf, ']')
		return nil
	}
	e.buf = append(e.buf, '{', '\n')
	for i := 0; i < len(elems); i += 2 {
		e.tabs(depth)
		if err := e.appendFlatData(&elems[i], depth, false); err != nil {
			return err
		}
		e.buf = append(e.buf, '=')
		if i+1 < len(elems) {
			if err := e.appendFlatData(&elems[i+1], depth, true); err != nil {
				return err
			}
		} else {
			e.buf = append(e.buf, "null"...)
		}
		e.buf = append(e.buf, '\n')
	}
	e.tabs(depth - 1)
	e.buf = append(e.buf, '}')
	return nil
}
