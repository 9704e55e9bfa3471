package ckv

// EncodeTyped renders an object node as a Typed-array document: one
// "key" value line per member, with containers in the dialect's block
// layout. Only strings and containers are representable.
func EncodeTyped(n *Node, cfg *Config) ([]byte, error) {
	cfg = cfg.orDefault()
	e := newEncoder(cfg)
	return e.finish(e.encodeTypedDoc(n))
}

func (e *encoder) encodeTypedDoc(n *Node) error {
	if n.Type() != Object {
		return &EncodeTypeError{Type: n.Type(), Reason: "table expected"}
	}
	members := n.value.([]Member)
	for i := range members {
		if i > 0 {
			e.buf = append(e.buf, '\n')
		}
		e.appendQuoted(members[i].Key)
		e.buf = append(e.buf, ' ')
		if err := e.appendTypedData(&members[i].Node, 0); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) appendTypedData(n *Node, depth int) error {
	switch n.kind {
	case String:
		e.appendQuoted(n.value.(string))
		return nil
	case Array:
		depth++
		if err := e.checkDepth(depth); err != nil {
			return err
		}
		return e.appendTypedArray(n.value.([]Node), depth)
	case Object:
		depth++
		if err := e.checkDepth(depth); err != nil {
			return err
		}
		return e.appendTypedMembers(n.value.([]Member), depth)
	default:
		return &EncodeTypeError{Type: n.kind, Reason: "type not supported"}
	}
}

// appendTypedMembers writes an object, promoting integer-keyed tables to
// the positional form first.
func (e *encoder) appendTypedMembers(members []Member, depth int) error {
	elems, ok, err := promoteArray(members, e.cfg)
	if err != nil {
		return err
	}
	if ok && len(elems) > 0 {
		return e.appendTypedArray(elems, depth)
	}
	return e.appendTypedObject(members, depth)
}

func (e *encoder) appendTypedArray(elems []Node, depth int) error {
	e.buf = append(e.buf, '[')
	for i := range elems {
		e.buf = append(e.buf, '\n')
		if err := e.appendTypedData(&elems[i], depth); err != nil {
			return err
		}
		if i < len(elems)-1 {
			e.buf = append(e.buf, ',')
		}
	}
	e.buf = append(e.buf, '\n')
	e.tabs(depth - 1)
	e.buf = append(e.buf, ']')
	return nil
}

func (e *encoder) appendTypedObject(members []Member, depth int) error {
	d := depth + 1 // historical double increment, kept for layout fidelity
	e.buf = append(e.buf, '{')
	for i := range members {
		e.buf = append(e.buf, '\n')
		e.tabs(d - 2)
		e.appendQuoted(members[i].Key)
		e.buf = append(e.buf, ' ')
		switch members[i].Node.kind {
		case Array:
			if err := e.appendTypedArray(members[i].Node.value.([]Node), d); err != nil {
				return err
			}
		case Object:
			if err := e.appendTypedMembers(members[i].Node.value.([]Member), d); err != nil {
				return err
			}
		default:
			return &EncodeTypeError{Type: members[i].Node.kind, Reason: "container expected"}
		}
	}
	e.buf = append(e.buf, '\n')
	e.tabs(d - 3)
	e.buf = append(e.buf, '}')
	return nil
}
