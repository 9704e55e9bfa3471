package ckv

// encoder assembles output in buf. With the keep-buffer option on, buf is
// the Config's persistent buffer and the Config mutex is held until finish.
type encoder struct {
	buf  []byte
	cfg  *Config
	kept bool
}

func newEncoder(cfg *Config) *encoder {
	e := &encoder{cfg: cfg}
	cfg.mu.Lock()
	if cfg.keepBuffer {
		e.buf = cfg.buf[:0]
		e.kept = true
	} else {
		cfg.mu.Unlock()
	}
	return e
}

func (e *encoder) finish(err error) ([]byte, error) {
	if e.kept {
		e.cfg.buf = e.buf
		e.cfg.mu.Unlock()
	}
	if err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (e *encoder) checkDepth(depth int) error {
	if depth > e.cfg.encodeMaxDepth {
		return &DepthError{Depth: depth, Encode: true}
	}
	return nil
}

func (e *encoder) tabs(n int) {
	for i := 0; i < n; i++ {
		e.buf = append(e.buf, '\t')
	}
}

// appendQuoted writes s as a quoted, escaped string.
func (e *encoder) appendQuoted(s string) {
	e.buf = append(e.buf, '"')
	e.buf = appendEscaped(e.buf, s)
	e.buf = append(e.buf, '"')
}

// appendBare writes s escaped but unquoted, for keys.
func (e *encoder) appendBare(s string) {
	e.buf = appendEscaped(e.buf, s)
}

func (e *encoder) appendNumber(f float64) error {
	buf, err := appendNumber(e.buf, f, e.cfg)
	e.buf = buf
	return err
}
