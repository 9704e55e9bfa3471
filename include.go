package ckv

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DecodeFile parses a Map-dialect file together with its #"path"
// references. Each referenced file is resolved relative to the directory of
// the file naming it and decoded recursively. The result is an object with
// a single member keyed by the file's base name; its value is an object
// holding the spliced included documents first and the file's own pair
// last. Brace contents parse positionally, matching the original
// file loader.
func DecodeFile(path string, cfg *Config) (*Node, error) {
	cfg = cfg.orDefault()
	return decodeFileEntry(path, cfg, 0)
}

func decodeFileEntry(path string, cfg *Config, depth int) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	s, err := newScanner(data, &mapClasses, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	if !cfg.includeFreshDepth {
		s.depth = depth
	}

	members := []Member{}
	if err := s.resolveRefs(filepath.Dir(path), &members); err != nil {
		return nil, err
	}

	tok := s.nextMap()
	if tok.typ != endToken {
		if tok.typ != stringToken {
			return nil, s.errExpected("object key string", tok)
		}
		key := tok.str
		tok = s.nextMap()
		val, err := s.parseMapValue(tok, true)
		if err != nil {
			return nil, err
		}
		if tok = s.nextMap(); tok.typ != endToken {
			return nil, s.errExpected("the end", tok)
		}
		members = append(members, Member{Key: key, Node: val})
	}
	content := Node{kind: Object, value: members}
	doc := ObjectNode(Member{Key: filepath.Base(path), Node: content})
	return &doc, nil
}

// resolveRefs consumes the leading #"path" directives of a file, splicing
// each referenced document into members. It stops at the first byte that
// does not belong to whitespace, a comment or a reference.
func (s *scanner) resolveRefs(dir string, members *[]Member) error {
	for {
		if s.pos >= len(s.data) {
			return nil
		}
		switch s.classes[s.data[s.pos]] {
		case whitespaceToken:
			s.pos++
		case commentToken:
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		case refToken:
			s.pos++
			for s.pos < len(s.data) && s.data[s.pos] != '"' {
				s.pos++
			}
			if s.pos >= len(s.data) {
				return &TokenError{Offset: s.pos, Reason: "unexpected end of string"}
			}
			s.pos++
			start := s.pos
			for s.pos < len(s.data) && s.data[s.pos] != '"' {
				s.pos++
			}
			if s.pos >= len(s.data) {
				return &TokenError{Offset: s.pos, Reason: "unexpected end of string"}
			}
			ref := string(s.data[start:s.pos])
			s.pos++
			childDepth := 0
			if !s.cfg.includeFreshDepth {
				childDepth = s.depth + 1
			}
			child, err := decodeFileEntry(filepath.Join(dir, ref), s.cfg, childDepth)
			if err != nil {
				return err
			}
			*members = append(*members, child.value.([]Member)...)
		default:
			return nil
		}
	}
}
