package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes JSON text into a node tree. Mapping key order and the literal
// text of numbers are kept. Strings are double-quoted scalars, so they never
// go through YAML plain-scalar resolution.
func Parse(b []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	p := &parser{dec: dec, src: b, line: 1}

	tok, err := p.next()
	if errors.Is(err, io.EOF) {
		return nil, ErrNotObject
	}
	if err != nil {
		return nil, err
	}
	n, err := p.value(tok)
	if err != nil {
		return nil, err
	}
	if _, err = p.next(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level value at line %d", p.line)
		}
		return nil, err
	}
	if n.Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Line: 1, Column: 1, Content: []*yaml.Node{n}}, nil
}

type parser struct {
	dec *json.Decoder
	src []byte

	// position of the last token returned by next
	offset    int64
	line      int
	lineStart int64
	tokLine   int
	tokColumn int
}

// next reads a token and records where it starts. Between two tokens JSON
// only holds whitespace and the ',' and ':' separators.
func (p *parser) next() (json.Token, error) {
	tok, err := p.dec.Token()
	if err != nil {
		return nil, err
	}

	end := p.dec.InputOffset()
	start := p.offset
	for start < end && strings.IndexByte(" \t\r\n,:", p.src[start]) >= 0 {
		p.advance(start)
		start++
	}
	p.tokLine, p.tokColumn = p.line, int(start-p.lineStart)+1
	p.offset = end
	return tok, nil
}

func (p *parser) advance(i int64) {
	if p.src[i] == '\n' {
		p.line++
		p.lineStart = i + 1
	}
}

func (p *parser) value(tok json.Token) (*yaml.Node, error) {
	n := &yaml.Node{Line: p.tokLine, Column: p.tokColumn}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			n.Kind, n.Tag = yaml.MappingNode, "!!map"
			return n, p.object(n)
		case '[':
			n.Kind, n.Tag = yaml.SequenceNode, "!!seq"
			return n, p.array(n)
		}
		return nil, fmt.Errorf("unexpected %q at line %d", v, p.tokLine)

	case string:
		n.Kind, n.Tag, n.Style, n.Value = yaml.ScalarNode, "!!str", yaml.DoubleQuotedStyle, v

	case json.Number:
		n.Kind, n.Tag, n.Value = yaml.ScalarNode, "!!int", v.String()
		if strings.ContainsAny(n.Value, ".eE") {
			n.Tag = "!!float"
		}

	case bool:
		n.Kind, n.Tag, n.Value = yaml.ScalarNode, "!!bool", "false"
		if v {
			n.Value = "true"
		}

	case nil:
		n.Kind, n.Tag, n.Value = yaml.ScalarNode, "!!null", "null"

	default:
		return nil, fmt.Errorf("unexpected token %v at line %d", tok, p.tokLine)
	}
	return n, nil
}

func (p *parser) object(n *yaml.Node) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return nil
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key at line %d", p.tokLine)
		}
		k := &yaml.Node{
			Kind:   yaml.ScalarNode,
			Tag:    "!!str",
			Style:  yaml.DoubleQuotedStyle,
			Value:  key,
			Line:   p.tokLine,
			Column: p.tokColumn,
		}

		if tok, err = p.next(); err != nil {
			return err
		}
		v, err := p.value(tok)
		if err != nil {
			return err
		}
		n.Content = append(n.Content, k, v)
	}
}

func (p *parser) array(n *yaml.Node) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return nil
		}

		v, err := p.value(tok)
		if err != nil {
			return err
		}
		n.Content = append(n.Content, v)
	}
}
