package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const indent = "  "

// Encode renders a node tree as JSON indented with two spaces. Keys keep their
// order, numbers keep their literal text and non-ASCII characters are not
// escaped.
func Encode(n *yaml.Node) ([]byte, error) {
	e := &encoder{}
	if err := e.node(n, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf     bytes.Buffer
	scratch bytes.Buffer
	str     *json.Encoder
}

func (e *encoder) node(n *yaml.Node, depth int) error {
	if n == nil {
		e.buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			e.buf.WriteString("null")
			return nil
		}
		return e.node(n.Content[0], depth)

	case yaml.AliasNode:
		return e.node(n.Alias, depth)

	case yaml.MappingNode:
		if len(n.Content) == 0 {
			e.buf.WriteString("{}")
			return nil
		}
		e.buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			if err := e.string(n.Content[i].Value); err != nil {
				return err
			}
			e.buf.WriteString(": ")
			if err := e.node(n.Content[i+1], depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			e.buf.WriteString("[]")
			return nil
		}
		e.buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			if err := e.node(c, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return e.scalar(n)
	}
	return fmt.Errorf("unsupported node kind %d at line %d", n.Kind, n.Line)
}

func (e *encoder) scalar(n *yaml.Node) error {
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return e.string(n.Value)
	}

	switch n.ShortTag() {
	case "!!null":
		e.buf.WriteString("null")
		return nil
	case "!!bool":
		e.buf.WriteString(strings.ToLower(n.Value))
		return nil
	}
	// plain scalars that are JSON literals stay literals, whatever tag they
	// resolved to (e.g. 1E400 overflows a float and resolves as !!str)
	if isLiteral(n.Value) {
		e.buf.WriteString(n.Value)
		return nil
	}
	return e.string(n.Value)
}

// isLiteral reports whether s is a JSON number, boolean or null.
func isLiteral(s string) bool {
	if s == "" || strings.TrimSpace(s) != s || strings.ContainsAny(s[:1], "\"{[") {
		return false
	}
	return json.Valid([]byte(s))
}

func (e *encoder) string(s string) error {
	if e.str == nil {
		e.str = json.NewEncoder(&e.scratch)
		e.str.SetEscapeHTML(false)
	}
	e.scratch.Reset()
	if err := e.str.Encode(s); err != nil {
		return err
	}
	e.buf.Write(bytes.TrimSuffix(e.scratch.Bytes(), []byte("\n")))
	return nil
}

func (e *encoder) newline(depth int) {
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(indent)
	}
}
