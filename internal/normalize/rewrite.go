package normalize

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/go-openapi/jsonpointer"
	"github.com/telkomindonesia/swagger-fixup/internal/schemaname"
	"github.com/telkomindonesia/swagger-fixup/internal/util"
	"gopkg.in/yaml.v3"
)

var ErrDanglingRef = errors.New("reference still targets a renamed schema")

const (
	refKey           = "$ref"
	discriminatorKey = "discriminator"
	mappingKey       = "mapping"
)

// RewriteRefs walks the whole tree and points every local schema reference
// that targets an old name at the new one. Discriminator mappings, which may
// also hold bare schema names, are rewritten too. It returns the number of
// rewritten strings.
func RewriteRefs(root *yaml.Node, prefix string, renames *schemaname.Renames) (count int) {
	walkRefs(root, func(n *yaml.Node, bare bool) {
		if ref, ok := rewriteRef(n.Value, prefix, bare, renames); ok {
			n.Value = ref
			count++
		}
	})
	return
}

// CheckRefs fails when a reference still resolves to a renamed schema.
func CheckRefs(root *yaml.Node, prefix string, renames *schemaname.Renames) (err error) {
	walkRefs(root, func(n *yaml.Node, bare bool) {
		if err != nil {
			return
		}
		if _, ok := rewriteRef(n.Value, prefix, bare, renames); ok {
			err = fmt.Errorf("%w: %q at line %d", ErrDanglingRef, n.Value, n.Line)
		}
	})
	return
}

// rewriteRef compares the final segment of ref, decoded as a JSON pointer
// token, with the old schema names. Only references into the schema section,
// or bare names where those are allowed, are considered.
func rewriteRef(ref, prefix string, bare bool, renames *schemaname.Renames) (string, bool) {
	head, segment := util.SplitReference(ref)
	switch {
	case prefix != "" && head == prefix:
	case bare && head == "":
	default:
		return ref, false
	}

	for _, name := range candidates(segment) {
		if newName, ok := renames.Get(name); ok {
			return util.RenameReference(ref, segment, newName), true
		}
	}
	return ref, false
}

// candidates lists the ways segment may spell a schema name, most specific
// first: a pointer token, a percent-encoded pointer token, and raw text from
// producers that do not escape at all.
func candidates(segment string) []string {
	c := []string{jsonpointer.Unescape(segment)}
	if u, err := url.PathUnescape(segment); err == nil && u != segment {
		c = append(c, jsonpointer.Unescape(u))
	}
	return append(c, segment)
}

// walkRefs calls fn for every $ref string and every discriminator mapping
// value. Aliases are not followed.
func walkRefs(n *yaml.Node, fn func(n *yaml.Node, bare bool)) {
	if n == nil {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			walkRefs(c, fn)
		}

	case yaml.MappingNode:
		for _, p := range util.GetPairs(n) {
			switch {
			case p.Key.Value == refKey && p.Value.Kind == yaml.ScalarNode:
				fn(p.Value, false)
				continue
			case p.Key.Value == discriminatorKey:
				for _, m := range util.GetPairs(util.GetValue(p.Value, mappingKey)) {
					if m.Value.Kind == yaml.ScalarNode {
						fn(m.Value, true)
					}
				}
			}
			walkRefs(p.Value, fn)
		}
	}
}
