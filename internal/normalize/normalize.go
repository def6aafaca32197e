// Package normalize renames invalid schema components of an OpenAPI document
// and keeps every reference to them consistent.
package normalize

import (
	"context"
	"fmt"

	"github.com/pb33f/libopenapi/orderedmap"
	"github.com/telkomindonesia/swagger-fixup/internal/schemaname"
	"github.com/telkomindonesia/swagger-fixup/internal/util"
	"gopkg.in/yaml.v3"
)

const (
	componentsSchemaPrefix = "#/components/schemas/"
	definitionsPrefix      = "#/definitions/"
)

// Result lists what Normalize changed.
type Result struct {
	Renames []schemaname.Rename
	// Refs is the number of reference strings that were rewritten.
	Refs int
}

type Normalizer struct {
	namer *schemaname.Namer
}

func New(namer *schemaname.Namer) *Normalizer {
	return &Normalizer{namer: namer}
}

// SchemaSection returns the schema definitions mapping of an OpenAPI 3
// (components.schemas) or Swagger 2 (definitions) document, together with the
// local reference prefix that points into it.
func SchemaSection(root *yaml.Node) (schemas *yaml.Node, prefix string) {
	if s := util.GetPath(root, "components", "schemas"); s != nil && s.Kind == yaml.MappingNode {
		return s, componentsSchemaPrefix
	}
	if s := util.GetPath(root, "definitions"); s != nil && s.Kind == yaml.MappingNode {
		return s, definitionsPrefix
	}
	return nil, ""
}

// Plan decides the renames without modifying the document.
func (n *Normalizer) Plan(root *yaml.Node) (*schemaname.Renames, error) {
	schemas, _ := SchemaSection(root)
	return n.namer.Build(util.GetKeys(schemas))
}

// Normalize renames the invalid schema definitions in place and rewrites the
// references pointing at them. The document is left untouched when the plan
// fails.
func (n *Normalizer) Normalize(ctx context.Context, root *yaml.Node) (res Result, err error) {
	renames, err := n.Plan(root)
	if err != nil {
		return res, fmt.Errorf("fail to plan schema renames: %w", err)
	}
	if renames.Len() == 0 {
		return
	}

	schemas, prefix := SchemaSection(root)
	ApplyRenames(ctx, schemas, renames)
	res.Refs = RewriteRefs(root, prefix, renames)
	if err = CheckRefs(root, prefix, renames); err != nil {
		return res, err
	}

	res.Renames = renames.List()
	return
}

// ApplyRenames renames the keys of the schema mapping. Keys keep their
// position, and since every key is renamed in the same pass, chains such as
// A to B and B to C cannot clobber each other.
func ApplyRenames(ctx context.Context, schemas *yaml.Node, renames *schemaname.Renames) (count int) {
	keys := map[string]*yaml.Node{}
	for _, p := range util.GetPairs(schemas) {
		keys[p.Key.Value] = p.Key
	}

	for m := range orderedmap.Iterate(ctx, renames.Map()) {
		k, ok := keys[m.Key()]
		if !ok {
			continue
		}
		k.Value = m.Value()
		count++
	}
	return
}
