// Package contenttype retags binary response bodies that were declared as
// application/json.
package contenttype

import (
	"fmt"
	"strings"

	"github.com/telkomindonesia/swagger-fixup/internal/util"
	"gopkg.in/yaml.v3"
)

const (
	JSON        = "application/json"
	PDF         = "application/pdf"
	OctetStream = "application/octet-stream"
)

// Change describes one media type that was moved.
type Change struct {
	Path   string
	Method string
	Status string
	// Component is set instead of Path, Method and Status for shared responses.
	Component string

	From string
	To   string
}

func (c Change) Location() string {
	if c.Component != "" {
		return "components/responses/" + c.Component
	}
	return fmt.Sprintf("%s [%s] %s", c.Path, strings.ToUpper(c.Method), c.Status)
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Location(), c.From, c.To)
}

// Fix moves every binary body found under application/json, in operation
// responses and in shared response components, to a binary media type.
func Fix(root *yaml.Node) (changes []Change) {
	for _, p := range util.GetPairs(util.GetPath(root, "paths")) {
		for _, op := range util.GetOperations(p.Value) {
			to := Target(p.Key.Value, util.GetString(op.Node, "summary"))
			for _, r := range util.GetPairs(util.GetValue(op.Node, "responses")) {
				if !fixContent(r.Value, to) {
					continue
				}
				changes = append(changes, Change{
					Path:   p.Key.Value,
					Method: op.Method,
					Status: r.Key.Value,
					From:   JSON,
					To:     to,
				})
			}
		}
	}

	for _, r := range util.GetPairs(util.GetPath(root, "components", "responses")) {
		if !fixContent(r.Value, OctetStream) {
			continue
		}
		changes = append(changes, Change{Component: r.Key.Value, From: JSON, To: OctetStream})
	}
	return
}

// Target picks the media type for a binary body returned by the operation at
// path with the given summary.
func Target(path, summary string) string {
	if strings.Contains(strings.ToLower(path), "pdf") || strings.Contains(strings.ToLower(summary), "pdf") {
		return PDF
	}
	return OctetStream
}

func fixContent(response *yaml.Node, to string) bool {
	content := util.GetValue(response, "content")
	for _, c := range util.GetPairs(content) {
		if c.Key.Value != JSON || !isBinary(c.Value) {
			continue
		}
		return util.MoveKey(content, JSON, to)
	}
	return false
}

func isBinary(mediaType *yaml.Node) bool {
	return util.GetString(util.GetValue(mediaType, "schema"), "format") == "binary"
}
