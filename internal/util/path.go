package util

import (
	"strings"

	"gopkg.in/yaml.v3"
)

var methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Operation is an operation object of a path item together with its method.
type Operation struct {
	Method string
	Node   *yaml.Node
}

// IsMethod reports whether key names an HTTP method of a path item.
func IsMethod(key string) bool {
	for _, m := range methods {
		if strings.EqualFold(m, key) {
			return true
		}
	}
	return false
}

// GetOperations returns the operations of a path item in document order.
// Path-level fields such as parameters or servers are skipped.
func GetOperations(pathItem *yaml.Node) (ops []Operation) {
	for _, p := range GetPairs(pathItem) {
		if !IsMethod(p.Key.Value) || p.Value.Kind != yaml.MappingNode {
			continue
		}
		ops = append(ops, Operation{Method: strings.ToLower(p.Key.Value), Node: p.Value})
	}
	return
}
