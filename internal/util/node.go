package util

import (
	"github.com/pb33f/libopenapi/utils"
	"gopkg.in/yaml.v3"
)

// Pair is a key/value entry of a mapping node.
type Pair struct {
	Key   *yaml.Node
	Value *yaml.Node
}

// Unwrap returns the content of a document node, or n itself.
func Unwrap(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return n.Content[0]
	}
	return n
}

// GetValue returns the value stored under key, or nil when n is not a mapping
// or does not contain the key.
func GetValue(n *yaml.Node, key string) *yaml.Node {
	n = Unwrap(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	_, v := utils.FindKeyNodeTop(key, n.Content)
	return v
}

// GetPath follows keys from n down through nested mappings.
func GetPath(n *yaml.Node, keys ...string) *yaml.Node {
	for _, k := range keys {
		if n = GetValue(n, k); n == nil {
			return nil
		}
	}
	return Unwrap(n)
}

// GetString returns the scalar value stored under key, or "".
func GetString(n *yaml.Node, key string) string {
	v := GetValue(n, key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return ""
	}
	return v.Value
}

// GetPairs returns the entries of a mapping node in document order.
func GetPairs(n *yaml.Node) (pairs []Pair) {
	n = Unwrap(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	pairs = make([]Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, Pair{Key: n.Content[i], Value: n.Content[i+1]})
	}
	return
}

// GetKeys returns the keys of a mapping node in document order.
func GetKeys(n *yaml.Node) (keys []string) {
	for _, p := range GetPairs(n) {
		keys = append(keys, p.Key.Value)
	}
	return
}

// MoveKey renames the entry stored under from to to, keeping its position.
// An existing entry under to is replaced by the moved value and dropped from
// its own position.
func MoveKey(n *yaml.Node, from, to string) bool {
	n = Unwrap(n)
	if n == nil || n.Kind != yaml.MappingNode || from == to {
		return false
	}

	src, dst := -1, -1
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case from:
			src = i
		case to:
			dst = i
		}
	}
	if src < 0 {
		return false
	}

	n.Content[src].Value = to
	if dst >= 0 {
		n.Content = append(n.Content[:dst], n.Content[dst+2:]...)
	}
	return true
}
