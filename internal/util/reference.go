package util

import "strings"

// SplitReference splits a reference into the part kept verbatim (up to and
// including the last '/') and its final segment. A bare name has no prefix.
func SplitReference(ref string) (prefix, name string) {
	i := strings.LastIndex(ref, "/")
	return ref[:i+1], ref[i+1:]
}

// RenameReference replaces the trailing name of ref with newName.
func RenameReference(ref, name, newName string) string {
	return strings.TrimSuffix(ref, name) + newName
}
