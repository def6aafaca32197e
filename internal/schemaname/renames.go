package schemaname

import (
	"fmt"

	"github.com/pb33f/libopenapi/orderedmap"
)

// Rename records a single schema rename decision.
type Rename struct {
	Old    string
	New    string
	Reason Reason
	Rule   Rule
}

// CollisionError is returned when applying the renames would make two schema
// definitions share a name.
type CollisionError struct {
	Derived string
	First   string
	Second  string
	// Kept is set when First is a valid schema name that is not renamed.
	Kept bool
}

func (e *CollisionError) Error() string {
	if e.Kept {
		return fmt.Sprintf("schema %q would be renamed to %q, which already exists", e.Second, e.Derived)
	}
	return fmt.Sprintf("schemas %q and %q would both be renamed to %q", e.First, e.Second, e.Derived)
}

// Renames maps old schema names to new ones, in document order.
type Renames struct {
	m    *orderedmap.Map[string, string]
	list []Rename
}

func (r *Renames) Len() int {
	return len(r.list)
}

func (r *Renames) Get(old string) (string, bool) {
	return r.m.Get(old)
}

// Map exposes the old-to-new mapping.
func (r *Renames) Map() *orderedmap.Map[string, string] {
	return r.m
}

// List returns the rename decisions in document order.
func (r *Renames) List() []Rename {
	return r.list
}

// Build classifies names, derives a replacement for every invalid one and
// fails with a *CollisionError rather than let two definitions share a name.
func (n *Namer) Build(names []string) (*Renames, error) {
	kept := map[string]struct{}{}
	for _, name := range names {
		if n.Valid(name) {
			kept[name] = struct{}{}
		}
	}

	r := &Renames{m: orderedmap.New[string, string]()}
	derivedFrom := map[string]string{}
	for _, name := range names {
		reason, invalid := n.Classify(name)
		if !invalid {
			continue
		}
		if _, seen := r.m.Get(name); seen {
			continue
		}

		derived, rule := n.Derive(name)
		if _, ok := kept[derived]; ok {
			return nil, &CollisionError{Derived: derived, First: derived, Second: name, Kept: true}
		}
		if prev, ok := derivedFrom[derived]; ok {
			return nil, &CollisionError{Derived: derived, First: prev, Second: name}
		}

		derivedFrom[derived] = name
		r.m.Set(name, derived)
		r.list = append(r.list, Rename{Old: name, New: derived, Reason: reason, Rule: rule})
	}
	return r, nil
}
