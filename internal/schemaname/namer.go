// Package schemaname decides which schema component names a code generator
// would reject and derives valid replacements for them.
package schemaname

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/telkomindonesia/swagger-fixup/internal/config"
)

// Reason tells why a name has to be renamed.
type Reason string

const (
	ReasonInvalidCharacters Reason = "invalid-characters"
	ReasonLongGenericType   Reason = "long-generic-type"
)

// genericMarker is how .NET spells a single-argument generic followed by its
// assembly-qualified type argument list.
const genericMarker = "`1[["

var invalidChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// Namer classifies schema names and derives replacements for the invalid ones.
type Namer struct {
	maxLength int
	keywords  []string
	tokens    []string
}

// New builds a Namer from cfg. A maximum length below config.MinNameLength is
// raised to it, so that the hashed fallback is always a valid name.
func New(cfg config.Config) *Namer {
	return &Namer{
		maxLength: max(cfg.MaxNameLength, config.MinNameLength),
		keywords:  cfg.DomainKeywords,
		tokens:    cfg.StripTokens,
	}
}

// Classify reports whether name must be renamed, and why.
func (n *Namer) Classify(name string) (Reason, bool) {
	switch {
	case name == "" || invalidChars.MatchString(name):
		return ReasonInvalidCharacters, true
	case strings.Contains(name, genericMarker) || utf8.RuneCountInString(name) > n.maxLength:
		return ReasonLongGenericType, true
	}
	return "", false
}

// Valid reports whether name can be kept as is.
func (n *Namer) Valid(name string) bool {
	_, invalid := n.Classify(name)
	return !invalid
}
