package schemaname

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

// Rule names the derivation step that produced a replacement name.
type Rule string

const (
	RuleMarkerStrip     Rule = "marker-strip"
	RulePagedResponse   Rule = "paged-response"
	RuleGenericFallback Rule = "generic-fallback"
	RuleHash            Rule = "hash"
)

var (
	markerArity    = regexp.MustCompile("`(\\d+)")
	pagedResponse  = regexp.MustCompile("(?:^|\\.)Page`1\\[\\[([^,\\]]+)[,\\]]")
	assemblyClause = regexp.MustCompile(`,\s*Version=.*$`)
)

// Derive returns a valid replacement for name and the rule that produced it.
// Rules are tried in order and a candidate is only accepted when Classify
// considers it valid, so the result never needs renaming again.
func (n *Namer) Derive(name string) (string, Rule) {
	if strings.Contains(name, "`") {
		if s := markerArity.ReplaceAllString(name, "$1"); n.Valid(s) {
			return s, RuleMarkerStrip
		}
	}
	if s, ok := n.pagedResponseName(name); ok && n.Valid(s) {
		return s, RulePagedResponse
	}
	if s := outerTypeName(name); n.Valid(s) {
		return s, RuleGenericFallback
	}
	return hashName(name), RuleHash
}

// pagedResponseName names a Page`1[[Ns.Domain.Action.GetXxxResponse, ...]]
// wrapper after its item type.
func (n *Namer) pagedResponseName(name string) (string, bool) {
	m := pagedResponse.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	parts := strings.Split(strings.TrimSpace(m[1]), ".")
	if len(parts) < 2 {
		return "", false
	}
	last := parts[len(parts)-1]

	domain := n.findKeyword(parts)
	if domain == "" {
		if base, ok := strings.CutSuffix(last, "Response"); ok {
			return base + "PageResponse", true
		}
		return last + "Page", true
	}

	base := last
	for _, tok := range n.tokens {
		if strings.HasPrefix(base, tok) {
			base = base[len(tok):]
		} else if strings.HasSuffix(base, tok) {
			base = base[:len(base)-len(tok)]
		}
	}
	if base == "" {
		return domain + "PageResponse", true
	}
	return base + "PageResponse", true
}

func (n *Namer) findKeyword(parts []string) string {
	for _, p := range parts {
		for _, kw := range n.keywords {
			if p == kw {
				return kw
			}
		}
	}
	return ""
}

// outerTypeName keeps the unqualified name of the outer type, e.g.
// "Ns.KeyValuePair`2[[...]]" becomes "KeyValuePair".
func outerTypeName(name string) string {
	s := assemblyClause.ReplaceAllString(name, "")
	if i := strings.IndexAny(s, "`["); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return strings.Trim(invalidChars.ReplaceAllString(s, "_"), "_")
}

func hashName(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprintf("Schema_%d", h.Sum32()%10000)
}
