// Package stylesheet implements a vtcss.Host that compiles registrations
// into CSS text.
package stylesheet

import (
	"sort"
	"strings"

	"github.com/yacobolo/vtcss"
)

// Stylesheet collects base rules and utilities registered by plugins
type Stylesheet struct {
	base      *vtcss.RuleMap
	static    []*vtcss.RuleMap
	utilities map[string]vtcss.UtilityFunc
}

// New returns an empty stylesheet
func New() *Stylesheet {
	return &Stylesheet{
		base:      vtcss.NewRuleMap(),
		utilities: make(map[string]vtcss.UtilityFunc),
	}
}

// AddBase registers global rules. Keys already present are replaced.
func (s *Stylesheet) AddBase(rules *vtcss.RuleMap) {
	s.base.Extend(rules)
}

// AddUtilities registers static utility rules
func (s *Stylesheet) AddUtilities(rules []*vtcss.RuleMap) {
	for _, r := range rules {
		if r != nil {
			s.static = append(s.static, r.Clone())
		}
	}
}

// MatchUtilities registers dynamic utilities by name
func (s *Stylesheet) MatchUtilities(utilities map[string]vtcss.UtilityFunc) {
	for name, fn := range utilities {
		s.utilities[name] = fn
	}
}

// Compile returns the base rules followed by the utilities used by candidates.
// Static utilities are included when a candidate equals their class name;
// dynamic utilities are invoked for candidates of the form name-[value].
func (s *Stylesheet) Compile(candidates []string) *vtcss.RuleMap {
	return s.compile(candidates, false)
}

// CompileAll is like Compile but includes every static utility
func (s *Stylesheet) CompileAll(candidates []string) *vtcss.RuleMap {
	return s.compile(candidates, true)
}

func (s *Stylesheet) compile(candidates []string, allStatic bool) *vtcss.RuleMap {
	out := vtcss.NewRuleMap()
	appendNormalized(out, s.base)

	used := make(map[string]bool, len(candidates))
	unique := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != "" && !used[c] {
			used[c] = true
			unique = append(unique, c)
		}
	}

	for _, rules := range s.static {
		for _, selector := range rules.Keys() {
			if !allStatic && !used[classFromSelector(selector)] {
				continue
			}
			body, _ := rules.Get(selector)
			out.Merge(selector, normalizeDeclarations(body.Declarations))
		}
	}

	names := s.utilityNames()
	for _, candidate := range unique {
		for _, name := range names {
			value, ok := arbitraryValue(candidate, name)
			if !ok {
				continue
			}
			decls := s.utilities[name](value)
			if len(decls) > 0 {
				out.Merge("."+EscapeClass(candidate), normalizeDeclarations(decls))
			}
			break
		}
	}

	return out
}

// Prefixes returns the class prefixes a content scanner should look for:
// every dynamic utility name plus each static class without its last
// dash segment ("vt-name-none" yields "vt-name").
func (s *Stylesheet) Prefixes() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, name := range s.utilityNames() {
		add(name)
	}
	for _, rules := range s.static {
		for _, selector := range rules.Keys() {
			class := classFromSelector(selector)
			if i := strings.LastIndexByte(class, '-'); i > 0 {
				add(class[:i])
			}
		}
	}
	return out
}

// utilityNames returns registered names, longest first so that a more
// specific prefix wins.
func (s *Stylesheet) utilityNames() []string {
	names := make([]string, 0, len(s.utilities))
	for name := range s.utilities {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// arbitraryValue extracts the bracket value of candidate for utility name.
// "vt-name-[foo]" yields "foo" for "vt-name".
func arbitraryValue(candidate, name string) (string, bool) {
	rest, ok := strings.CutPrefix(candidate, name+"-")
	if !ok || len(rest) < 3 || rest[0] != '[' || rest[len(rest)-1] != ']' {
		return "", false
	}
	value := decodeArbitrary(rest[1 : len(rest)-1])
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// decodeArbitrary turns underscores into spaces; an escaped underscore stays.
func decodeArbitrary(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		switch {
		case raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == '_':
			b.WriteByte('_')
			i++
		case raw[i] == '_':
			b.WriteByte(' ')
		default:
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

// classFromSelector returns the unescaped class of a simple ".class" selector
func classFromSelector(selector string) string {
	if !strings.HasPrefix(selector, ".") {
		return ""
	}
	return UnescapeClass(selector[1:])
}

func appendNormalized(dst, src *vtcss.RuleMap) {
	for _, key := range src.Keys() {
		body, _ := src.Get(key)
		if body.Rules != nil {
			inner := vtcss.NewRuleMap()
			appendNormalized(inner, body.Rules)
			dst.Nest(key, inner)
			continue
		}
		dst.Merge(key, normalizeDeclarations(body.Declarations))
	}
}

func normalizeDeclarations(decls vtcss.Declarations) vtcss.Declarations {
	out := make(vtcss.Declarations, 0, len(decls))
	for _, decl := range decls {
		out.Set(PropertyName(decl.Property), decl.Value)
	}
	return out
}
