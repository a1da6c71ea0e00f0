package cssparse

// DriftKind classifies a difference between two stylesheets
type DriftKind int

const (
	// DriftMissing means a wanted rule is absent
	DriftMissing DriftKind = iota
	// DriftUnexpected means a rule is present but not wanted
	DriftUnexpected
	// DriftDeclaration means a property differs or is missing
	DriftDeclaration
)

// Drift is one difference found by Diff
type Drift struct {
	Kind     DriftKind
	Key      string // Rule key, see Rule.Key
	Line     int    // Line in the actual stylesheet, 0 when the rule is missing
	Property string // Set for DriftDeclaration
	Got      string
	Want     string
}

// Diff compares actual rules against wanted rules. Rule order and
// declaration order are ignored; duplicate keys merge with last write winning.
func Diff(want, got []Rule) []Drift {
	wantIdx, wantOrder := index(want)
	gotIdx, gotOrder := index(got)

	var drifts []Drift

	for _, key := range wantOrder {
		w := wantIdx[key]
		g, ok := gotIdx[key]
		if !ok {
			drifts = append(drifts, Drift{Kind: DriftMissing, Key: key})
			continue
		}

		for _, decl := range w.Declarations {
			value, ok := g.Declarations.Get(decl.Property)
			if ok && value == decl.Value {
				continue
			}
			drifts = append(drifts, Drift{
				Kind:     DriftDeclaration,
				Key:      key,
				Line:     g.Line,
				Property: decl.Property,
				Got:      value,
				Want:     decl.Value,
			})
		}
		for _, decl := range g.Declarations {
			if _, ok := w.Declarations.Get(decl.Property); ok {
				continue
			}
			drifts = append(drifts, Drift{
				Kind:     DriftDeclaration,
				Key:      key,
				Line:     g.Line,
				Property: decl.Property,
				Got:      decl.Value,
			})
		}
	}

	for _, key := range gotOrder {
		if _, ok := wantIdx[key]; !ok {
			drifts = append(drifts, Drift{Kind: DriftUnexpected, Key: key, Line: gotIdx[key].Line})
		}
	}

	return drifts
}

func index(rules []Rule) (map[string]Rule, []string) {
	idx := make(map[string]Rule, len(rules))
	var order []string

	for _, r := range rules {
		key := r.Key()
		existing, ok := idx[key]
		if !ok {
			order = append(order, key)
			r.Declarations = r.Declarations.Clone()
			idx[key] = r
			continue
		}
		existing.Declarations.Merge(r.Declarations)
		idx[key] = existing
	}

	return idx, order
}
