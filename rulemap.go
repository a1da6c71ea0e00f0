package vtcss

import (
	"bytes"
	"encoding/json"
)

// Declaration is a single CSS property/value pair
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered list of CSS declarations.
// Property names may be kebab-case or camelCase; hosts normalize them.
type Declarations []Declaration

// Decl builds Declarations from alternating property/value arguments.
// A trailing property without a value is ignored.
func Decl(pairs ...string) Declarations {
	decls := make(Declarations, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		decls.Set(pairs[i], pairs[i+1])
	}
	return decls
}

// Get returns the value for property
func (d Declarations) Get(property string) (string, bool) {
	for _, decl := range d {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return "", false
}

// Set assigns value to property. An existing property keeps its position.
func (d *Declarations) Set(property, value string) {
	for i := range *d {
		if (*d)[i].Property == property {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, Declaration{Property: property, Value: value})
}

// Merge sets every declaration of other onto d, last write wins
func (d *Declarations) Merge(other Declarations) {
	for _, decl := range other {
		d.Set(decl.Property, decl.Value)
	}
}

// Clone returns a copy that shares no memory with d
func (d Declarations) Clone() Declarations {
	if d == nil {
		return nil
	}
	out := make(Declarations, len(d))
	copy(out, d)
	return out
}

// MarshalJSON encodes the declarations as an object in declaration order
func (d Declarations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, decl := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONPair(&buf, decl.Property, decl.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Body is the content of a rule: declarations for a selector, or nested
// rules for an at-rule such as a media query.
type Body struct {
	Declarations Declarations
	Rules        *RuleMap
}

func (b *Body) clone() *Body {
	out := &Body{Declarations: b.Declarations.Clone()}
	if b.Rules != nil {
		out.Rules = b.Rules.Clone()
	}
	return out
}

// RuleMap is an ordered mapping from selector (or at-rule prelude) to body.
// The zero value is not usable; call NewRuleMap.
type RuleMap struct {
	keys   []string
	bodies map[string]*Body
}

// NewRuleMap returns an empty rule map
func NewRuleMap() *RuleMap {
	return &RuleMap{bodies: make(map[string]*Body)}
}

// Len returns the number of top-level keys
func (m *RuleMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order
func (m *RuleMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns a copy of the body stored under key
func (m *RuleMap) Get(key string) (Body, bool) {
	if m == nil {
		return Body{}, false
	}
	body, ok := m.bodies[key]
	if !ok {
		return Body{}, false
	}
	return *body.clone(), true
}

// Merge merges decls into the declarations under selector.
// Properties already present are overwritten in place.
func (m *RuleMap) Merge(selector string, decls Declarations) {
	body, ok := m.bodies[selector]
	if !ok {
		body = &Body{Declarations: Declarations{}}
		m.keys = append(m.keys, selector)
		m.bodies[selector] = body
	}
	body.Declarations.Merge(decls)
}

// Nest stores rules as the body of an at-rule
func (m *RuleMap) Nest(prelude string, rules *RuleMap) {
	m.Assign(prelude, Body{Rules: rules})
}

// Assign replaces the whole body under key. A key that already exists keeps
// its original position.
func (m *RuleMap) Assign(key string, body Body) {
	if _, ok := m.bodies[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.bodies[key] = body.clone()
}

// Extend assigns every key of other onto m. Bodies from other replace
// colliding bodies wholesale.
func (m *RuleMap) Extend(other *RuleMap) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		m.Assign(key, *other.bodies[key])
	}
}

// Clone returns a deep copy of m
func (m *RuleMap) Clone() *RuleMap {
	out := NewRuleMap()
	out.Extend(m)
	return out
}

// MarshalJSON encodes the rule map as nested objects in insertion order
func (m *RuleMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		body := m.bodies[key]
		var v []byte
		if body.Rules != nil {
			v, err = body.Rules.MarshalJSON()
		} else {
			v, err = body.Declarations.MarshalJSON()
		}
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONPair(buf *bytes.Buffer, key, value string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
