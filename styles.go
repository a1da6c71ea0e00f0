package vtcss

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Reserved StyleSpec keys that target a single pseudo-element
const (
	KeyOld = "old"
	KeyNew = "new"
)

// StyleEntry is one key of a StyleSpec.
// A non-nil Block marks a nested declaration block, which is only meaningful
// under KeyOld or KeyNew. Any other key is a shared property set to Value.
type StyleEntry struct {
	Key   string
	Value string
	Block Declarations
}

// StyleSpec describes the pseudo-element styles of one transition name.
// Entries are applied in order.
type StyleSpec []StyleEntry

// Shared returns a spec applying decls to both the old and new pseudo-elements
func Shared(decls Declarations) StyleSpec {
	spec := make(StyleSpec, 0, len(decls))
	for _, decl := range decls {
		spec = append(spec, StyleEntry{Key: decl.Property, Value: decl.Value})
	}
	return spec
}

// Split returns a spec with separate blocks for the old and new pseudo-elements.
// A nil block is left out.
func Split(oldDecls, newDecls Declarations) StyleSpec {
	var spec StyleSpec
	if oldDecls != nil {
		spec = append(spec, StyleEntry{Key: KeyOld, Block: oldDecls})
	}
	if newDecls != nil {
		spec = append(spec, StyleEntry{Key: KeyNew, Block: newDecls})
	}
	return spec
}

// NamedStyle binds a StyleSpec to a view-transition name
type NamedStyle struct {
	Name string
	Spec StyleSpec
}

// Styles is an ordered list of named transition styles.
// The same name may appear more than once; later entries merge onto earlier ones.
type Styles []NamedStyle

// UnmarshalYAML decodes a YAML mapping while keeping the key order of the
// document, which a Go map would lose.
//
//	styles:
//	  root:
//	    animation: none
//	  card:
//	    old: { animationDuration: 1s }
//	    new: { animationDuration: 3s }
//
// Entries that are not mappings, and values that are neither scalars nor
// mappings, are skipped.
func (s *Styles) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if isNull(node) {
		*s = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: styles must be a mapping of transition names", node.Line)
	}

	var out Styles
	for i := 0; i+1 < len(node.Content); i += 2 {
		nameNode := resolveAlias(node.Content[i])
		specNode := resolveAlias(node.Content[i+1])
		if nameNode.Kind != yaml.ScalarNode || specNode.Kind != yaml.MappingNode {
			continue
		}
		out = append(out, NamedStyle{Name: nameNode.Value, Spec: decodeSpec(specNode)})
	}
	*s = out
	return nil
}

func decodeSpec(node *yaml.Node) StyleSpec {
	var spec StyleSpec
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolveAlias(node.Content[i])
		valNode := resolveAlias(node.Content[i+1])
		if keyNode.Kind != yaml.ScalarNode {
			continue
		}

		switch {
		case valNode.Kind == yaml.ScalarNode && !isNull(valNode):
			spec = append(spec, StyleEntry{Key: keyNode.Value, Value: valNode.Value})
		case valNode.Kind == yaml.MappingNode:
			spec = append(spec, StyleEntry{Key: keyNode.Value, Block: decodeDeclarations(valNode)})
		}
	}
	return spec
}

func decodeDeclarations(node *yaml.Node) Declarations {
	decls := Declarations{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolveAlias(node.Content[i])
		valNode := resolveAlias(node.Content[i+1])
		if keyNode.Kind != yaml.ScalarNode || valNode.Kind != yaml.ScalarNode || isNull(valNode) {
			continue
		}
		decls.Set(keyNode.Value, valNode.Value)
	}
	return decls
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}
