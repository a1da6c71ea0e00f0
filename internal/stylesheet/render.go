package stylesheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yacobolo/vtcss"
)

// Output formats for compiled rules
const (
	FormatCSS  = "css"
	FormatJSON = "json"
)

// Format renders rules in the named format
func Format(rules *vtcss.RuleMap, format string) (string, error) {
	switch format {
	case "", FormatCSS:
		return Render(rules), nil
	case FormatJSON:
		return RenderJSON(rules)
	default:
		return "", fmt.Errorf("unknown format %q (want css or json)", format)
	}
}

// Render serializes rules to CSS text. Rules are separated by a blank line
// and rules without declarations are omitted.
func Render(rules *vtcss.RuleMap) string {
	var b strings.Builder
	writeRules(&b, rules, 0)
	return b.String()
}

// RenderJSON serializes rules as an indented JSON object in rule order
func RenderJSON(rules *vtcss.RuleMap) (string, error) {
	raw, err := rules.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("encode rules: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", fmt.Errorf("indent rules: %w", err)
	}
	out.WriteByte('\n')
	return out.String(), nil
}

func writeRules(b *strings.Builder, rules *vtcss.RuleMap, depth int) {
	indent := strings.Repeat("  ", depth)
	first := true

	for _, key := range rules.Keys() {
		body, _ := rules.Get(key)
		if isEmpty(body) {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		first = false

		if body.Rules != nil {
			fmt.Fprintf(b, "%s%s {\n\n", indent, key)
			writeRules(b, body.Rules, depth+1)
			fmt.Fprintf(b, "%s}\n", indent)
			continue
		}

		fmt.Fprintf(b, "%s%s {\n", indent, key)
		for _, decl := range body.Declarations {
			fmt.Fprintf(b, "%s  %s: %s;\n", indent, PropertyName(decl.Property), decl.Value)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	}
}

func isEmpty(body vtcss.Body) bool {
	if body.Rules == nil {
		return len(body.Declarations) == 0
	}
	for _, key := range body.Rules.Keys() {
		inner, _ := body.Rules.Get(key)
		if !isEmpty(inner) {
			return false
		}
	}
	return true
}
