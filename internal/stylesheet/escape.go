package stylesheet

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PropertyName converts a camelCase property to kebab-case.
// Custom properties are returned unchanged.
//
//	viewTransitionName -> view-transition-name
//	WebkitTransform    -> -webkit-transform
//	msTransform        -> -ms-transform
func PropertyName(property string) string {
	if strings.HasPrefix(property, "--") {
		return property
	}

	var b strings.Builder
	for _, r := range property {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	name := b.String()
	if strings.HasPrefix(name, "ms-") {
		name = "-" + name
	}
	return name
}

// EscapeClass escapes a class name for use in a selector, following the
// CSSOM identifier serialization rules.
func EscapeClass(class string) string {
	runes := []rune(class)
	var b strings.Builder

	for i, r := range runes {
		switch {
		case r == 0:
			b.WriteRune('\uFFFD')
		case (r >= 0x01 && r <= 0x1F) || r == 0x7F,
			i == 0 && r >= '0' && r <= '9',
			i == 1 && r >= '0' && r <= '9' && runes[0] == '-':
			fmt.Fprintf(&b, "\\%x ", r)
		case i == 0 && r == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}

	return b.String()
}

// UnescapeClass reverses EscapeClass
func UnescapeClass(escaped string) string {
	var b strings.Builder
	runes := []rune(escaped)

	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 >= len(runes) {
			b.WriteRune(runes[i])
			continue
		}

		// Hex escape: up to six hex digits, optionally followed by one space
		j := i + 1
		for j < len(runes) && j-i <= 6 && isHex(runes[j]) {
			j++
		}
		if j > i+1 {
			code, err := strconv.ParseUint(string(runes[i+1:j]), 16, 32)
			if err != nil || code == 0 || !utf8.ValidRune(rune(code)) {
				// Zero, surrogates and out-of-range code points
				b.WriteRune(utf8.RuneError)
			} else {
				b.WriteRune(rune(code))
			}
			if j < len(runes) && runes[j] == ' ' {
				j++
			}
			i = j - 1
			continue
		}

		b.WriteRune(runes[i+1])
		i++
	}

	return b.String()
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
