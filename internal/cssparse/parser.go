// Package cssparse reads CSS text back into ordered rules so generated
// output can be compared by meaning rather than by bytes.
package cssparse

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/vtcss"
)

// Rule is a qualified rule with the at-rules enclosing it
type Rule struct {
	AtRules      []string // Enclosing at-rule preludes, outermost first
	Selector     string   // Normalized selector list
	Declarations vtcss.Declarations
	Line         int // 1-based line of the selector
}

// Key identifies the rule by its at-rule context and selector
func (r Rule) Key() string {
	if len(r.AtRules) == 0 {
		return r.Selector
	}
	return strings.Join(r.AtRules, " ") + " " + r.Selector
}

// parserState maintains context while parsing CSS
type parserState struct {
	lexer   *css.Lexer
	line    int
	atRules []string
	rules   []Rule
}

// Parse parses CSS content into rules in source order
func Parse(content string) ([]Rule, error) {
	s := &parserState{
		lexer: css.NewLexer(parse.NewInputString(content)),
		line:  1,
	}

	var prelude []string
	preludeLine := 0

	for {
		tt, text := s.next()
		if tt == css.ErrorToken {
			break
		}

		switch tt {
		case css.CommentToken, css.CDOToken, css.CDCToken:
			continue
		case css.SemicolonToken:
			// Statement at-rule such as @import
			prelude, preludeLine = nil, 0
		case css.LeftBraceToken:
			head := normalizePrelude(prelude)
			if strings.HasPrefix(head, "@") {
				s.atRules = append(s.atRules, head)
			} else {
				s.rules = append(s.rules, Rule{
					AtRules:      append([]string(nil), s.atRules...),
					Selector:     head,
					Declarations: s.extractDeclarations(),
					Line:         preludeLine,
				})
			}
			prelude, preludeLine = nil, 0
		case css.RightBraceToken:
			if len(s.atRules) > 0 {
				s.atRules = s.atRules[:len(s.atRules)-1]
			}
			prelude, preludeLine = nil, 0
		default:
			if preludeLine == 0 && tt != css.WhitespaceToken {
				preludeLine = s.line
			}
			prelude = append(prelude, string(text))
		}
	}

	if err := s.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("line %d: %w", s.line, err)
	}
	if len(s.atRules) > 0 {
		return nil, fmt.Errorf("unclosed block %q", s.atRules[len(s.atRules)-1])
	}

	return s.rules, nil
}

// next returns the next token and advances the line counter past it
func (s *parserState) next() (css.TokenType, []byte) {
	tt, text := s.lexer.Next()
	s.line += strings.Count(string(text), "\n")
	return tt, text
}

// extractDeclarations reads property: value pairs until }
func (s *parserState) extractDeclarations() vtcss.Declarations {
	decls := vtcss.Declarations{}

	var currentProp string
	var currentVal []string
	sawColon := false
	depth := 0

	flush := func() {
		if currentProp != "" && sawColon && len(currentVal) > 0 {
			if v := strings.TrimSpace(strings.Join(currentVal, "")); v != "" {
				decls.Set(currentProp, v)
			}
		}
		currentProp, currentVal, sawColon = "", nil, false
	}

	for {
		tt, text := s.next()

		if tt == css.ErrorToken {
			flush()
			return decls
		}
		if tt == css.RightBraceToken {
			if depth == 0 {
				flush()
				return decls
			}
			depth--
			continue
		}
		if tt == css.LeftBraceToken {
			// Nested blocks are not supported; skip their content
			depth++
			continue
		}
		if depth > 0 || tt == css.CommentToken {
			continue
		}

		switch {
		case (tt == css.IdentToken || tt == css.CustomPropertyNameToken) && currentProp == "":
			currentProp = string(text)
		case tt == css.ColonToken && currentProp != "" && !sawColon:
			sawColon = true
		case tt == css.SemicolonToken:
			flush()
		case sawColon:
			if tt == css.WhitespaceToken {
				currentVal = append(currentVal, " ")
				continue
			}
			currentVal = append(currentVal, string(text))
		}
	}
}

// normalizePrelude collapses whitespace and drops it around commas so that
// "a , b" and "a,b" compare equal.
func normalizePrelude(tokens []string) string {
	var b strings.Builder
	pendingSpace := false

	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			pendingSpace = true
			continue
		}
		if tok == "," {
			b.WriteString(",")
			pendingSpace = false
			continue
		}
		if pendingSpace && b.Len() > 0 && !strings.HasSuffix(b.String(), ",") {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteString(tok)
	}

	return b.String()
}
