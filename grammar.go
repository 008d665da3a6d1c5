package chervil

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Grammar is a compiled, immutable collection of named rules. The first
// rule declared in the grammar text is the default start rule. A grammar
// carries no mutable state, so one compiled value can serve any number of
// concurrent matches.
type Grammar struct {
	rules map[string]Expression
	order []string
	start string
}

// Rules returns the declared rule names in declaration order.
func (g *Grammar) Rules() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)

	return names
}

// StartRule returns the name of the default start rule.
func (g *Grammar) StartRule() string {
	return g.start
}

// Lookup returns the compiled expression for a rule name.
func (g *Grammar) Lookup(name string) (Expression, bool) {
	expr, found := g.rules[name]
	return expr, found
}

var (
	ruleLinePattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(::=|:=|->|=|:)\s*(.*)$`)
	identPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	boundPattern    = regexp.MustCompile(`^(.+)\{(\d+)(,(\d*))?\}$`)
)

// Compile turns grammar text into a Grammar. Each non-blank line of the
// form "name ::= definition" (the assignment token may also be :=, ->, =,
// or :) declares a rule; redeclaring a name silently replaces its earlier
// definition. Lines that do not look like rule declarations are skipped.
// Compile fails only when the text yields no rules at all: elements with
// unrecognized syntax are coerced to terminals over their raw text rather
// than rejected.
func Compile(grammarText string) (*Grammar, error) {
	g := &Grammar{rules: map[string]Expression{}}

	for _, line := range strings.Split(stripComments(grammarText), "\n") {
		matches := ruleLinePattern.FindStringSubmatch(strings.TrimSpace(line))

		if matches == nil {
			continue
		}

		name, definition := matches[1], matches[3]

		if _, exists := g.rules[name]; !exists {
			g.order = append(g.order, name)
		}

		g.rules[name] = compileDefinition(definition)
	}

	if len(g.order) == 0 {
		return nil, &CompileError{Message: "no rules found"}
	}

	g.start = g.order[0]

	return g, nil
}

// stripComments removes (* ... *) blocks and // and # line comments, but
// never inside quoted strings. Newlines inside block comments are kept so
// the line structure of the remaining text survives.
func stripComments(text string) string {
	var b strings.Builder
	var quote rune

	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if quote != 0 {
			b.WriteRune(ch)

			if ch == quote {
				quote = 0
			}

			continue
		}

		switch {
		case ch == '"' || ch == '\'':
			quote = ch
			b.WriteRune(ch)
		case ch == '(' && i+1 < len(runes) && runes[i+1] == '*':
			i += 2

			for i < len(runes) {
				if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == ')' {
					i++
					break
				}

				if runes[i] == '\n' {
					b.WriteRune('\n')
				}

				i++
			}
		case ch == '/' && i+1 < len(runes) && runes[i+1] == '/':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}

			i--
		case ch == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}

			i--
		default:
			b.WriteRune(ch)
		}
	}

	return b.String()
}

// compileDefinition handles the weakest-binding level: alternation split at
// nesting depth zero. A single candidate collapses to its bare expression.
func compileDefinition(definition string) Expression {
	alternatives := splitAlternatives(definition)

	if len(alternatives) == 1 {
		return compileSequence(alternatives[0])
	}

	exprs := make([]Expression, len(alternatives))

	for i, alternative := range alternatives {
		exprs[i] = compileSequence(alternative)
	}

	return Alternation{Alternatives: exprs}
}

func compileSequence(s string) Expression {
	elements := splitElements(s)

	if len(elements) == 0 {
		return Empty{}
	}

	if len(elements) == 1 {
		return compileElement(elements[0])
	}

	exprs := make([]Expression, len(elements))

	for i, element := range elements {
		exprs[i] = compileElement(element)
	}

	return Concatenation{Elements: exprs}
}

// compileElement strips at most one trailing quantifier, then classifies
// whatever remains.
func compileElement(token string) Expression {
	if len(token) > 1 {
		switch {
		case strings.HasSuffix(token, "*"):
			return Repetition{Min: 0, Max: -1, Expr: compilePrimary(token[:len(token)-1])}
		case strings.HasSuffix(token, "+"):
			return Repetition{Min: 1, Max: -1, Expr: compilePrimary(token[:len(token)-1])}
		case strings.HasSuffix(token, "?"):
			return Optional{Expr: compilePrimary(token[:len(token)-1])}
		}

		if matches := boundPattern.FindStringSubmatch(token); matches != nil {
			lower, _ := strconv.Atoi(matches[2])
			upper := lower

			if matches[3] != "" {
				if matches[4] == "" {
					upper = -1
				} else {
					upper, _ = strconv.Atoi(matches[4])
				}
			}

			return Repetition{Min: lower, Max: upper, Expr: compilePrimary(matches[1])}
		}
	}

	return compilePrimary(token)
}

func compilePrimary(token string) Expression {
	runes := []rune(token)

	switch {
	case len(token) >= 2 && token[0] == '(' && strings.HasSuffix(token, ")"):
		return compileDefinition(token[1 : len(token)-1])
	case len(token) >= 2 && token[0] == '[' && strings.HasSuffix(token, "]"):
		return Optional{Expr: compileDefinition(token[1 : len(token)-1])}
	case len(token) >= 2 && token[0] == '{' && strings.HasSuffix(token, "}"):
		return Repetition{Min: 0, Max: -1, Expr: compileDefinition(token[1 : len(token)-1])}
	case len(token) >= 2 && token[0] == '"' && strings.HasSuffix(token, `"`):
		return Terminal{Literal: token[1 : len(token)-1]}
	case len(token) >= 2 && token[0] == '\'' && strings.HasSuffix(token, "'"):
		return Terminal{Literal: token[1 : len(token)-1]}
	case len(runes) == 3 && runes[1] == '-':
		return CharacterRange{Low: runes[0], High: runes[2]}
	case token == "ε" || token == "epsilon" || token == "empty":
		return Empty{}
	case identPattern.MatchString(token):
		return NonTerminal{Name: token}
	default:
		// Unrecognized syntax is coerced to a terminal over the raw text.
		return Terminal{Literal: token}
	}
}

// splitAlternatives splits on | at nesting depth zero, where depth is
// tracked across parenthesis, bracket and brace groups as well as quoted
// strings, so grouped or quoted content is never split internally.
func splitAlternatives(s string) []string {
	var parts []string
	var current strings.Builder
	var quote rune

	depth := 0

	for _, ch := range s {
		if quote != 0 {
			current.WriteRune(ch)

			if ch == quote {
				quote = 0
			}

			continue
		}

		switch ch {
		case '"', '\'':
			quote = ch
			current.WriteRune(ch)
		case '(', '[', '{':
			depth++
			current.WriteRune(ch)
		case ')', ']', '}':
			depth--
			current.WriteRune(ch)
		case '|':
			if depth == 0 {
				parts = append(parts, current.String())
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}

	parts = append(parts, current.String())

	return parts
}

// splitElements tokenizes a single alternative into whitespace-separated
// elements with the same depth and quote tracking as splitAlternatives.
func splitElements(s string) []string {
	var elements []string
	var current strings.Builder
	var quote rune

	depth := 0

	flush := func() {
		if current.Len() > 0 {
			elements = append(elements, current.String())
			current.Reset()
		}
	}

	for _, ch := range s {
		if quote != 0 {
			current.WriteRune(ch)

			if ch == quote {
				quote = 0
			}

			continue
		}

		switch {
		case ch == '"' || ch == '\'':
			quote = ch
			current.WriteRune(ch)
		case ch == '(' || ch == '[' || ch == '{':
			depth++
			current.WriteRune(ch)
		case ch == ')' || ch == ']' || ch == '}':
			depth--
			current.WriteRune(ch)
		case unicode.IsSpace(ch) && depth == 0:
			flush()
		default:
			current.WriteRune(ch)
		}
	}

	flush()

	return elements
}
