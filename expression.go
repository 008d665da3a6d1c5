package chervil

import (
	"fmt"
	"strings"
)

// Expression is one construct in a compiled grammar graph. Rules refer to
// each other by name through NonTerminal, so a grammar never contains
// pointer cycles; references are resolved against the grammar's rule table
// while matching.
type Expression interface {
	fmt.Stringer

	match(m *matcher, pos int) (matchResult, bool, error)
}

// matchResult carries the position reached by a successful match and the
// nodes it produced. Structural expressions (concatenations, repetitions,
// optionals) return their elements' nodes flattened into one list, which is
// what lets rule matching promote them directly into the rule's node.
type matchResult struct {
	pos   int
	nodes []*Node
}

// Alternation tries its alternatives in order and commits to the first one
// that matches.
type Alternation struct {
	Alternatives []Expression
}

func (e Alternation) match(m *matcher, pos int) (matchResult, bool, error) {
	for _, alt := range e.Alternatives {
		result, ok, err := alt.match(m, pos)

		if err != nil {
			return matchResult{}, false, err
		}

		if ok {
			return result, true, nil
		}
	}

	return matchResult{}, false, nil
}

func (e Alternation) String() string {
	parts := make([]string, len(e.Alternatives))

	for i, alt := range e.Alternatives {
		parts[i] = alt.String()
	}

	return strings.Join(parts, " | ")
}

// Concatenation matches each element in order, threading the position
// through. There is no backtracking: once an element has matched, its
// consumption is final, even if a later element fails because of it.
type Concatenation struct {
	Elements []Expression
}

func (e Concatenation) match(m *matcher, pos int) (matchResult, bool, error) {
	var nodes []*Node

	for _, elem := range e.Elements {
		result, ok, err := elem.match(m, pos)

		if err != nil {
			return matchResult{}, false, err
		}

		if !ok {
			return matchResult{}, false, nil
		}

		nodes = append(nodes, result.nodes...)
		pos = result.pos
	}

	return matchResult{pos, nodes}, true, nil
}

func (e Concatenation) String() string {
	parts := make([]string, len(e.Elements))

	for i, elem := range e.Elements {
		parts[i] = elem.String()
	}

	return strings.Join(parts, " ")
}

// Repetition greedily matches its element between Min and Max times.
// Max < 0 means unbounded. A sub-match that consumes nothing ends the loop,
// otherwise a rule like x* over a nullable x would never terminate.
type Repetition struct {
	Min  int
	Max  int
	Expr Expression
}

func (e Repetition) match(m *matcher, pos int) (matchResult, bool, error) {
	var nodes []*Node

	count := 0

	for e.Max < 0 || count < e.Max {
		result, ok, err := e.Expr.match(m, pos)

		if err != nil {
			return matchResult{}, false, err
		}

		if !ok || result.pos == pos {
			break
		}

		nodes = append(nodes, result.nodes...)
		pos = result.pos
		count++
	}

	if count < e.Min {
		return matchResult{}, false, nil
	}

	return matchResult{pos, nodes}, true, nil
}

func (e Repetition) String() string {
	switch {
	case e.Min == 0 && e.Max < 0:
		return e.Expr.String() + "*"
	case e.Min == 1 && e.Max < 0:
		return e.Expr.String() + "+"
	case e.Max < 0:
		return fmt.Sprintf("%s{%d,}", e.Expr, e.Min)
	case e.Min == e.Max:
		return fmt.Sprintf("%s{%d}", e.Expr, e.Min)
	default:
		return fmt.Sprintf("%s{%d,%d}", e.Expr, e.Min, e.Max)
	}
}

// Optional matches its element zero or one time. A failing element never
// propagates; the optional succeeds with an empty match instead.
type Optional struct {
	Expr Expression
}

func (e Optional) match(m *matcher, pos int) (matchResult, bool, error) {
	result, ok, err := e.Expr.match(m, pos)

	if err != nil {
		return matchResult{}, false, err
	}

	if !ok {
		return matchResult{pos: pos}, true, nil
	}

	return result, true, nil
}

func (e Optional) String() string {
	return e.Expr.String() + "?"
}

// Terminal matches its literal exactly, case-sensitively.
type Terminal struct {
	Literal string
}

func (e Terminal) match(m *matcher, pos int) (matchResult, bool, error) {
	lit := []rune(e.Literal)

	if pos+len(lit) > len(m.input) {
		return matchResult{}, false, nil
	}

	for i, ch := range lit {
		if m.input[pos+i] != ch {
			return matchResult{}, false, nil
		}
	}

	end := pos + len(lit)
	node := &Node{Type: TypeTerminal, Value: e.Literal, Start: pos, End: end}

	return matchResult{end, []*Node{node}}, true, nil
}

func (e Terminal) String() string {
	return fmt.Sprintf("%q", e.Literal)
}

// CharacterRange matches a single character whose code point lies within
// [Low, High] inclusive.
type CharacterRange struct {
	Low  rune
	High rune
}

func (e CharacterRange) match(m *matcher, pos int) (matchResult, bool, error) {
	if pos >= len(m.input) {
		return matchResult{}, false, nil
	}

	ch := m.input[pos]

	if ch < e.Low || ch > e.High {
		return matchResult{}, false, nil
	}

	node := &Node{Type: TypeChar, Value: string(ch), Start: pos, End: pos + 1}

	return matchResult{pos + 1, []*Node{node}}, true, nil
}

func (e CharacterRange) String() string {
	return fmt.Sprintf("%c-%c", e.Low, e.High)
}

// NonTerminal is a by-name reference to another rule, resolved at match
// time. A reference to a rule the grammar never defines fails the whole
// match with an UnknownRuleError.
type NonTerminal struct {
	Name string
}

func (e NonTerminal) match(m *matcher, pos int) (matchResult, bool, error) {
	node, ok, err := m.matchRule(e.Name, pos)

	if err != nil || !ok {
		return matchResult{}, ok, err
	}

	return matchResult{node.End, []*Node{node}}, true, nil
}

func (e NonTerminal) String() string {
	return e.Name
}

// Empty always succeeds without consuming input or producing a node.
type Empty struct{}

func (e Empty) match(m *matcher, pos int) (matchResult, bool, error) {
	return matchResult{pos: pos}, true, nil
}

func (e Empty) String() string {
	return "ε"
}
