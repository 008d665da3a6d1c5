package chervil

// DefaultMaxDepth bounds nested rule activations during a match. Grammars
// with left recursion and no consuming prefix would otherwise descend
// forever.
const DefaultMaxDepth = 10000

// MatchOption adjusts a single match call.
type MatchOption func(*matcher)

// WithMaxDepth overrides the recursion ceiling for a match.
func WithMaxDepth(limit int) MatchOption {
	return func(m *matcher) {
		m.maxDepth = limit
	}
}

type matcher struct {
	grammar  *Grammar
	input    []rune
	depth    int
	maxDepth int
}

// Match matches input against the grammar's default start rule. See
// MatchRule.
func (g *Grammar) Match(input string, opts ...MatchOption) (*Node, error) {
	return g.MatchRule(g.start, input, opts...)
}

// MatchRule matches input against the named rule, starting at the
// beginning of the input. A match that does not consume all of the input
// is a failure, reported as an IncompleteParseError carrying the
// unconsumed suffix. Matching never mutates the grammar.
func (g *Grammar) MatchRule(ruleName, input string, opts ...MatchOption) (*Node, error) {
	m := &matcher{grammar: g, input: []rune(input), maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(m)
	}

	node, ok, err := m.matchRule(ruleName, 0)

	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, &ParseFailedError{Rule: ruleName}
	}

	if node.End != len(m.input) {
		return nil, &IncompleteParseError{Remaining: string(m.input[node.End:]), Offset: node.End}
	}

	return node, nil
}

// matchRule resolves a rule by name and wraps its match in a node tagged
// with the rule name. Nodes produced by the rule body arrive already
// flattened, so the children of structural combinators are promoted into
// the rule's node while terminal, character and rule-reference matches
// stay nested as children of their own.
func (m *matcher) matchRule(name string, pos int) (*Node, bool, error) {
	expr, found := m.grammar.rules[name]

	if !found {
		return nil, false, &UnknownRuleError{Rule: name}
	}

	m.depth++

	if m.depth > m.maxDepth {
		return nil, false, &RecursionLimitError{Limit: m.maxDepth}
	}

	defer func() {
		m.depth--
	}()

	result, ok, err := expr.match(m, pos)

	if err != nil || !ok {
		return nil, ok, err
	}

	node := &Node{
		Type:     name,
		Value:    string(m.input[pos:result.pos]),
		Start:    pos,
		End:      result.pos,
		Children: result.nodes,
	}

	return node, true, nil
}
