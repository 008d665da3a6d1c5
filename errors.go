package chervil

import "fmt"

// CompileError reports that grammar text could not be turned into a
// grammar. The only hard compile failure is text with no rule definitions;
// unrecognized element syntax is coerced to a terminal, not rejected.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error: %s", e.Message)
}

// UnknownRuleError reports a rule name that is not in the grammar, either
// as the requested start rule or behind a reference reached while matching.
type UnknownRuleError struct {
	Rule string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %q", e.Rule)
}

// ParseFailedError reports that the start rule did not match at the
// beginning of the input.
type ParseFailedError struct {
	Rule string
}

func (e *ParseFailedError) Error() string {
	return fmt.Sprintf("rule %q did not match at the start of input", e.Rule)
}

// IncompleteParseError reports a match that succeeded on a prefix but left
// input unconsumed. Offset is the rune offset of the first unconsumed
// character and Remaining is everything from there on.
type IncompleteParseError struct {
	Remaining string
	Offset    int
}

func (e *IncompleteParseError) Error() string {
	return fmt.Sprintf("incomplete parse: %q unconsumed at offset %d", e.Remaining, e.Offset)
}

// RecursionLimitError reports that matching gave up after too many nested
// rule activations. Grammars with left recursion and no consuming prefix
// hit this instead of overflowing the stack.
type RecursionLimitError struct {
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("recursion limit of %d exceeded (is the grammar left-recursive?)", e.Limit)
}
