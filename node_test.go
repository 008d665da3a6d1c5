package chervil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkSpans walks a tree verifying the span invariants: every value is
// exactly the input between its offsets, and children cover ordered,
// non-overlapping ranges inside their parent.
func checkSpans(t *testing.T, input string, node *Node) {
	t.Helper()

	runes := []rune(input)

	require.True(t, node.Start <= node.End, "node %s", node)
	assert.Equal(t, string(runes[node.Start:node.End]), node.Value, "node %s", node)

	prev := node.Start

	for _, child := range node.Children {
		assert.GreaterOrEqual(t, child.Start, prev, "child %s", child)
		assert.LessOrEqual(t, child.End, node.End, "child %s", child)
		prev = child.End

		checkSpans(t, input, child)
	}
}

func TestNodeSpanInvariants(t *testing.T) {
	g := mustCompile(t, `
expression ::= term (("+" | "-") term)*
term       ::= digit+
digit      ::= [0-9]
`)

	input := "12+34-5"
	node, err := g.Match(input)

	require.NoError(t, err)
	checkSpans(t, input, node)
}

func TestNodeDump(t *testing.T) {
	assert := assert.New(t)

	g := mustCompile(t, `
pair  ::= digit "," digit
digit ::= [0-9]
`)

	node, err := g.Match("1,2")
	require.NoError(t, err)

	dump := node.Dump()
	lines := strings.Split(strings.TrimRight(dump, "\n"), "\n")

	require.Len(t, lines, 6)
	assert.Equal(`pair [0:3) "1,2"`, lines[0])
	assert.Equal(`  digit [0:1) "1"`, lines[1])
	assert.Equal(`    char [0:1) "1"`, lines[2])
	assert.Equal(`  terminal [1:2) ","`, lines[3])
	assert.Equal(`  digit [2:3) "2"`, lines[4])
	assert.Equal(`    char [2:3) "2"`, lines[5])
}

func TestNodeFind(t *testing.T) {
	assert := assert.New(t)

	g := mustCompile(t, `
pair  ::= digit "," digit
digit ::= [0-9]
`)

	node, err := g.Match("1,2")
	require.NoError(t, err)

	digit := node.Find("digit")
	require.NotNil(t, digit)
	assert.Equal("1", digit.Value)

	assert.Nil(node.Find("nope"))
}
