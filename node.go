package chervil

import (
	"fmt"
	"strings"
)

// Node types for leaf matches. Every other node type is the name of the
// rule that produced it.
const (
	TypeTerminal = "terminal"
	TypeChar     = "char"
)

// Node is one element of the concrete syntax tree produced by a match.
// Start and End are half-open rune offsets into the matched input and
// Value is exactly the input text between them. Nodes are built once by
// the engine and never modified afterwards.
type Node struct {
	Type     string
	Value    string
	Start    int
	End      int
	Children []*Node
}

func (n *Node) String() string {
	return fmt.Sprintf("%s [%d:%d) %q", n.Type, n.Start, n.End, n.Value)
}

// Find returns the first node in the tree, in depth-first order, whose type
// matches name. It returns nil if there is none.
func (n *Node) Find(name string) *Node {
	if n.Type == name {
		return n
	}

	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}

	return nil
}

// Dump renders the tree as indented text, one node per line.
func (n *Node) Dump() string {
	var b strings.Builder

	n.dump(&b, 0)

	return b.String()
}

func (n *Node) dump(b *strings.Builder, indentLevel int) {
	b.WriteString(strings.Repeat("  ", indentLevel))
	b.WriteString(n.String())
	b.WriteString("\n")

	for _, child := range n.Children {
		child.dump(b, indentLevel+1)
	}
}
