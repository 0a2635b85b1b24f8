// Package parse defines the grammar parse tree consumed by the pattern
// engine and the boundary to the external parser that produces it.
package parse

import (
	"strings"
)

// Grammar labels of the Penn Treebank vocabulary the matchers rely on.
const (
	LabelTop   = "TOP"
	LabelS     = "S"
	LabelSQ    = "SQ"
	LabelSBAR  = "SBAR"
	LabelSBARQ = "SBARQ"
	LabelNP    = "NP"
	LabelVP    = "VP"
	LabelADJP  = "ADJP"
	LabelPP    = "PP"
	LabelWHNP  = "WHNP"
	LabelWHADV = "WHADVP"
	LabelWHPP  = "WHPP"
	LabelPOS   = "POS"
)

// Node is a node of a parse tree. Internal nodes carry a grammar label and
// children; leaves are preterminals carrying a part-of-speech label and the
// surface word.
type Node struct {
	Label    string
	Word     string
	Children []*Node
}

// Leaf builds a preterminal.
func Leaf(label, word string) *Node {
	return &Node{Label: label, Word: word}
}

// Branch builds an internal node.
func Branch(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// IsLeaf reports whether n is a preterminal.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits n and its descendants in preorder until fn returns false.
// It reports whether the walk ran to completion.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Leaves returns the preterminals under n, left to right.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if x.IsLeaf() {
			out = append(out, x)
		}
		return true
	})
	return out
}

// Words returns the surface words under n, left to right.
func (n *Node) Words() []string {
	leaves := n.Leaves()
	out := make([]string, len(leaves))
	for i, l := range leaves {
		out[i] = l.Word
	}
	return out
}

// ChildLabeled returns the first immediate child carrying label.
func (n *Node) ChildLabeled(label string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Label == label {
			return c, true
		}
	}
	return nil, false
}

// HasPrefixLabel reports whether the label starts with prefix; "VB" matches
// VB, VBD, VBZ and so on.
func (n *Node) HasPrefixLabel(prefix string) bool {
	return strings.HasPrefix(n.Label, prefix)
}

// String renders n in bracket notation.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.Label)
	if n.IsLeaf() {
		b.WriteByte(' ')
		b.WriteString(n.Word)
	}
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

// Parser is the external grammar parser boundary.
type Parser interface {
	Parse(sentence string) (*Node, error)
}
