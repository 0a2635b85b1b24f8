// Package pattern is a small combinator library for matching parse trees.
//
// A Pattern is a pure function from a tree to an optional capture. Patterns
// compose by ordinary function calls:
//
//	// every ADJP directly under a VP directly under an S, anywhere in the tree
//	adj := Flatten(Flatten(Descendant(Top(), Child(Branch("S"), Child(Branch("VP"), Branch("ADJP"))))))
//
// Child and Descendant nest their captures one level per application, the
// way the tree nests; Flatten discards one level of grouping.
package pattern

import (
	"strings"

	"github.com/cognicore/watson/pkg/watson/lexicon"
	"github.com/cognicore/watson/pkg/watson/parse"
)

// Pattern matches the root of a tree and returns what it captured. A false
// second result is "no match", which is not an error.
type Pattern[T any] func(n *parse.Node) (T, bool)

// Match applies p to n. A nil tree never matches.
func (p Pattern[T]) Match(n *parse.Node) (T, bool) {
	if n == nil {
		var zero T
		return zero, false
	}
	return p(n)
}

// Matches reports whether p matches n.
func (p Pattern[T]) Matches(n *parse.Node) bool {
	_, ok := p.Match(n)
	return ok
}

// Branch matches a node carrying label and captures it.
func Branch(label string) Pattern[*parse.Node] {
	return func(n *parse.Node) (*parse.Node, bool) {
		if n.Label == label {
			return n, true
		}
		return nil, false
	}
}

// Top matches the root of a parser tree.
func Top() Pattern[*parse.Node] { return Branch(parse.LabelTop) }

// Any matches every node.
func Any() Pattern[*parse.Node] {
	return func(n *parse.Node) (*parse.Node, bool) { return n, true }
}

// Prefix matches a node whose label starts with prefix: Prefix("VB")
// matches every verb tag, Prefix("NN") every noun tag.
func Prefix(prefix string) Pattern[*parse.Node] {
	return func(n *parse.Node) (*parse.Node, bool) {
		if strings.HasPrefix(n.Label, prefix) {
			return n, true
		}
		return nil, false
	}
}

// Word matches a leaf whose surface word is synonym-equal to token.
func Word(th lexicon.Thesaurus, token string) Pattern[*parse.Node] {
	return func(n *parse.Node) (*parse.Node, bool) {
		if n.IsLeaf() && lexicon.Same(th, n.Word, token) {
			return n, true
		}
		return nil, false
	}
}

// Child matches when parent matches the root and child matches at least one
// of the matched node's immediate children. It captures every child match,
// left to right.
func Child[T any](parent Pattern[*parse.Node], child Pattern[T]) Pattern[[]T] {
	return func(n *parse.Node) ([]T, bool) {
		root, ok := parent(n)
		if !ok {
			return nil, false
		}
		var out []T
		for _, c := range root.Children {
			if v, ok := child(c); ok {
				out = append(out, v)
			}
		}
		return out, len(out) > 0
	}
}

// Descendant matches when parent matches the root and child matches some
// node strictly below it, at any depth. Captures are in preorder (depth
// first, left to right), so the first capture is the first-found node.
func Descendant[T any](parent Pattern[*parse.Node], child Pattern[T]) Pattern[[]T] {
	return func(n *parse.Node) ([]T, bool) {
		root, ok := parent(n)
		if !ok {
			return nil, false
		}
		var out []T
		for _, c := range root.Children {
			c.Walk(func(x *parse.Node) bool {
				if v, ok := child(x); ok {
					out = append(out, v)
				}
				return true
			})
		}
		return out, len(out) > 0
	}
}

// And succeeds when both patterns match the same tree and captures the
// concatenation of their captures.
func And[T any](p1, p2 Pattern[[]T]) Pattern[[]T] {
	return func(n *parse.Node) ([]T, bool) {
		a, ok := p1(n)
		if !ok {
			return nil, false
		}
		b, ok := p2(n)
		if !ok {
			return nil, false
		}
		out := make([]T, 0, len(a)+len(b))
		return append(append(out, a...), b...), true
	}
}

// Or succeeds when either pattern matches, preferring p1.
func Or[T any](p1, p2 Pattern[T]) Pattern[T] {
	return func(n *parse.Node) (T, bool) {
		if v, ok := p1(n); ok {
			return v, true
		}
		return p2(n)
	}
}

// Not matches, capturing the node, wherever p does not.
func Not[T any](p Pattern[T]) Pattern[*parse.Node] {
	return func(n *parse.Node) (*parse.Node, bool) {
		if _, ok := p(n); ok {
			return nil, false
		}
		return n, true
	}
}

// Flatten concatenates one level of nested captures.
func Flatten[T any](p Pattern[[][]T]) Pattern[[]T] {
	return func(n *parse.Node) ([]T, bool) {
		groups, ok := p(n)
		if !ok {
			return nil, false
		}
		var out []T
		for _, g := range groups {
			out = append(out, g...)
		}
		return out, true
	}
}

// List lifts a single-capture pattern into a list pattern so it can be
// combined with And.
func List[T any](p Pattern[T]) Pattern[[]T] {
	return func(n *parse.Node) ([]T, bool) {
		v, ok := p(n)
		if !ok {
			return nil, false
		}
		return []T{v}, true
	}
}

// First reduces a list pattern to its first capture.
func First[T any](p Pattern[[]T]) Pattern[T] {
	return func(n *parse.Node) (T, bool) {
		vs, ok := p(n)
		if !ok || len(vs) == 0 {
			var zero T
			return zero, false
		}
		return vs[0], true
	}
}

// Where restricts p to captures satisfying keep.
func Where[T any](p Pattern[T], keep func(T) bool) Pattern[T] {
	return func(n *parse.Node) (T, bool) {
		v, ok := p(n)
		if !ok || !keep(v) {
			var zero T
			return zero, false
		}
		return v, true
	}
}
