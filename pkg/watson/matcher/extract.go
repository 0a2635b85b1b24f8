package matcher

import (
	"slices"
	"strings"
	"unicode"

	"github.com/cognicore/watson/pkg/watson/graph"
	"github.com/cognicore/watson/pkg/watson/parse"
	"github.com/cognicore/watson/pkg/watson/pattern"
)

// whQuestion is a WH phrase paired with the clause it questions. The clause
// may be the whole sentence ("who killed the earl?") or embedded ("could you
// tell me who killed the earl?").
type whQuestion struct {
	word   string      // lowercased WH word
	phrase *parse.Node // WHNP, WHADVP or WHPP
	body   *parse.Node // SQ or S
}

func isWHClause(n *parse.Node) bool {
	if n.Label != parse.LabelSBARQ && n.Label != parse.LabelSBAR {
		return false
	}
	return whPhrase(n) != nil && clauseBody(n) != nil
}

func whPhrase(n *parse.Node) *parse.Node {
	for _, c := range n.Children {
		if !c.IsLeaf() && c.HasPrefixLabel("WH") {
			return c
		}
	}
	return nil
}

func clauseBody(n *parse.Node) *parse.Node {
	for _, c := range n.Children {
		if c.Label == parse.LabelSQ || c.Label == parse.LabelS {
			return c
		}
	}
	return nil
}

var (
	whClauses = pattern.Descendant(pattern.Top(), pattern.Where(pattern.Any(), isWHClause))
	// Relative clauses ("the person that killed the earl") share the shape
	// of embedded questions but modify a noun phrase.
	relativeClauses = pattern.Flatten(pattern.Descendant(pattern.Top(), pattern.Child(pattern.Branch(parse.LabelNP), pattern.Branch(parse.LabelSBAR))))
)

var whWordLeaf = pattern.First(pattern.Descendant(pattern.Any(), pattern.Where(pattern.Any(), func(n *parse.Node) bool {
	return n.IsLeaf() && (n.Label == "WP" || n.Label == "WDT" || n.Label == "WRB" || n.Label == "WP$")
})))

// questionClause returns the first WH clause of tree that is not a relative
// clause.
func questionClause(tree *parse.Node) (*parse.Node, bool) {
	clauses, ok := whClauses.Match(tree)
	if !ok {
		return nil, false
	}
	relatives, _ := relativeClauses.Match(tree)
	for _, c := range clauses {
		if !slices.Contains(relatives, c) {
			return c, true
		}
	}
	return nil, false
}

func findWHQuestion(tree *parse.Node) (whQuestion, bool) {
	clause, ok := questionClause(tree)
	if !ok {
		return whQuestion{}, false
	}
	q := whQuestion{phrase: whPhrase(clause), body: clauseBody(clause)}
	if leaf, ok := whWordLeaf.Match(q.phrase); ok {
		q.word = strings.ToLower(leaf.Word)
	}
	return q, true
}

func isVerb(n *parse.Node) bool {
	return n.IsLeaf() && (n.HasPrefixLabel("VB") || n.Label == "MD")
}

func isNoun(n *parse.Node) bool {
	return n.IsLeaf() && n.HasPrefixLabel("NN")
}

func (e *Env) isBe(n *parse.Node) bool {
	return isVerb(n) && e.Assoc.DescribesRelation(n.Word, e.Copula)
}

// relationOf resolves a verb or participle leaf to a non-copular relation.
func (e *Env) relationOf(n *parse.Node) (graph.Relation, bool) {
	if !n.IsLeaf() || e.isBe(n) {
		return graph.Relation{}, false
	}
	if !isVerb(n) && !n.HasPrefixLabel("JJ") {
		return graph.Relation{}, false
	}
	return e.Assoc.RelationFor(n.Word)
}

func (e *Env) nounEntity(n *parse.Node) (graph.Entity, bool) {
	if !isNoun(n) {
		return 0, false
	}
	es := e.Assoc.EntitiesFor(n.Word)
	if len(es) == 0 {
		return 0, false
	}
	return es[0], true
}

// firstEntity returns the first noun under n naming an entity.
func (e *Env) firstEntity(n *parse.Node) (graph.Entity, bool) {
	for _, l := range n.Leaves() {
		if ent, ok := e.nounEntity(l); ok {
			return ent, true
		}
	}
	return 0, false
}

// beSplit is a constituent following a form of "be" under a common parent.
type beSplit struct {
	parent *parse.Node
	be     *parse.Node
	target *parse.Node
}

// afterBe finds, in n or below it, the first child labeled label that
// follows a form of "be" among its siblings.
func (e *Env) afterBe(n *parse.Node, label string) (beSplit, bool) {
	var out beSplit
	found := false
	n.Walk(func(x *parse.Node) bool {
		var seen *parse.Node
		for _, c := range x.Children {
			if seen == nil && e.isBe(c) {
				seen = c
				continue
			}
			if seen != nil && c.Label == label {
				out, found = beSplit{parent: x, be: seen, target: c}, true
				return false
			}
		}
		return true
	})
	return out, found
}

// qualifier is the prepositional indirect object of a noun phrase.
type qualifier struct {
	preposition string
	entity      graph.Entity
}

// nounPhrase is what the matchers need from an NP: its head entity, an
// optional "of the earl" / "the earl's" qualifier, and an optional relative
// clause ("the person that killed the earl").
type nounPhrase struct {
	head     graph.Entity
	ok       bool
	qual     *qualifier
	relative *parse.Node
}

func (e *Env) analyzeNP(np *parse.Node) nounPhrase {
	var out nounPhrase
	if np == nil || np.IsLeaf() {
		return out
	}

	rest := np.Children
	if first := np.Children[0]; first.Label == parse.LabelNP && !first.IsLeaf() {
		if isPossessive(first) {
			if owner, ok := e.directHead(first); ok {
				out.qual = &qualifier{preposition: "of", entity: owner}
			}
			out.head, out.ok = e.directHead(np)
		} else {
			inner := e.analyzeNP(first)
			out.head, out.ok, out.relative = inner.head, inner.ok, inner.relative
			out.qual = inner.qual
		}
		rest = np.Children[1:]
	} else {
		out.head, out.ok = e.directHead(np)
	}

	for _, c := range rest {
		switch c.Label {
		case parse.LabelPP:
			if out.qual != nil {
				continue
			}
			if qual, ok := e.qualifierOf(c); ok {
				out.qual = qual
			}
		case parse.LabelSBAR:
			if out.relative == nil {
				out.relative = c
			}
		}
	}
	if !out.ok && out.qual == nil && out.relative == nil {
		out.head, out.ok = e.firstEntity(np)
	}
	return out
}

// directHead is the last noun among np's own children naming an entity.
func (e *Env) directHead(np *parse.Node) (graph.Entity, bool) {
	var head graph.Entity
	found := false
	for _, c := range np.Children {
		if ent, ok := e.nounEntity(c); ok {
			head, found = ent, true
		}
	}
	return head, found
}

func isPossessive(np *parse.Node) bool {
	n := len(np.Children)
	return n > 0 && np.Children[n-1].Label == parse.LabelPOS
}

// prepPhrase splits a PP into its lowercased preposition and object.
func (e *Env) prepPhrase(pp *parse.Node) (string, nounPhrase, bool) {
	var prep string
	var obj nounPhrase
	for _, c := range pp.Children {
		switch {
		case c.IsLeaf() && (c.Label == "IN" || c.Label == "TO"):
			prep = strings.ToLower(c.Word)
		case c.Label == parse.LabelNP:
			obj = e.analyzeNP(c)
		}
	}
	return prep, obj, prep != ""
}

// qualifierOf reads a PP such as "of the earl" as a qualifier.
func (e *Env) qualifierOf(pp *parse.Node) (*qualifier, bool) {
	prep, obj, ok := e.prepPhrase(pp)
	if !ok || !obj.ok {
		return nil, false
	}
	return &qualifier{preposition: prep, entity: obj.head}, true
}

// agent returns the "by the actress" agent among n's PP children.
func (e *Env) agent(n *parse.Node) (graph.Entity, bool) {
	for _, c := range n.Children {
		if c.Label != parse.LabelPP {
			continue
		}
		if prep, obj, ok := e.prepPhrase(c); ok && prep == "by" && obj.ok {
			return obj.head, true
		}
	}
	return 0, false
}

// headVerb returns the first verb leaf among vp's children resolving to a
// non-copular relation.
func (e *Env) headVerb(vp *parse.Node) (*parse.Node, graph.Relation, bool) {
	for _, c := range vp.Children {
		if r, ok := e.relationOf(c); ok {
			return c, r, true
		}
	}
	return nil, graph.Relation{}, false
}

// participle returns the first participle or adjective under adjp that names
// a relation.
func (e *Env) participle(adjp *parse.Node) (*parse.Node, graph.Relation, bool) {
	for _, l := range adjp.Leaves() {
		if r, ok := e.relationOf(l); ok {
			return l, r, true
		}
	}
	return nil, graph.Relation{}, false
}

// clauseParts splits a clause into its leading auxiliary, subject NP, and
// the remaining constituents.
type clauseParts struct {
	aux     *parse.Node
	subject *parse.Node
	vp      *parse.Node
	np2     *parse.Node // second NP: "is the actress [the murderer]"
	pp      *parse.Node
	adjp    *parse.Node
}

func splitClause(n *parse.Node) clauseParts {
	var p clauseParts
	for i, c := range n.Children {
		switch {
		case i == 0 && isVerb(c):
			p.aux = c
		case c.Label == parse.LabelNP && p.subject == nil:
			p.subject = c
		case c.Label == parse.LabelNP && p.np2 == nil:
			p.np2 = c
		case c.Label == parse.LabelVP && p.vp == nil:
			p.vp = c
		case c.Label == parse.LabelPP && p.pp == nil:
			p.pp = c
		case c.Label == parse.LabelADJP && p.adjp == nil:
			p.adjp = c
		}
	}
	return p
}

func childNP(n *parse.Node) *parse.Node {
	c, _ := n.ChildLabeled(parse.LabelNP)
	return c
}

// sentence renders words as one sentence: clitics and punctuation attach
// to the previous word, the first letter is capitalized and a full stop is
// added.
func sentence(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		for _, w := range strings.Fields(part) {
			if w == "?" || w == "." {
				continue
			}
			if b.Len() > 0 && !attaches(w) {
				b.WriteByte(' ')
			}
			b.WriteString(w)
		}
	}
	s := b.String()
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r) + "."
}

func attaches(w string) bool {
	return strings.HasPrefix(w, "'") || w == "n't" || w == "," || w == ";"
}

func lowerWords(n *parse.Node) string {
	if n == nil {
		return ""
	}
	return strings.ToLower(strings.Join(n.Words(), " "))
}

func lowerWord(n *parse.Node) string {
	if n == nil {
		return ""
	}
	return strings.ToLower(n.Word)
}

// listNames renders answer names as "the actress", "the actress and the
// butler", "the actress, the butler and the earl".
func listNames(names []string) string {
	the := make([]string, len(names))
	for i, n := range names {
		the[i] = "the " + strings.ReplaceAll(n, "_", " ")
	}
	switch len(the) {
	case 0:
		return ""
	case 1:
		return the[0]
	default:
		return strings.Join(the[:len(the)-1], ", ") + " and " + the[len(the)-1]
	}
}
