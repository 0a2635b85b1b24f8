package matcher

import (
	"github.com/cognicore/watson/pkg/watson/parse"
	"github.com/cognicore/watson/pkg/watson/pattern"
)

// shape is the structural precondition of a matcher. A matcher only
// extracts arguments from trees its shape accepts.
type shape = pattern.Pattern[[]*parse.Node]

var (
	verbTag       = pattern.Or(pattern.Prefix("VB"), pattern.Branch("MD"))
	participleTag = pattern.Or(pattern.Branch("VBN"), pattern.Branch("VBD"))
	clauseTag     = pattern.Or(pattern.Branch(parse.LabelSQ), pattern.Branch(parse.LabelS))
	byWord        = pattern.Word(nil, "by")

	// whClause is the clause a WH question asks about, never a relative
	// clause.
	whClause pattern.Pattern[*parse.Node] = questionClause

	// question captures the WH phrase: WHNP, WHADVP or WHPP.
	question = pattern.Child(whClause, pattern.Where(pattern.Prefix("WH"), isBranch))

	notQuestion  = pattern.List(pattern.Not(whClause))
	questionMark = pattern.Descendant(pattern.Top(), pattern.Word(nil, "?"))

	// "(VP (VBN killed) ...)" among the node's children.
	hasPassiveVP = pattern.Flatten(pattern.Child(pattern.Any(), pattern.Child(pattern.Branch(parse.LabelVP), participleTag)))

	// "(VP (VBD killed) (NP the earl))" among the node's children.
	hasTransitiveVP = pattern.Flatten(pattern.Child(pattern.Any(), pattern.Child(pattern.Branch(parse.LabelVP), pattern.Branch(parse.LabelNP))))

	// "(VP (VB kill))" with no object among the node's children.
	hasBareVP = pattern.Flatten(pattern.Child(pattern.Any(), all(pattern.List(pattern.Branch(parse.LabelVP)), lacks(parse.LabelNP))))

	// "(NP (NP the person) (SBAR that killed the earl))" among the node's
	// children.
	hasRelativeNP = pattern.Flatten(pattern.Child(pattern.Any(), pattern.Child(pattern.Branch(parse.LabelNP), pattern.Branch(parse.LabelSBAR))))

	oneNP  = pattern.Where(has(parse.LabelNP), func(nps []*parse.Node) bool { return len(nps) == 1 })
	twoNPs = pattern.Where(has(parse.LabelNP), func(nps []*parse.Node) bool { return len(nps) >= 2 })

	// "by whom was the earl killed?"
	byWhom = pattern.Flatten(pattern.Child(whClause, pattern.Child(pattern.Branch(parse.LabelWHPP), byWord)))

	// "who was the earl killed by?": a VP ending in a "by" with no object.
	strandedBy = inBody(pattern.Flatten(pattern.Child(pattern.Any(),
		pattern.Flatten(pattern.Child(pattern.Branch(parse.LabelVP),
			all(pattern.Child(pattern.Branch(parse.LabelPP), byWord), lacks(parse.LabelNP)))))))
)

func isBranch(n *parse.Node) bool { return !n.IsLeaf() }

// all conjoins shapes on the same node.
func all(shapes ...shape) shape {
	out := shapes[0]
	for _, s := range shapes[1:] {
		out = pattern.And(out, s)
	}
	return out
}

// has captures the node's children labeled label.
func has(label string) shape {
	return pattern.Child(pattern.Any(), pattern.Branch(label))
}

func hasChild(p pattern.Pattern[*parse.Node]) shape {
	return pattern.Child(pattern.Any(), p)
}

// lacks matches a node with no child labeled label.
func lacks(label string) shape {
	return pattern.List(pattern.Not(has(label)))
}

// inBody applies s to the SQ or S body of the question clause.
func inBody(s shape) shape {
	return pattern.Flatten(pattern.Child(whClause, all(pattern.List(clauseTag), s)))
}

// belowQuestion applies s anywhere inside the question clause.
func belowQuestion(s shape) shape {
	return pattern.Flatten(pattern.Descendant(whClause, s))
}

// atRoot applies s to the clause labeled label directly under TOP.
func atRoot(label string, s shape) shape {
	return pattern.Flatten(pattern.Child(pattern.Top(), all(pattern.List(pattern.Branch(label)), s)))
}

func (e *Env) be() pattern.Pattern[*parse.Node] {
	return pattern.Where(verbTag, e.isBe)
}

func (e *Env) auxiliary() pattern.Pattern[*parse.Node] {
	return pattern.Where(verbTag, func(n *parse.Node) bool { return !e.isBe(n) })
}

var locationWords = []string{"where", "location", "whereabouts", "room", "place"}

func (e *Env) locationWord() pattern.Pattern[*parse.Node] {
	word := pattern.Word(e.thesaurus(), locationWords[0])
	for _, w := range locationWords[1:] {
		word = pattern.Or(word, pattern.Word(e.thesaurus(), w))
	}
	return word
}

// shapes holds the precondition of every matcher.
type shapes struct {
	locative         shape
	copular          shape
	passiveAdjective shape
	passiveSubject   shape
	passiveObject    shape
	activeObject     shape
	activeSubject    shape

	booleanLocative    shape
	booleanRelative    shape
	booleanCopular     shape
	booleanPassiveAdj  shape
	booleanPassive     shape
	booleanActive      shape
	booleanDeclarative shape
}

func (e *Env) shapes() shapes {
	be := hasChild(e.be())
	aux := hasChild(e.auxiliary())
	inverted := func(s shape) shape { return all(notQuestion, atRoot(parse.LabelSQ, s)) }

	return shapes{
		// "where is the actress?", "what room is the actress in?"
		locative: all(question, pattern.Descendant(whClause, e.locationWord())),

		// "who is the murderer?": be and a noun phrase, no verb phrase.
		copular: all(question, belowQuestion(all(be, has(parse.LabelNP), lacks(parse.LabelVP), lacks(parse.LabelADJP)))),

		// "what is owned by the earl?": be and a participle parsed as ADJP.
		passiveAdjective: all(question, belowQuestion(all(be, has(parse.LabelADJP), lacks(parse.LabelNP)))),

		// "by whom was the earl killed?", "who was the earl killed by?"
		passiveSubject: all(question, inBody(all(be, has(parse.LabelNP), hasPassiveVP)), pattern.Or(byWhom, strandedBy)),

		// "who was killed by the actress?"
		passiveObject: all(question, belowQuestion(all(be, hasPassiveVP, lacks(parse.LabelNP)))),

		// "who did the actress kill?"
		activeObject: all(question, inBody(all(aux, has(parse.LabelNP), hasBareVP))),

		// "who killed the earl?"
		activeSubject: all(question, inBody(all(lacks(parse.LabelNP), hasTransitiveVP))),

		booleanLocative:   inverted(all(be, oneNP, has(parse.LabelPP), lacks(parse.LabelVP))),
		booleanRelative:   inverted(all(be, twoNPs, hasRelativeNP)),
		booleanCopular:    inverted(all(be, twoNPs, lacks(parse.LabelVP))),
		booleanPassiveAdj: inverted(all(be, has(parse.LabelNP), has(parse.LabelADJP))),
		booleanPassive:    inverted(all(be, has(parse.LabelNP), hasPassiveVP)),
		booleanActive:     inverted(all(aux, has(parse.LabelNP), has(parse.LabelVP))),

		booleanDeclarative: all(notQuestion, questionMark,
			atRoot(parse.LabelS, all(has(parse.LabelNP), has(parse.LabelVP), pattern.List(pattern.Not(hasChild(verbTag)))))),
	}
}
