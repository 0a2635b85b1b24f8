package matcher

import (
	"github.com/cognicore/watson/pkg/watson/graph"
	"github.com/cognicore/watson/pkg/watson/parse"
	"github.com/cognicore/watson/pkg/watson/pattern"
)

// yesNo holds an inverted question clause: "Is | the actress | the
// murderer ?".
type yesNo struct {
	clause *parse.Node
	parts  clauseParts
}

var (
	invertedClause    = pattern.First(pattern.Child(pattern.Top(), pattern.Branch(parse.LabelSQ)))
	declarativeClause = pattern.First(pattern.Child(pattern.Top(), pattern.Branch(parse.LabelS)))
)

func (e *Env) yesNo(tree *parse.Node) (yesNo, graph.Entity, bool) {
	sq, ok := invertedClause.Match(tree)
	if !ok {
		return yesNo{}, 0, false
	}
	parts := splitClause(sq)
	if parts.aux == nil || parts.subject == nil {
		return yesNo{}, 0, false
	}
	subject := e.analyzeNP(parts.subject)
	if !subject.ok {
		return yesNo{}, 0, false
	}
	return yesNo{clause: sq, parts: parts}, subject.head, true
}

// restate turns the question back into a statement: "Yes, the actress is
// the murderer." or "No, the earl is not the murderer."
func (y yesNo) restate(value bool) string {
	var rest []string
	seenSubject := false
	for _, c := range y.clause.Children {
		switch {
		case c == y.parts.aux || c.Label == ".":
		case c == y.parts.subject:
			seenSubject = true
		case seenSubject:
			rest = append(rest, lowerWords(c))
		}
	}
	head := []string{"yes,", lowerWords(y.parts.subject), lowerWord(y.parts.aux)}
	if !value {
		head = []string{"no,", lowerWords(y.parts.subject), lowerWord(y.parts.aux), "not"}
	}
	return sentence(append(head, rest...)...)
}

var containerPrepositions = map[string]bool{"in": true, "inside": true, "at": true, "within": true}

// booleanLocative answers "is the actress in the house?" through the
// transitive containment chain.
func (e *Env) booleanLocative(tree *parse.Node) Outcome {
	y, subject, ok := e.yesNo(tree)
	if !ok || y.parts.pp == nil {
		return NoMatch()
	}
	prep, container, ok := e.prepPhrase(y.parts.pp)
	if !ok || !containerPrepositions[prep] || !container.ok {
		return NoMatch()
	}
	value := e.Query.Within(subject, container.head)
	return boolean(value, y.restate(value))
}

// booleanRelativeClause answers "is the actress the person that killed the
// earl?" and "is the earl the person that the actress killed?".
func (e *Env) booleanRelativeClause(tree *parse.Node) Outcome {
	y, subject, ok := e.yesNo(tree)
	if !ok {
		return NoMatch()
	}
	np := e.analyzeNP(y.parts.np2)
	if np.relative == nil {
		return NoMatch()
	}
	body := clauseBody(np.relative)
	if body == nil {
		return NoMatch()
	}
	parts := splitClause(body)
	if parts.vp == nil {
		return NoMatch()
	}
	_, rel, ok := e.headVerb(parts.vp)
	if !ok {
		return NoMatch()
	}

	var value bool
	if parts.subject == nil {
		object := e.analyzeNP(childNP(parts.vp))
		if !object.ok {
			return NoMatch()
		}
		value = e.Query.Holds(subject, rel, object.head)
	} else {
		actor := e.analyzeNP(parts.subject)
		if !actor.ok {
			return NoMatch()
		}
		value = e.Query.Holds(actor.head, rel, subject)
	}
	return boolean(value, y.restate(value))
}

// booleanCopular answers "is the actress the murderer?" and "is the actress
// the murderer of the earl?", with the qualifier inside the noun phrase or
// beside it.
func (e *Env) booleanCopular(tree *parse.Node) Outcome {
	y, subject, ok := e.yesNo(tree)
	if !ok {
		return NoMatch()
	}
	np := e.analyzeNP(y.parts.np2)
	if !np.ok {
		return NoMatch()
	}
	if np.qual == nil && y.parts.pp != nil {
		np.qual, _ = e.qualifierOf(y.parts.pp)
	}
	value := e.copulaHolds(subject, np)
	return boolean(value, y.restate(value))
}

func (e *Env) copulaHolds(subject graph.Entity, np nounPhrase) bool {
	if np.qual != nil {
		return e.Query.HoldsWithIndirect(subject, e.Copula, np.head, np.qual.preposition, np.qual.entity)
	}
	return e.Query.Holds(subject, e.Copula, np.head)
}

// passiveHolds decides "patient was <rel> [by agent]".
func (e *Env) passiveHolds(patient graph.Entity, rel graph.Relation, agent graph.Entity, hasAgent bool) bool {
	if hasAgent {
		return e.Query.Holds(agent, rel, patient)
	}
	return len(e.Query.SubjectsOf(rel, patient)) > 0
}

// booleanPassiveAdjective answers "is the belonging owned by the earl?"
// when the participle is parsed as an adjective phrase.
func (e *Env) booleanPassiveAdjective(tree *parse.Node) Outcome {
	y, patient, ok := e.yesNo(tree)
	if !ok || y.parts.adjp == nil {
		return NoMatch()
	}
	_, rel, ok := e.participle(y.parts.adjp)
	if !ok {
		return NoMatch()
	}
	agent, hasAgent := e.agent(y.parts.adjp)
	value := e.passiveHolds(patient, rel, agent, hasAgent)
	return boolean(value, y.restate(value))
}

// booleanPassive answers "was the earl killed?" and "was the earl killed by
// the actress?".
func (e *Env) booleanPassive(tree *parse.Node) Outcome {
	y, patient, ok := e.yesNo(tree)
	if !ok || y.parts.vp == nil {
		return NoMatch()
	}
	verb, rel, ok := e.headVerb(y.parts.vp)
	if !ok || !isParticiple(verb) {
		return NoMatch()
	}
	agent, hasAgent := e.agent(y.parts.vp)
	value := e.passiveHolds(patient, rel, agent, hasAgent)
	return boolean(value, y.restate(value))
}

// booleanActive answers "did the actress kill the earl?" and "does the earl
// own the belongings?".
func (e *Env) booleanActive(tree *parse.Node) Outcome {
	y, subject, ok := e.yesNo(tree)
	if !ok || y.parts.vp == nil {
		return NoMatch()
	}
	_, rel, ok := e.headVerb(y.parts.vp)
	if !ok {
		return NoMatch()
	}

	var value bool
	if np := childNP(y.parts.vp); np != nil {
		object := e.analyzeNP(np)
		if !object.ok {
			return NoMatch()
		}
		value = e.Query.Holds(subject, rel, object.head)
	} else {
		value = len(e.Query.ObjectsOf(subject, rel)) > 0
	}
	return boolean(value, y.restate(value))
}

// booleanDeclarative answers statements asked as questions: "the actress
// killed the earl?", "the earl was killed by the actress?" and "the actress
// is the murderer?".
func (e *Env) booleanDeclarative(tree *parse.Node) Outcome {
	s, ok := declarativeClause.Match(tree)
	if !ok {
		return NoMatch()
	}
	parts := splitClause(s)
	if parts.subject == nil || parts.vp == nil {
		return NoMatch()
	}
	subject := e.analyzeNP(parts.subject)
	if !subject.ok {
		return NoMatch()
	}

	value, ok := e.declaration(subject.head, parts.vp)
	if !ok {
		return NoMatch()
	}
	if value {
		return boolean(true, sentence("yes,", lowerWords(s)))
	}
	return boolean(false, sentence("no, it is not true that", lowerWords(s)))
}

// declaration evaluates the predicate of a declarative clause.
func (e *Env) declaration(subject graph.Entity, vp *parse.Node) (bool, bool) {
	if len(vp.Children) > 1 && e.isBe(vp.Children[0]) {
		pred := splitClause(vp)
		switch {
		case pred.subject != nil:
			np := e.analyzeNP(pred.subject)
			if !np.ok {
				return false, false
			}
			return e.copulaHolds(subject, np), true
		case pred.vp != nil:
			verb, rel, ok := e.headVerb(pred.vp)
			if !ok || !isParticiple(verb) {
				return false, false
			}
			agent, hasAgent := e.agent(pred.vp)
			return e.passiveHolds(subject, rel, agent, hasAgent), true
		case pred.adjp != nil:
			_, rel, ok := e.participle(pred.adjp)
			if !ok {
				return false, false
			}
			agent, hasAgent := e.agent(pred.adjp)
			return e.passiveHolds(subject, rel, agent, hasAgent), true
		}
		return false, false
	}

	_, rel, ok := e.headVerb(vp)
	if !ok {
		return false, false
	}
	object := e.analyzeNP(childNP(vp))
	if !object.ok {
		return false, false
	}
	return e.Query.Holds(subject, rel, object.head), true
}
