package matcher

import (
	"github.com/cognicore/watson/pkg/watson/graph"
	"github.com/cognicore/watson/pkg/watson/parse"
)

// locative answers "where is the actress?", "where can I find the
// actress?", "what room is the actress in?" and "what is the location of
// the actress?" with the nearest container of the first entity named in
// the clause.
func (e *Env) locative(tree *parse.Node) Outcome {
	q, ok := findWHQuestion(tree)
	if !ok {
		return NoMatch()
	}
	target, ok := e.firstEntity(q.body)
	if !ok {
		return NoMatch()
	}

	var found []graph.Entity
	if loc, ok := e.Query.LocationOf(target); ok {
		found = []graph.Entity{loc}
	}
	name := e.Assoc.NameOf(target)
	return entities("where", found, func(names []string) string {
		return sentence(listNames([]string{name}), "is in", listNames(names))
	})
}

// copular answers identity questions: "who is the murderer?", "who is the
// murderer of the earl?", "who is the earl's murderer?" and "who is the
// person that killed the earl?". The "of the earl" qualifier may be parsed
// inside the noun phrase or as its sibling.
func (e *Env) copular(tree *parse.Node) Outcome {
	q, ok := findWHQuestion(tree)
	if !ok {
		return NoMatch()
	}
	split, ok := e.afterBe(q.body, parse.LabelNP)
	if !ok {
		return NoMatch()
	}

	np := e.analyzeNP(split.target)
	said := []string{lowerWords(split.target)}
	if pp := splitClause(split.parent).pp; np.ok && np.qual == nil && pp != nil {
		if qual, ok := e.qualifierOf(pp); ok {
			np.qual = qual
			said = append(said, lowerWords(pp))
		}
	}
	var found []graph.Entity
	switch {
	case np.ok && np.qual != nil:
		found = e.Query.SubjectsWithIndirect(e.Copula, np.head, np.qual.preposition, np.qual.entity)
	case np.ok:
		found = e.Query.SubjectsOf(e.Copula, np.head)
	case np.relative != nil:
		found, ok = e.relativeSubjects(np.relative)
		if !ok {
			return NoMatch()
		}
	default:
		return NoMatch()
	}
	return entities(q.word, found, func(names []string) string {
		return sentence(append([]string{listNames(names), lowerWord(split.be)}, said...)...)
	})
}

// relativeSubjects resolves a subject relative clause ("that killed the
// earl") to the entities it describes.
func (e *Env) relativeSubjects(sbar *parse.Node) ([]graph.Entity, bool) {
	body := clauseBody(sbar)
	if body == nil {
		return nil, false
	}
	vp, ok := body.ChildLabeled(parse.LabelVP)
	if !ok {
		return nil, false
	}
	_, rel, ok := e.headVerb(vp)
	if !ok {
		return nil, false
	}
	obj := e.analyzeNP(childNP(vp))
	if !obj.ok {
		return nil, false
	}
	return e.Query.SubjectsOf(rel, obj.head), true
}

// passiveAdjective answers "what is owned by the earl?" and "what is
// poisoned?", where the participle is parsed as an adjective phrase.
func (e *Env) passiveAdjective(tree *parse.Node) Outcome {
	q, ok := findWHQuestion(tree)
	if !ok {
		return NoMatch()
	}
	split, ok := e.afterBe(q.body, parse.LabelADJP)
	if !ok {
		return NoMatch()
	}
	_, rel, ok := e.participle(split.target)
	if !ok {
		return NoMatch()
	}

	agent, hasAgent := e.agent(split.target)
	if !hasAgent {
		agent, hasAgent = e.agent(split.parent)
	}
	var found []graph.Entity
	if hasAgent {
		found = e.Query.ObjectsOf(agent, rel)
	} else {
		found = e.Query.ObjectsOfAny(rel)
	}
	return entities(q.word, found, func(names []string) string {
		return sentence(listNames(names), lowerWord(split.be), lowerWords(split.target))
	})
}

func isParticiple(n *parse.Node) bool {
	return n.Label == "VBN" || n.Label == "VBD"
}

// passiveSubject asks for the agent of a passive: "by whom was the earl
// killed?" and "who was the earl killed by?".
func (e *Env) passiveSubject(tree *parse.Node) Outcome {
	q, ok := findWHQuestion(tree)
	if !ok {
		return NoMatch()
	}
	parts := splitClause(q.body)
	if parts.aux == nil || parts.subject == nil || parts.vp == nil {
		return NoMatch()
	}
	verb, rel, ok := e.headVerb(parts.vp)
	if !ok || !isParticiple(verb) {
		return NoMatch()
	}
	patient := e.analyzeNP(parts.subject)
	if !patient.ok {
		return NoMatch()
	}

	found := e.Query.SubjectsOf(rel, patient.head)
	return entities(q.word, found, func(names []string) string {
		return sentence(lowerWords(parts.subject), lowerWord(parts.aux), lowerWord(verb), "by", listNames(names))
	})
}

// passiveObject answers "who was killed by the actress?" and "who was
// killed?".
func (e *Env) passiveObject(tree *parse.Node) Outcome {
	q, ok := findWHQuestion(tree)
	if !ok {
		return NoMatch()
	}
	split, ok := e.afterBe(q.body, parse.LabelVP)
	if !ok {
		return NoMatch()
	}
	verb, rel, ok := e.headVerb(split.target)
	if !ok || !isParticiple(verb) {
		return NoMatch()
	}

	var found []graph.Entity
	if agent, ok := e.agent(split.target); ok {
		found = e.Query.ObjectsOf(agent, rel)
	} else {
		found = e.Query.ObjectsOfAny(rel)
	}
	return entities(q.word, found, func(names []string) string {
		return sentence(listNames(names), lowerWord(split.be), lowerWords(split.target))
	})
}

// activeObject answers "who did the actress kill?" and "what does the
// actress study?".
func (e *Env) activeObject(tree *parse.Node) Outcome {
	q, ok := findWHQuestion(tree)
	if !ok {
		return NoMatch()
	}
	parts := splitClause(q.body)
	if parts.aux == nil || parts.subject == nil || parts.vp == nil {
		return NoMatch()
	}
	verb, rel, ok := e.headVerb(parts.vp)
	if !ok {
		return NoMatch()
	}
	subject := e.analyzeNP(parts.subject)
	if !subject.ok {
		return NoMatch()
	}

	found := e.Query.ObjectsOf(subject.head, rel)
	return entities(q.word, found, func(names []string) string {
		return sentence(lowerWords(parts.subject), lowerWord(parts.aux), lowerWord(verb), listNames(names))
	})
}

// activeSubject answers "who killed the earl?" and "who studies
// herbology?".
func (e *Env) activeSubject(tree *parse.Node) Outcome {
	q, ok := findWHQuestion(tree)
	if !ok {
		return NoMatch()
	}
	parts := splitClause(q.body)
	if parts.vp == nil {
		return NoMatch()
	}
	_, rel, ok := e.headVerb(parts.vp)
	if !ok {
		return NoMatch()
	}
	object := e.analyzeNP(childNP(parts.vp))
	if !object.ok {
		return NoMatch()
	}

	found := e.Query.SubjectsOf(rel, object.head)
	return entities(q.word, found, func(names []string) string {
		return sentence(listNames(names), lowerWords(parts.vp))
	})
}
