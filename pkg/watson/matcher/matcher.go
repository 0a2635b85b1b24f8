// Package matcher recognizes the grammatical constructions of questions and
// answers them from the fact graph. Each Matcher handles one construction;
// a matcher that does not recognize a tree declines with NoMatch so the next
// one can try.
package matcher

import (
	"github.com/cognicore/watson/pkg/watson/graph"
	"github.com/cognicore/watson/pkg/watson/lexicon"
	"github.com/cognicore/watson/pkg/watson/parse"
	"github.com/cognicore/watson/pkg/watson/query"
)

// Kind discriminates outcomes.
type Kind int

const (
	KindNoMatch Kind = iota
	KindEntities
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindEntities:
		return "entities"
	case KindBoolean:
		return "boolean"
	default:
		return "no match"
	}
}

// Outcome is what a matcher makes of a tree.
type Outcome struct {
	Kind     Kind
	Matcher  string
	Entities []graph.Entity // KindEntities
	Value    bool           // KindBoolean
	Response string         // KindBoolean

	// WH is the lowercased question word of an entity question ("who",
	// "what", "where"), used to filter answers by kind.
	WH string

	respond func(names []string) string
}

// NoMatch is the outcome of a matcher that does not recognize the tree.
func NoMatch() Outcome { return Outcome{Kind: KindNoMatch} }

// Matched reports whether the matcher recognized the tree.
func (o Outcome) Matched() bool { return o.Kind != KindNoMatch }

// Respond renders the response sentence for the given answer names. Entity
// outcomes are rendered after filtering, so the sentence only mentions the
// answers that survive.
func (o Outcome) Respond(names []string) string {
	if o.Kind == KindBoolean {
		return o.Response
	}
	if len(names) == 0 || o.respond == nil {
		return "I don't know."
	}
	return o.respond(names)
}

func entities(wh string, es []graph.Entity, respond func(names []string) string) Outcome {
	if es == nil {
		es = []graph.Entity{}
	}
	return Outcome{Kind: KindEntities, Entities: es, WH: wh, respond: respond}
}

func boolean(value bool, response string) Outcome {
	return Outcome{Kind: KindBoolean, Value: value, Response: response}
}

// Matcher recognizes one question construction.
type Matcher interface {
	Name() string
	TryMatch(tree *parse.Node) Outcome
}

// Env is the read-only knowledge every matcher consults.
type Env struct {
	Assoc *graph.Associations
	Query *query.Query
	// Copula is the relation of identity statements ("be").
	Copula graph.Relation
}

func (e *Env) thesaurus() lexicon.Thesaurus { return e.Assoc.Thesaurus() }

// matcherFunc pairs a construction's shape with the code that extracts its
// arguments and consults the graph.
type matcherFunc struct {
	name  string
	shape shape
	fn    func(*parse.Node) Outcome
}

func (m matcherFunc) Name() string { return m.name }

func (m matcherFunc) TryMatch(tree *parse.Node) Outcome {
	if !m.shape.Matches(tree) {
		return NoMatch()
	}
	o := m.fn(tree)
	if o.Matched() {
		o.Matcher = m.name
	}
	return o
}

// Matcher names, in priority order.
const (
	NameLocative           = "locative"
	NameCopular            = "copular"
	NamePassiveAdjective   = "passive-adjective"
	NamePassiveSubject     = "passive-subject"
	NamePassiveObject      = "passive-object"
	NameActiveObject       = "active-object"
	NameActiveSubject      = "active-subject"
	NameBooleanLocative    = "boolean-locative"
	NameBooleanRelative    = "boolean-relative-clause"
	NameBooleanCopular     = "boolean-copular"
	NameBooleanPassiveAdj  = "boolean-passive-adjective"
	NameBooleanPassive     = "boolean-passive"
	NameBooleanActive      = "boolean-active"
	NameBooleanDeclarative = "boolean-declarative"
)

// Default returns the full matcher set in priority order. More specific
// constructions come first: a locative question also has the shape of a
// copular one ("where is the actress"), and a copular one contains a verb
// an active matcher would accept. WH questions and yes/no questions never
// share a shape, so their relative order does not matter.
func Default(env *Env) []Matcher {
	s := env.shapes()
	return []Matcher{
		matcherFunc{NameLocative, s.locative, env.locative},
		matcherFunc{NameCopular, s.copular, env.copular},
		matcherFunc{NamePassiveAdjective, s.passiveAdjective, env.passiveAdjective},
		matcherFunc{NamePassiveSubject, s.passiveSubject, env.passiveSubject},
		matcherFunc{NamePassiveObject, s.passiveObject, env.passiveObject},
		matcherFunc{NameActiveObject, s.activeObject, env.activeObject},
		matcherFunc{NameActiveSubject, s.activeSubject, env.activeSubject},
		matcherFunc{NameBooleanLocative, s.booleanLocative, env.booleanLocative},
		matcherFunc{NameBooleanRelative, s.booleanRelative, env.booleanRelativeClause},
		matcherFunc{NameBooleanCopular, s.booleanCopular, env.booleanCopular},
		matcherFunc{NameBooleanPassiveAdj, s.booleanPassiveAdj, env.booleanPassiveAdjective},
		matcherFunc{NameBooleanPassive, s.booleanPassive, env.booleanPassive},
		matcherFunc{NameBooleanActive, s.booleanActive, env.booleanActive},
		matcherFunc{NameBooleanDeclarative, s.booleanDeclarative, env.booleanDeclarative},
	}
}
