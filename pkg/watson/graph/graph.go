// Package graph holds the story's fact base: a fixed vocabulary of entities
// and predicates, and an immutable, insertion-ordered set of triples over it.
package graph

import (
	"github.com/cognicore/watson/pkg/watson/internalerr"
)

// Indirect is a prepositional indirect object: the "of the earl" in
// "the actress is the murderer of the earl".
type Indirect struct {
	Preposition string
	Entity      Entity
}

// Triple is one fact.
type Triple struct {
	Subject  Entity
	Relation Relation
	Object   Entity
	Indirect *Indirect // nil when the fact has no indirect object
}

// HasIndirect reports whether t carries an indirect object equal to ind.
func (t Triple) HasIndirect(preposition string, e Entity) bool {
	return t.Indirect != nil && t.Indirect.Preposition == preposition && t.Indirect.Entity == e
}

// Graph is an immutable set of triples bounded by a vocabulary. Lookups by
// subject and by direct object are indexed; every other query is a scan.
type Graph struct {
	entityCount    int
	predicateCount int
	triples        []Triple
	bySubject      map[Entity][]int
	byObject       map[Entity][]int
}

// New validates triples against the vocabulary bounds and returns the graph.
// Any reference outside the vocabulary rejects the whole graph.
func New(entityCount, predicateCount int, triples []Triple) (*Graph, error) {
	g := &Graph{
		entityCount:    entityCount,
		predicateCount: predicateCount,
		triples:        make([]Triple, 0, len(triples)),
		bySubject:      make(map[Entity][]int),
		byObject:       make(map[Entity][]int),
	}
	for i, t := range triples {
		if err := g.check(t); err != nil {
			return nil, internalerr.Wrapf(err, "triple %d", i)
		}
		if t.Indirect != nil {
			ind := *t.Indirect
			t.Indirect = &ind
		}
		t.Relation = Relation{name: t.Relation.name, preds: t.Relation.Predicates()}
		g.bySubject[t.Subject] = append(g.bySubject[t.Subject], len(g.triples))
		g.byObject[t.Object] = append(g.byObject[t.Object], len(g.triples))
		g.triples = append(g.triples, t)
	}
	return g, nil
}

func (g *Graph) check(t Triple) error {
	if !g.validEntity(t.Subject) {
		return internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "subject %d", t.Subject)
	}
	if !g.validEntity(t.Object) {
		return internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "object %d", t.Object)
	}
	if !t.Relation.valid(g.predicateCount) {
		return internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "relation %v", t.Relation.preds)
	}
	if t.Indirect != nil && !g.validEntity(t.Indirect.Entity) {
		return internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "indirect object %d", t.Indirect.Entity)
	}
	return nil
}

func (g *Graph) validEntity(e Entity) bool { return int(e) < g.entityCount }

// EntityCount returns the entity vocabulary size.
func (g *Graph) EntityCount() int { return g.entityCount }

// PredicateCount returns the predicate vocabulary size.
func (g *Graph) PredicateCount() int { return g.predicateCount }

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns the triples in insertion order. The slice is shared;
// callers must not modify it.
func (g *Graph) Triples() []Triple { return g.triples }

// WithSubject calls fn for each triple whose subject is e, in insertion
// order, until fn returns false.
func (g *Graph) WithSubject(e Entity, fn func(Triple) bool) {
	for _, i := range g.bySubject[e] {
		if !fn(g.triples[i]) {
			return
		}
	}
}

// WithObject calls fn for each triple whose direct object is e, in insertion
// order, until fn returns false.
func (g *Graph) WithObject(e Entity, fn func(Triple) bool) {
	for _, i := range g.byObject[e] {
		if !fn(g.triples[i]) {
			return
		}
	}
}
