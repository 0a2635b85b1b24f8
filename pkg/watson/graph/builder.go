package graph

import (
	"strings"

	"github.com/cognicore/watson/pkg/watson/internalerr"
)

// Builder assembles a graph from authored facts written with surface names.
// The first unknown name is remembered and returned by Build.
type Builder struct {
	assoc   *Associations
	triples []Triple
	err     error
}

// NewBuilder starts a graph over the vocabulary of a.
func NewBuilder(a *Associations) *Builder {
	return &Builder{assoc: a}
}

// Add records subject-relation-object. relation may name a predicate or a
// registered family.
func (b *Builder) Add(subject, relation, object string) *Builder {
	b.add(subject, relation, object, nil)
	return b
}

// AddIndirect records a fact with a prepositional indirect object, as in
// AddIndirect("actress", "be", "murderer", "of", "earl").
func (b *Builder) AddIndirect(subject, relation, object, preposition, indirect string) *Builder {
	e, ok := b.entity(indirect)
	if !ok {
		return b
	}
	b.add(subject, relation, object, &Indirect{
		Preposition: strings.ToLower(strings.TrimSpace(preposition)),
		Entity:      e,
	})
	return b
}

func (b *Builder) add(subject, relation, object string, ind *Indirect) {
	s, ok := b.entity(subject)
	if !ok {
		return
	}
	o, ok := b.entity(object)
	if !ok {
		return
	}
	r, ok := b.assoc.RelationByName(relation)
	if !ok {
		b.fail(internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "unknown relation %q", relation))
		return
	}
	b.triples = append(b.triples, Triple{Subject: s, Relation: r, Object: o, Indirect: ind})
}

func (b *Builder) entity(name string) (Entity, bool) {
	e, ok := b.assoc.EntityByName(name)
	if !ok {
		b.fail(internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "unknown entity %q", name))
	}
	return e, ok
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build validates the collected facts and returns the graph.
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.assoc.EntityCount(), b.assoc.PredicateCount(), b.triples)
}
