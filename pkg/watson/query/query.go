// Package query answers read-only questions against a fact graph.
//
// A triple answers a query relation when the triple's relation contains it:
// a fact authored with the "harm" family {kill, poison} answers questions
// about killing and about poisoning, while a fact authored with "kill" does
// not answer a question about "harm".
package query

import (
	"github.com/cognicore/watson/pkg/watson/graph"
)

// Query is a read-only view over one graph.
type Query struct {
	g        *graph.Graph
	contains graph.Relation
}

// New creates a query surface. contains is the relation family used for
// locative questions ("study contains actress").
func New(g *graph.Graph, contains graph.Relation) *Query {
	return &Query{g: g, contains: contains}
}

// Graph returns the graph being queried.
func (q *Query) Graph() *graph.Graph { return q.g }

// ObjectsOf returns the direct objects of subject under relation, in fact
// order, without duplicates.
func (q *Query) ObjectsOf(subject graph.Entity, relation graph.Relation) []graph.Entity {
	var out entitySet
	q.g.WithSubject(subject, func(t graph.Triple) bool {
		if t.Relation.Contains(relation) {
			out.add(t.Object)
		}
		return true
	})
	return out.list
}

// SubjectsOf returns the subjects holding relation to directObject.
func (q *Query) SubjectsOf(relation graph.Relation, directObject graph.Entity) []graph.Entity {
	var out entitySet
	q.g.WithObject(directObject, func(t graph.Triple) bool {
		if t.Relation.Contains(relation) {
			out.add(t.Subject)
		}
		return true
	})
	return out.list
}

// ObjectsOfAny returns every direct object of relation regardless of
// subject, answering agentless passives such as "what is poisoned".
func (q *Query) ObjectsOfAny(relation graph.Relation) []graph.Entity {
	var out entitySet
	for _, t := range q.g.Triples() {
		if t.Relation.Contains(relation) {
			out.add(t.Object)
		}
	}
	return out.list
}

// SubjectsWithIndirect resolves qualified identity questions. For
// "murderer of the earl" it returns the subjects s of facts
// (s, relation, directObject, (preposition, indirect)).
func (q *Query) SubjectsWithIndirect(relation graph.Relation, directObject graph.Entity, preposition string, indirect graph.Entity) []graph.Entity {
	var out entitySet
	q.g.WithObject(directObject, func(t graph.Triple) bool {
		if t.Relation.Contains(relation) && t.HasIndirect(preposition, indirect) {
			out.add(t.Subject)
		}
		return true
	})
	return out.list
}

// Holds reports whether (subject, relation, directObject) is a fact,
// ignoring any indirect object the fact carries.
func (q *Query) Holds(subject graph.Entity, relation graph.Relation, directObject graph.Entity) bool {
	found := false
	q.g.WithSubject(subject, func(t graph.Triple) bool {
		found = t.Object == directObject && t.Relation.Contains(relation)
		return !found
	})
	return found
}

// HoldsWithIndirect is Holds restricted to facts carrying the given indirect
// object.
func (q *Query) HoldsWithIndirect(subject graph.Entity, relation graph.Relation, directObject graph.Entity, preposition string, indirect graph.Entity) bool {
	found := false
	q.g.WithSubject(subject, func(t graph.Triple) bool {
		found = t.Object == directObject && t.Relation.Contains(relation) && t.HasIndirect(preposition, indirect)
		return !found
	})
	return found
}

// LocationOf returns the nearest container of e: the subject of the first
// containment fact whose object is e.
func (q *Query) LocationOf(e graph.Entity) (graph.Entity, bool) {
	var loc graph.Entity
	found := false
	q.g.WithObject(e, func(t graph.Triple) bool {
		if q.contains.Contains(t.Relation) {
			loc, found = t.Subject, true
		}
		return !found
	})
	return loc, found
}

// Containers walks the containment chain outwards from e, nearest first.
// Only the first container at each level is followed; cycles stop the walk.
func (q *Query) Containers(e graph.Entity) []graph.Entity {
	var chain []graph.Entity
	visited := map[graph.Entity]bool{e: true}
	for {
		next, ok := q.LocationOf(e)
		if !ok || visited[next] {
			return chain
		}
		visited[next] = true
		chain = append(chain, next)
		e = next
	}
}

// Within reports whether container transitively contains e through any
// containment path.
func (q *Query) Within(e, container graph.Entity) bool {
	return q.within(e, container, make(map[graph.Entity]bool))
}

func (q *Query) within(e, container graph.Entity, visited map[graph.Entity]bool) bool {
	if visited[e] {
		return false // cycle detection
	}
	visited[e] = true

	found := false
	q.g.WithObject(e, func(t graph.Triple) bool {
		if !q.contains.Contains(t.Relation) {
			return true
		}
		found = t.Subject == container || q.within(t.Subject, container, visited)
		return !found
	})
	return found
}

type entitySet struct {
	list []graph.Entity
	seen map[graph.Entity]bool
}

func (s *entitySet) add(e graph.Entity) {
	if s.seen == nil {
		s.seen = make(map[graph.Entity]bool)
	}
	if !s.seen[e] {
		s.seen[e] = true
		s.list = append(s.list, e)
	}
}
