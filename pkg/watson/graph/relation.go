package graph

import "sort"

// Entity identifies a story noun. Entities are dense indices into the
// vocabulary they were created with.
type Entity uint32

// Predicate identifies a single verb of the vocabulary.
type Predicate uint32

// Relation is either a single predicate or a named family of predicates
// ("possess" covering own and have). Both shapes answer the same queries.
type Relation struct {
	name  string      // family name, empty for single predicates
	preds []Predicate // sorted, unique
}

// Single returns the relation made of one predicate.
func Single(p Predicate) Relation {
	return Relation{preds: []Predicate{p}}
}

// Family returns a named relation covering every given predicate.
func Family(name string, preds ...Predicate) Relation {
	set := make([]Predicate, 0, len(preds))
	seen := make(map[Predicate]bool, len(preds))
	for _, p := range preds {
		if !seen[p] {
			seen[p] = true
			set = append(set, p)
		}
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return Relation{name: name, preds: set}
}

// IsFamily reports whether r was declared as a predicate family.
func (r Relation) IsFamily() bool { return r.name != "" }

// FamilyName returns the declared family name, or "" for single predicates.
func (r Relation) FamilyName() string { return r.name }

// Predicates returns the predicate set in ascending order.
func (r Relation) Predicates() []Predicate {
	out := make([]Predicate, len(r.preds))
	copy(out, r.preds)
	return out
}

// Contains reports whether every predicate of other is also a predicate of r.
// A relation contains itself; an empty relation is contained by any relation.
func (r Relation) Contains(other Relation) bool {
	i := 0
	for _, p := range other.preds {
		for i < len(r.preds) && r.preds[i] < p {
			i++
		}
		if i == len(r.preds) || r.preds[i] != p {
			return false
		}
	}
	return true
}

// Equal reports whether r and other cover the same predicates.
func (r Relation) Equal(other Relation) bool {
	return r.Contains(other) && other.Contains(r)
}

// Has reports whether p belongs to the relation.
func (r Relation) Has(p Predicate) bool {
	return r.Contains(Single(p))
}

func (r Relation) valid(predicateCount int) bool {
	if len(r.preds) == 0 {
		return false
	}
	for _, p := range r.preds {
		if int(p) >= predicateCount {
			return false
		}
	}
	return true
}
