package graph

import (
	"strings"

	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/lexicon"
)

// Kind classifies an entity for who/what filtering.
type Kind int

const (
	KindThing Kind = iota
	KindPerson
)

func (k Kind) String() string {
	if k == KindPerson {
		return "person"
	}
	return "thing"
}

// Associations maps entity and predicate ids to their surface names and
// answers word-identity questions through a thesaurus.
type Associations struct {
	entityNames    []string
	entityKinds    []Kind
	predicateNames []string
	families       map[string]Relation
	thesaurus      lexicon.Thesaurus
}

// NewAssociations builds the vocabulary from entity and predicate names.
// Names are case-insensitive and must be unique within their vocabulary.
// A nil thesaurus restricts identity checks to exact matches.
func NewAssociations(entities, predicates []string, th lexicon.Thesaurus) (*Associations, error) {
	a := &Associations{
		entityNames:    make([]string, len(entities)),
		entityKinds:    make([]Kind, len(entities)),
		predicateNames: make([]string, len(predicates)),
		families:       make(map[string]Relation),
		thesaurus:      th,
	}
	if err := fillNames(a.entityNames, entities, "entity"); err != nil {
		return nil, err
	}
	if err := fillNames(a.predicateNames, predicates, "predicate"); err != nil {
		return nil, err
	}
	return a, nil
}

func fillNames(dst, src []string, what string) error {
	seen := make(map[string]bool, len(src))
	for i, name := range src {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "%s %d has no name", what, i)
		}
		if seen[name] {
			return internalerr.Wrapf(internalerr.ErrDuplicate, "%s %q", what, name)
		}
		seen[name] = true
		dst[i] = name
	}
	return nil
}

// EntityCount returns the size of the entity vocabulary.
func (a *Associations) EntityCount() int { return len(a.entityNames) }

// PredicateCount returns the size of the predicate vocabulary.
func (a *Associations) PredicateCount() int { return len(a.predicateNames) }

// Thesaurus returns the lexical database used for identity checks.
func (a *Associations) Thesaurus() lexicon.Thesaurus { return a.thesaurus }

// SetKind classifies an entity.
func (a *Associations) SetKind(e Entity, k Kind) error {
	if int(e) >= len(a.entityKinds) {
		return internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "entity %d", e)
	}
	a.entityKinds[e] = k
	return nil
}

// KindOf returns the entity's kind. Unknown ids are things.
func (a *Associations) KindOf(e Entity) Kind {
	if int(e) >= len(a.entityKinds) {
		return KindThing
	}
	return a.entityKinds[e]
}

// AddFamily registers a named predicate family so it can be referenced by
// name when authoring facts.
func (a *Associations) AddFamily(name string, predicates ...string) (Relation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || len(predicates) == 0 {
		return Relation{}, internalerr.Wrapf(internalerr.ErrInvalidInput, "family %q needs a name and predicates", name)
	}
	if _, ok := a.predicateIndex(name); ok {
		return Relation{}, internalerr.Wrapf(internalerr.ErrDuplicate, "family %q shadows a predicate", name)
	}
	if _, ok := a.families[name]; ok {
		return Relation{}, internalerr.Wrapf(internalerr.ErrDuplicate, "family %q", name)
	}

	ids := make([]Predicate, 0, len(predicates))
	for _, p := range predicates {
		id, ok := a.predicateIndex(p)
		if !ok {
			return Relation{}, internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "family %q: unknown predicate %q", name, p)
		}
		ids = append(ids, id)
	}
	r := Family(name, ids...)
	a.families[name] = r
	return r, nil
}

// NameOf returns the entity's surface name.
func (a *Associations) NameOf(e Entity) string {
	if int(e) >= len(a.entityNames) {
		return ""
	}
	return a.entityNames[e]
}

// PredicateName returns the predicate's surface name.
func (a *Associations) PredicateName(p Predicate) string {
	if int(p) >= len(a.predicateNames) {
		return ""
	}
	return a.predicateNames[p]
}

// RelationName returns the family name, or the predicate name of a single
// relation.
func (a *Associations) RelationName(r Relation) string {
	if r.IsFamily() {
		return r.FamilyName()
	}
	if len(r.preds) == 1 {
		return a.PredicateName(r.preds[0])
	}
	return ""
}

// Names resolves entity ids to names, preserving order.
func (a *Associations) Names(entities []Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = a.NameOf(e)
	}
	return out
}

// EntityByName looks an entity up by its exact (case-insensitive) name.
func (a *Associations) EntityByName(name string) (Entity, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range a.entityNames {
		if n == name {
			return Entity(i), true
		}
	}
	return 0, false
}

// RelationByName resolves a predicate or family name.
func (a *Associations) RelationByName(name string) (Relation, bool) {
	if id, ok := a.predicateIndex(name); ok {
		return Single(id), true
	}
	r, ok := a.families[strings.ToLower(strings.TrimSpace(name))]
	return r, ok
}

func (a *Associations) predicateIndex(name string) (Predicate, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range a.predicateNames {
		if n == name {
			return Predicate(i), true
		}
	}
	return 0, false
}

// Describes reports whether word names the entity, directly or as a synonym.
func (a *Associations) Describes(word string, e Entity) bool {
	return lexicon.Same(a.thesaurus, word, a.NameOf(e))
}

// DescribesRelation reports whether word names any predicate of r.
func (a *Associations) DescribesRelation(word string, r Relation) bool {
	for _, p := range r.preds {
		if lexicon.Same(a.thesaurus, word, a.PredicateName(p)) {
			return true
		}
	}
	return false
}

// EntitiesFor returns every entity the word describes, exact names first.
func (a *Associations) EntitiesFor(word string) []Entity {
	if e, ok := a.EntityByName(word); ok {
		return []Entity{e}
	}
	var out []Entity
	for i := range a.entityNames {
		if a.Describes(word, Entity(i)) {
			out = append(out, Entity(i))
		}
	}
	return out
}

// RelationFor returns the single-predicate relation the word names. Exact
// predicate names win over synonyms.
func (a *Associations) RelationFor(word string) (Relation, bool) {
	if id, ok := a.predicateIndex(word); ok {
		return Single(id), true
	}
	for i := range a.predicateNames {
		if lexicon.Same(a.thesaurus, word, a.predicateNames[i]) {
			return Single(Predicate(i)), true
		}
	}
	return Relation{}, false
}
