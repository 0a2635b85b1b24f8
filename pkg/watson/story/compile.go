package story

import (
	"strings"

	"github.com/cognicore/watson/pkg/watson/graph"
	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/lexicon"
)

// World is a compiled story: one vocabulary, the main graph, and a checked
// view per character.
type World struct {
	Story    *Story
	Assoc    *graph.Associations
	Minds    *graph.HiveMind
	Copula   graph.Relation
	Contains graph.Relation
}

// Compile resolves every name in s against its vocabulary, builds the main
// graph and one view per character, and rejects views that assert more
// than the main graph.
func Compile(s *Story, th lexicon.Thesaurus) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, len(s.Entities))
	for i, e := range s.Entities {
		names[i] = e.Name
	}
	assoc, err := graph.NewAssociations(names, s.Predicates, th)
	if err != nil {
		return nil, err
	}
	for i, e := range s.Entities {
		if strings.EqualFold(e.Kind, KindPerson) {
			if err := assoc.SetKind(graph.Entity(i), graph.KindPerson); err != nil {
				return nil, err
			}
		}
	}
	for _, f := range s.Families {
		if _, err := assoc.AddFamily(f.Name, f.Predicates...); err != nil {
			return nil, internalerr.Wrapf(err, "family %q", f.Name)
		}
	}

	copula, ok := assoc.RelationByName(s.Copula)
	if !ok {
		return nil, internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "copula %q", s.Copula)
	}
	contains, ok := assoc.RelationByName(s.Contains)
	if !ok {
		return nil, internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "contains %q", s.Contains)
	}

	main, err := build(assoc, s.Facts)
	if err != nil {
		return nil, internalerr.Wrap(err, "main facts")
	}

	views := make(map[string]*graph.Graph, len(s.Characters))
	for _, c := range s.Characters {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if c.Location != "" {
			if _, ok := assoc.EntityByName(c.Location); !ok {
				return nil, internalerr.Wrapf(internalerr.ErrInvalidVocabulary, "character %q location %q", c.Name, c.Location)
			}
		}
		if c.KnowsAll {
			views[name] = main
			continue
		}
		view, err := build(assoc, c.Knows)
		if err != nil {
			return nil, internalerr.Wrapf(err, "character %q", c.Name)
		}
		views[name] = view
	}

	minds, err := graph.NewHiveMind(main, views)
	if err != nil {
		return nil, err
	}
	return &World{
		Story:    s,
		Assoc:    assoc,
		Minds:    minds,
		Copula:   copula,
		Contains: contains,
	}, nil
}

func build(assoc *graph.Associations, facts []Fact) (*graph.Graph, error) {
	b := graph.NewBuilder(assoc)
	for _, f := range facts {
		if f.Indirect != nil {
			b.AddIndirect(f.Subject, f.Relation, f.Object, f.Indirect.Preposition, f.Indirect.Object)
			continue
		}
		b.Add(f.Subject, f.Relation, f.Object)
	}
	return b.Build()
}

// View returns the graph the named character reasons over.
func (w *World) View(character string) (*graph.Graph, error) {
	g, ok := w.Minds.View(strings.ToLower(strings.TrimSpace(character)))
	if !ok {
		return nil, internalerr.Wrapf(internalerr.ErrUnknownCharacter, "%q", character)
	}
	return g, nil
}

// Main returns the complete graph.
func (w *World) Main() *graph.Graph { return w.Minds.Main() }

// FactStrings renders a graph's triples as "subject relation object [prep
// indirect]" lines, in fact order.
func (w *World) FactStrings(g *graph.Graph) []string {
	out := make([]string, 0, g.Len())
	for _, t := range g.Triples() {
		line := w.Assoc.NameOf(t.Subject) + " " + w.Assoc.RelationName(t.Relation) + " " + w.Assoc.NameOf(t.Object)
		if t.Indirect != nil {
			line += " " + t.Indirect.Preposition + " " + w.Assoc.NameOf(t.Indirect.Entity)
		}
		out = append(out, line)
	}
	return out
}
