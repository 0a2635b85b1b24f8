package graph

import (
	"sort"

	"github.com/cognicore/watson/pkg/watson/internalerr"
)

// HiveMind pairs the canonical graph with the narrower views individual
// characters hold of it.
type HiveMind struct {
	main  *Graph
	views map[string]*Graph
}

// NewHiveMind checks that every view is compatible with main and returns the
// combined knowledge. A view is compatible when each of its triples has a
// counterpart in main with the same subject and direct object, a covering
// indirect object, and a relation containing the view's relation.
func NewHiveMind(main *Graph, views map[string]*Graph) (*HiveMind, error) {
	if main == nil {
		return nil, internalerr.Wrap(internalerr.ErrInvalidInput, "hive mind needs a main graph")
	}
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := CheckSubgraph(views[name], main); err != nil {
			return nil, internalerr.Wrapf(err, "view %q", name)
		}
	}
	return &HiveMind{main: main, views: views}, nil
}

// Main returns the canonical graph.
func (h *HiveMind) Main() *Graph { return h.main }

// View returns the named view.
func (h *HiveMind) View(name string) (*Graph, bool) {
	g, ok := h.views[name]
	return g, ok
}

// CheckSubgraph returns nil if sub is compatible with main.
func CheckSubgraph(sub, main *Graph) error {
	if sub.entityCount != main.entityCount || sub.predicateCount != main.predicateCount {
		return internalerr.Wrapf(internalerr.ErrIncompatibleSubgraph,
			"vocabulary %dx%d differs from %dx%d",
			sub.entityCount, sub.predicateCount, main.entityCount, main.predicateCount)
	}

	for i, t := range sub.triples {
		covered := false
		main.WithSubject(t.Subject, func(m Triple) bool {
			if m.Object == t.Object && coversIndirect(m.Indirect, t.Indirect) && m.Relation.Contains(t.Relation) {
				covered = true
				return false
			}
			return true
		})
		if !covered {
			return internalerr.Wrapf(internalerr.ErrIncompatibleSubgraph,
				"triple %d (%d %v %d) has no covering fact", i, t.Subject, t.Relation.preds, t.Object)
		}
	}
	return nil
}

// coversIndirect reports whether a main fact's indirect object covers the
// view's. A view may drop the qualifier but never invent or change one.
func coversIndirect(main, view *Indirect) bool {
	if view == nil {
		return true
	}
	return main != nil && *main == *view
}
