// Package orchestrator turns a question into an answer: it parses the
// sentence, runs the matchers in priority order, keeps the first outcome
// that is not NoMatch, filters entity answers by the question word and
// renders the response sentence.
package orchestrator

import (
	"go.uber.org/zap"

	"github.com/cognicore/watson/pkg/watson/graph"
	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/matcher"
	"github.com/cognicore/watson/pkg/watson/parse"
)

// NoAnswerResponse is the response when no matcher recognizes a question.
const NoAnswerResponse = "I don't understand the question."

// Kind discriminates results.
type Kind int

const (
	KindNoAnswer Kind = iota
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
		return "no answer"
	}
}

// Result is the answer to one question. Entities are resolved to Names so
// that callers never need raw ids.
type Result struct {
	Kind     Kind
	Matcher  string
	Entities []graph.Entity
	Names    []string
	Value    bool
	Response string
}

// Options configures an Orchestrator.
type Options struct {
	Env    *matcher.Env
	Parser parse.Parser
	// Matchers overrides the default matcher set. Order is priority.
	Matchers []matcher.Matcher
	Logger   *zap.SugaredLogger
}

// Orchestrator answers questions against one knowledge view. It holds no
// mutable state, so one value may serve concurrent callers.
type Orchestrator struct {
	env      *matcher.Env
	parser   parse.Parser
	matchers []matcher.Matcher
	logger   *zap.SugaredLogger
}

// New validates opts and builds an Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.Env == nil || opts.Env.Assoc == nil || opts.Env.Query == nil {
		return nil, internalerr.Wrap(internalerr.ErrInvalidInput, "orchestrator needs associations and a query")
	}
	matchers := opts.Matchers
	if len(matchers) == 0 {
		matchers = matcher.Default(opts.Env)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Orchestrator{
		env:      opts.Env,
		parser:   opts.Parser,
		matchers: matchers,
		logger:   logger,
	}, nil
}

// Ask parses question and answers it. Only a parser failure is an error;
// an unrecognized question is a KindNoAnswer result.
func (o *Orchestrator) Ask(question string) (Result, error) {
	if o.parser == nil {
		return Result{}, internalerr.Wrap(internalerr.ErrNoParse, "no parser configured")
	}
	tree, err := o.parser.Parse(question)
	if err != nil {
		return Result{}, internalerr.Wrapf(err, "parse %q", question)
	}
	if tree == nil {
		return Result{}, internalerr.Wrapf(internalerr.ErrNoParse, "parser returned no tree for %q", question)
	}
	return o.Answer(tree), nil
}

// Answer runs the matchers over an already parsed tree. Exactly one
// matcher's outcome is used. A nil tree gets no answer.
func (o *Orchestrator) Answer(tree *parse.Node) Result {
	if tree == nil {
		o.logger.Debugw("No tree to answer")
		return Result{Kind: KindNoAnswer, Response: NoAnswerResponse}
	}
	for _, m := range o.matchers {
		out := m.TryMatch(tree)
		if !out.Matched() {
			continue
		}
		o.logger.Debugw("Matcher accepted question",
			"matcher", m.Name(),
			"kind", out.Kind.String())
		return o.result(out)
	}

	o.logger.Debugw("No matcher accepted question", "tree", tree.String())
	return Result{Kind: KindNoAnswer, Response: NoAnswerResponse}
}

func (o *Orchestrator) result(out matcher.Outcome) Result {
	if out.Kind == matcher.KindBoolean {
		return Result{
			Kind:     KindBoolean,
			Matcher:  out.Matcher,
			Value:    out.Value,
			Response: out.Response,
		}
	}

	kept := o.filter(out.WH, out.Entities)
	if len(kept) != len(out.Entities) {
		o.logger.Debugw("Filtered answers by question word",
			"wh", out.WH,
			"before", len(out.Entities),
			"after", len(kept))
	}
	names := o.env.Assoc.Names(kept)
	return Result{
		Kind:     KindEntities,
		Matcher:  out.Matcher,
		Entities: kept,
		Names:    names,
		Response: out.Respond(names),
	}
}

// filter keeps people for "who" questions and things for "what" questions.
// Other question words pass every answer through.
func (o *Orchestrator) filter(wh string, es []graph.Entity) []graph.Entity {
	var want graph.Kind
	switch wh {
	case "who", "whom", "whose":
		want = graph.KindPerson
	case "what", "which":
		want = graph.KindThing
	default:
		return es
	}
	kept := make([]graph.Entity, 0, len(es))
	for _, e := range es {
		if o.env.Assoc.KindOf(e) == want {
			kept = append(kept, e)
		}
	}
	return kept
}
