package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/watson/pkg/watson/graph"
	"github.com/cognicore/watson/pkg/watson/lexicon"
	"github.com/cognicore/watson/pkg/watson/parse"
	"github.com/cognicore/watson/pkg/watson/parse/treebank"
	"github.com/cognicore/watson/pkg/watson/query"
)

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	lex := lexicon.FromGroups([]lexicon.Group{
		{Canonical: "kill", Variants: []string{"killed", "kills"}},
		{Canonical: "be", Variants: []string{"is", "was", "are", "were", "am"}},
		{Canonical: "own", Variants: []string{"owns", "owned"}},
		{Canonical: "study", Variants: []string{"studies", "studied"}},
		{Canonical: "love", Variants: []string{"loves", "loved"}},
		{Canonical: "contain", Variants: []string{"contains"}},
		{Canonical: "belonging", Variants: []string{"belongings"}},
	})
	a, err := graph.NewAssociations(
		[]string{"actress", "earl", "murderer", "dave", "herbology", "study", "belonging", "house"},
		[]string{"kill", "love", "be", "study", "contain", "own"},
		lex,
	)
	require.NoError(t, err)
	for _, name := range []string{"actress", "earl", "murderer", "dave"} {
		e, _ := a.EntityByName(name)
		require.NoError(t, a.SetKind(e, graph.KindPerson))
	}

	g, err := graph.NewBuilder(a).
		Add("actress", "kill", "earl").
		Add("actress", "study", "herbology").
		AddIndirect("actress", "be", "murderer", "of", "earl").
		Add("earl", "love", "dave").
		Add("study", "contain", "actress").
		Add("house", "contain", "study").
		Add("earl", "own", "belonging").
		Build()
	require.NoError(t, err)

	contain, _ := a.RelationByName("contain")
	be, _ := a.RelationByName("be")
	return &Env{Assoc: a, Query: query.New(g, contain), Copula: be}
}

// ask runs the default matchers in order and returns the first match.
func ask(t *testing.T, env *Env, tree string) Outcome {
	t.Helper()
	root := treebank.MustRead(tree)
	for _, m := range Default(env) {
		if o := m.TryMatch(root); o.Matched() {
			return o
		}
	}
	return NoMatch()
}

func TestEntityQuestions(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		tree     string
		matcher  string
		wh       string
		want     []string
		response string
	}{
		{
			name:     "active subject",
			tree:     "(TOP (SBARQ (WHNP (WP Who)) (SQ (VP (VBD killed) (NP (DT the) (NN earl)))) (. ?)))",
			matcher:  NameActiveSubject,
			wh:       "who",
			want:     []string{"actress"},
			response: "The actress killed the earl.",
		},
		{
			name:     "active object",
			tree:     "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBD did) (NP (DT the) (NN actress)) (VP (VB kill))) (. ?)))",
			matcher:  NameActiveObject,
			wh:       "who",
			want:     []string{"earl"},
			response: "The actress did kill the earl.",
		},
		{
			name:     "active object of a thing",
			tree:     "(TOP (SBARQ (WHNP (WP What)) (SQ (VBZ does) (NP (DT the) (NN actress)) (VP (VB study))) (. ?)))",
			matcher:  NameActiveObject,
			wh:       "what",
			want:     []string{"herbology"},
			response: "The actress does study the herbology.",
		},
		{
			name:     "passive object",
			tree:     "(TOP (SBARQ (WHNP (WP Who)) (SQ (VP (VBD was) (VP (VBN killed) (PP (IN by) (NP (DT the) (NN actress)))))) (. ?)))",
			matcher:  NamePassiveObject,
			wh:       "who",
			want:     []string{"earl"},
			response: "The earl was killed by the actress.",
		},
		{
			name:     "agentless passive object",
			tree:     "(TOP (SBARQ (WHNP (WP Who)) (SQ (VP (VBD was) (VP (VBN loved)))) (. ?)))",
			matcher:  NamePassiveObject,
			wh:       "who",
			want:     []string{"dave"},
			response: "The dave was loved.",
		},
		{
			name:     "passive subject by whom",
			tree:     "(TOP (SBARQ (WHPP (IN By) (WHNP (WP whom))) (SQ (VBD was) (NP (DT the) (NN earl)) (VP (VBN killed))) (. ?)))",
			matcher:  NamePassiveSubject,
			wh:       "whom",
			want:     []string{"actress"},
			response: "The earl was killed by the actress.",
		},
		{
			name:     "passive subject stranded by",
			tree:     "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBD was) (NP (DT the) (NN earl)) (VP (VBN killed) (PP (IN by)))) (. ?)))",
			matcher:  NamePassiveSubject,
			wh:       "who",
			want:     []string{"actress"},
			response: "The earl was killed by the actress.",
		},
		{
			name:     "passive adjective",
			tree:     "(TOP (SBARQ (WHNP (WP What)) (SQ (VBZ is) (ADJP (VBN owned) (PP (IN by) (NP (DT the) (NN earl))))) (. ?)))",
			matcher:  NamePassiveAdjective,
			wh:       "what",
			want:     []string{"belonging"},
			response: "The belonging is owned by the earl.",
		},
		{
			name:     "copular",
			tree:     "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBZ is) (NP (DT the) (NN murderer))) (. ?)))",
			matcher:  NameCopular,
			wh:       "who",
			want:     []string{"actress"},
			response: "The actress is the murderer.",
		},
		{
			name:     "copular with of-qualifier",
			tree:     "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBZ is) (NP (NP (DT the) (NN murderer)) (PP (IN of) (NP (DT the) (NN earl))))) (. ?)))",
			matcher:  NameCopular,
			wh:       "who",
			want:     []string{"actress"},
			response: "The actress is the murderer of the earl.",
		},
		{
			name:     "copular with possessive",
			tree:     "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBZ is) (NP (NP (DT the) (NN earl) (POS 's)) (NN murderer))) (. ?)))",
			matcher:  NameCopular,
			wh:       "who",
			want:     []string{"actress"},
			response: "The actress is the earl's murderer.",
		},
		{
			name:     "copular with relative clause",
			tree:     "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBZ is) (NP (NP (DT the) (NN person)) (SBAR (WHNP (WDT that)) (S (VP (VBD killed) (NP (DT the) (NN earl))))))) (. ?)))",
			matcher:  NameCopular,
			wh:       "who",
			want:     []string{"actress"},
			response: "The actress is the person that killed the earl.",
		},
		{
			name:     "where is",
			tree:     "(TOP (SBARQ (WHADVP (WRB Where)) (SQ (VP (VBZ is)) (NP (DT the) (NN actress))) (. ?)))",
			matcher:  NameLocative,
			wh:       "where",
			want:     []string{"study"},
			response: "The actress is in the study.",
		},
		{
			name:     "where can I find",
			tree:     "(TOP (SBARQ (WHADVP (WRB Where)) (SQ (MD can) (NP (PRP I)) (VP (VB find) (NP (DT the) (NN actress)))) (. ?)))",
			matcher:  NameLocative,
			wh:       "where",
			want:     []string{"study"},
			response: "The actress is in the study.",
		},
		{
			name:     "what room",
			tree:     "(TOP (SBARQ (WHNP (WDT What) (NN room)) (SQ (VBZ is) (NP (DT the) (NN actress)) (PP (IN in))) (. ?)))",
			matcher:  NameLocative,
			wh:       "where",
			want:     []string{"study"},
			response: "The actress is in the study.",
		},
		{
			name:     "location of",
			tree:     "(TOP (SBARQ (WHNP (WP What)) (SQ (VBZ is) (NP (NP (DT the) (NN location)) (PP (IN of) (NP (DT the) (NN actress))))) (. ?)))",
			matcher:  NameLocative,
			wh:       "where",
			want:     []string{"study"},
			response: "The actress is in the study.",
		},
		{
			name:     "embedded question",
			tree:     "(TOP (SQ (MD Could) (NP (PRP you)) (VP (VB tell) (NP (PRP me)) (SBAR (WHNP (WP who)) (S (VP (VBD killed) (NP (DT the) (NN earl)))))) (. ?)))",
			matcher:  NameActiveSubject,
			wh:       "who",
			want:     []string{"actress"},
			response: "The actress killed the earl.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := ask(t, env, tt.tree)
			require.Equal(t, KindEntities, o.Kind, "no matcher accepted the tree")
			assert.Equal(t, tt.matcher, o.Matcher)
			assert.Equal(t, tt.wh, o.WH)
			names := env.Assoc.Names(o.Entities)
			assert.Equal(t, tt.want, names)
			assert.Equal(t, tt.response, o.Respond(names))
		})
	}
}

func TestEntityQuestionWithoutAnswer(t *testing.T) {
	env := newTestEnv(t)

	// The construction and vocabulary are understood; nothing satisfies it.
	o := ask(t, env, "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBZ is) (NP (NP (DT the) (NN murderer)) (PP (IN of) (NP (NNP Dave))))) (. ?)))")
	require.True(t, o.Matched())
	assert.Equal(t, NameCopular, o.Matcher)
	assert.Empty(t, o.Entities)
	assert.NotNil(t, o.Entities)
	assert.Equal(t, "I don't know.", o.Respond(nil))

	o = ask(t, env, "(TOP (SBARQ (WHADVP (WRB Where)) (SQ (VP (VBZ is)) (NP (DT the) (NN house))) (. ?)))")
	require.True(t, o.Matched())
	assert.Empty(t, o.Entities)
}

func TestBooleanQuestions(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		tree     string
		matcher  string
		want     bool
		response string
	}{
		{
			name:     "copular true",
			tree:     "(TOP (SQ (VBZ Is) (NP (DT the) (NN actress)) (NP (DT the) (NN murderer)) (. ?)))",
			matcher:  NameBooleanCopular,
			want:     true,
			response: "Yes, the actress is the murderer.",
		},
		{
			name:     "copular false",
			tree:     "(TOP (SQ (VBZ Is) (NP (DT the) (NN earl)) (NP (DT the) (NN murderer)) (. ?)))",
			matcher:  NameBooleanCopular,
			want:     false,
			response: "No, the earl is not the murderer.",
		},
		{
			name:     "copular qualified true",
			tree:     "(TOP (SQ (VBZ Is) (NP (DT the) (NN actress)) (NP (NP (DT the) (NN murderer)) (PP (IN of) (NP (DT the) (NN earl)))) (. ?)))",
			matcher:  NameBooleanCopular,
			want:     true,
			response: "Yes, the actress is the murderer of the earl.",
		},
		{
			name:     "copular qualified false",
			tree:     "(TOP (SQ (VBZ Is) (NP (DT the) (NN actress)) (NP (NP (DT the) (NN murderer)) (PP (IN of) (NP (NNP Dave)))) (. ?)))",
			matcher:  NameBooleanCopular,
			want:     false,
			response: "No, the actress is not the murderer of dave.",
		},
		{
			name:     "active true",
			tree:     "(TOP (SQ (VBD Did) (NP (DT the) (NN actress)) (VP (VB kill) (NP (DT the) (NN earl))) (. ?)))",
			matcher:  NameBooleanActive,
			want:     true,
			response: "Yes, the actress did kill the earl.",
		},
		{
			name:     "active false",
			tree:     "(TOP (SQ (VBD Did) (NP (DT the) (NN earl)) (VP (VB kill) (NP (DT the) (NN actress))) (. ?)))",
			matcher:  NameBooleanActive,
			want:     false,
			response: "No, the earl did not kill the actress.",
		},
		{
			name:     "active with plural synonym",
			tree:     "(TOP (SQ (VBZ Does) (NP (DT the) (NN earl)) (VP (VB own) (NP (DT the) (NNS belongings))) (. ?)))",
			matcher:  NameBooleanActive,
			want:     true,
			response: "Yes, the earl does own the belongings.",
		},
		{
			name:     "agentless passive true",
			tree:     "(TOP (SQ (VBD Was) (NP (DT the) (NN earl)) (VP (VBN killed)) (. ?)))",
			matcher:  NameBooleanPassive,
			want:     true,
			response: "Yes, the earl was killed.",
		},
		{
			name:     "agentless passive false",
			tree:     "(TOP (SQ (VBD Was) (NP (DT the) (NN actress)) (VP (VBN killed)) (. ?)))",
			matcher:  NameBooleanPassive,
			want:     false,
			response: "No, the actress was not killed.",
		},
		{
			name:     "passive with agent",
			tree:     "(TOP (SQ (VBD Was) (NP (DT the) (NN earl)) (VP (VBN killed) (PP (IN by) (NP (DT the) (NN actress)))) (. ?)))",
			matcher:  NameBooleanPassive,
			want:     true,
			response: "Yes, the earl was killed by the actress.",
		},
		{
			name:     "passive adjective",
			tree:     "(TOP (SQ (VBZ Is) (NP (DT the) (NN belonging)) (ADJP (VBN owned) (PP (IN by) (NP (DT the) (NN earl)))) (. ?)))",
			matcher:  NameBooleanPassiveAdj,
			want:     true,
			response: "Yes, the belonging is owned by the earl.",
		},
		{
			name:     "locative transitive",
			tree:     "(TOP (SQ (VBZ Is) (NP (DT the) (NN actress)) (PP (IN in) (NP (DT the) (NN house))) (. ?)))",
			matcher:  NameBooleanLocative,
			want:     true,
			response: "Yes, the actress is in the house.",
		},
		{
			name:     "locative false",
			tree:     "(TOP (SQ (VBZ Is) (NP (DT the) (NN earl)) (PP (IN in) (NP (DT the) (NN house))) (. ?)))",
			matcher:  NameBooleanLocative,
			want:     false,
			response: "No, the earl is not in the house.",
		},
		{
			name:     "relative clause",
			tree:     "(TOP (SQ (VBZ Is) (NP (DT the) (NN actress)) (NP (NP (DT the) (NN person)) (SBAR (WHNP (WDT that)) (S (VP (VBD killed) (NP (DT the) (NN earl)))))) (. ?)))",
			matcher:  NameBooleanRelative,
			want:     true,
			response: "Yes, the actress is the person that killed the earl.",
		},
		{
			name:     "object relative clause",
			tree:     "(TOP (SQ (VBZ Is) (NP (DT the) (NN earl)) (NP (NP (DT the) (NN person)) (SBAR (WHNP (WDT that)) (S (NP (DT the) (NN actress)) (VP (VBD killed))))) (. ?)))",
			matcher:  NameBooleanRelative,
			want:     true,
			response: "Yes, the earl is the person that the actress killed.",
		},
		{
			name:     "declarative true",
			tree:     "(TOP (S (NP (DT The) (NN actress)) (VP (VBD killed) (NP (DT the) (NN earl))) (. ?)))",
			matcher:  NameBooleanDeclarative,
			want:     true,
			response: "Yes, the actress killed the earl.",
		},
		{
			name:     "declarative false",
			tree:     "(TOP (S (NP (DT The) (NN earl)) (VP (VBD killed) (NP (DT the) (NN actress))) (. ?)))",
			matcher:  NameBooleanDeclarative,
			want:     false,
			response: "No, it is not true that the earl killed the actress.",
		},
		{
			name:     "declarative copular",
			tree:     "(TOP (S (NP (DT The) (NN actress)) (VP (VBZ is) (NP (DT the) (NN murderer))) (. ?)))",
			matcher:  NameBooleanDeclarative,
			want:     true,
			response: "Yes, the actress is the murderer.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := ask(t, env, tt.tree)
			require.Equal(t, KindBoolean, o.Kind, "no matcher accepted the tree")
			assert.Equal(t, tt.matcher, o.Matcher)
			assert.Equal(t, tt.want, o.Value)
			assert.Equal(t, tt.response, o.Response)
			assert.Equal(t, tt.response, o.Respond(nil))
		})
	}
}

func TestNoMatch(t *testing.T) {
	env := newTestEnv(t)

	for name, tree := range map[string]string{
		"unknown noun":             "(TOP (SBARQ (WHNP (WP Who)) (SQ (VP (VBD killed) (NP (DT the) (NN butler)))) (. ?)))",
		"unknown verb":             "(TOP (SBARQ (WHNP (WP Who)) (SQ (VP (VBD poisoned) (NP (DT the) (NN earl)))) (. ?)))",
		"statement":                "(TOP (S (NP (DT The) (NN actress)) (VP (VBD killed) (NP (DT the) (NN earl))) (. .)))",
		"intransitive statement":   "(TOP (S (NP (NN actress)) (VP (VBD left))))",
		"when question":            "(TOP (SBARQ (WHADVP (WRB When)) (SQ (VBD did) (NP (DT the) (NN actress)) (VP (VB leave))) (. ?)))",
		"yes/no with unknown noun": "(TOP (SQ (VBZ Is) (NP (DT the) (NN butler)) (NP (DT the) (NN murderer)) (. ?)))",
	} {
		t.Run(name, func(t *testing.T) {
			o := ask(t, env, tree)
			assert.False(t, o.Matched(), "matched by %s", o.Matcher)
		})
	}
}

func TestTryMatchNilTree(t *testing.T) {
	env := newTestEnv(t)
	for _, m := range Default(env) {
		assert.False(t, m.TryMatch(nil).Matched(), m.Name())
	}
}

func TestDefaultOrderAndNames(t *testing.T) {
	env := newTestEnv(t)
	var names []string
	for _, m := range Default(env) {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{
		NameLocative, NameCopular, NamePassiveAdjective, NamePassiveSubject,
		NamePassiveObject, NameActiveObject, NameActiveSubject,
		NameBooleanLocative, NameBooleanRelative, NameBooleanCopular,
		NameBooleanPassiveAdj, NameBooleanPassive, NameBooleanActive,
		NameBooleanDeclarative,
	}, names)
}

func TestMatchingIsDeterministic(t *testing.T) {
	env := newTestEnv(t)
	tree := "(TOP (SBARQ (WHNP (WP Who)) (SQ (VP (VBD killed) (NP (DT the) (NN earl)))) (. ?)))"
	first := ask(t, env, tree)
	for i := 0; i < 5; i++ {
		again := ask(t, env, tree)
		assert.Equal(t, first.Matcher, again.Matcher)
		assert.Equal(t, first.Entities, again.Entities)
	}
}

func TestListNames(t *testing.T) {
	assert.Equal(t, "", listNames(nil))
	assert.Equal(t, "the earl", listNames([]string{"earl"}))
	assert.Equal(t, "the earl and the actress", listNames([]string{"earl", "actress"}))
	assert.Equal(t, "the a, the b and the c", listNames([]string{"a", "b", "c"}))
}

func TestQualifierBesideNounPhrase(t *testing.T) {
	env := newTestEnv(t)

	o := ask(t, env, "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBZ is) (NP (DT the) (NN murderer)) (PP (IN of) (NP (DT the) (NN earl)))) (. ?)))")
	require.Equal(t, KindEntities, o.Kind)
	assert.Equal(t, NameCopular, o.Matcher)
	names := env.Assoc.Names(o.Entities)
	assert.Equal(t, []string{"actress"}, names)
	assert.Equal(t, "The actress is the murderer of the earl.", o.Respond(names))

	// The actress murdered the earl, not dave.
	o = ask(t, env, "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBZ is) (NP (DT the) (NN murderer)) (PP (IN of) (NP (NNP Dave)))) (. ?)))")
	require.Equal(t, KindEntities, o.Kind)
	assert.Equal(t, NameCopular, o.Matcher)
	assert.Empty(t, o.Entities)

	o = ask(t, env, "(TOP (SQ (VBZ Is) (NP (DT the) (NN actress)) (NP (DT the) (NN murderer)) (PP (IN of) (NP (NNP Dave))) (. ?)))")
	require.Equal(t, KindBoolean, o.Kind)
	assert.Equal(t, NameBooleanCopular, o.Matcher)
	assert.False(t, o.Value)
	assert.Equal(t, "No, the actress is not the murderer of dave.", o.Response)

	o = ask(t, env, "(TOP (SQ (VBZ Is) (NP (DT the) (NN actress)) (NP (DT the) (NN murderer)) (PP (IN of) (NP (DT the) (NN earl))) (. ?)))")
	require.Equal(t, KindBoolean, o.Kind)
	assert.True(t, o.Value)
}

func TestShapes(t *testing.T) {
	env := newTestEnv(t)
	s := env.shapes()

	const (
		whoKilled    = "(TOP (SBARQ (WHNP (WP Who)) (SQ (VP (VBD killed) (NP (DT the) (NN earl)))) (. ?)))"
		whoWasKilled = "(TOP (SBARQ (WHNP (WP Who)) (SQ (VP (VBD was) (VP (VBN killed) (PP (IN by) (NP (DT the) (NN actress)))))) (. ?)))"
		whatIsOwned  = "(TOP (SBARQ (WHNP (WP What)) (SQ (VBZ is) (ADJP (VBN owned) (PP (IN by) (NP (DT the) (NN earl))))) (. ?)))"
		whoIs        = "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBZ is) (NP (DT the) (NN murderer))) (. ?)))"
		isShe        = "(TOP (SQ (VBZ Is) (NP (DT the) (NN actress)) (NP (DT the) (NN murderer)) (. ?)))"
		relative     = "(TOP (S (NP (NP (DT the) (NN person)) (SBAR (WHNP (WDT that)) (S (VP (VBD killed) (NP (DT the) (NN earl)))))) (VP (VBZ is) (NP (DT the) (NN actress))) (. ?)))"
		whoWasBy     = "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBD was) (NP (DT the) (NN earl)) (VP (VBN killed) (PP (IN by)))) (. ?)))"
		whoWasByHer  = "(TOP (SBARQ (WHNP (WP Who)) (SQ (VBD was) (NP (DT the) (NN earl)) (VP (VBN killed) (PP (IN by) (NP (DT the) (NN actress))))) (. ?)))"
	)

	tests := []struct {
		name  string
		shape shape
		tree  string
		want  bool
	}{
		{"passive verb phrase under be", s.passiveObject, whoWasKilled, true},
		{"active verb is not passive", s.passiveObject, whoKilled, false},
		{"participle adjective under be", s.passiveAdjective, whatIsOwned, true},
		{"noun phrase is not a participle", s.passiveAdjective, whoIs, false},
		{"identity question", s.copular, whoIs, true},
		{"identity needs a question word", s.copular, isShe, false},
		{"passive is not identity", s.copular, whoWasBy, false},
		{"inverted identity", s.booleanCopular, isShe, true},
		{"question is not inverted", s.booleanCopular, whoIs, false},
		{"relative clause is not a question", s.activeSubject, relative, false},
		{"stranded by asks for the agent", s.passiveSubject, whoWasBy, true},
		{"named agent is not asked for", s.passiveSubject, whoWasByHer, false},
		{"where", s.locative, "(TOP (SBARQ (WHADVP (WRB Where)) (SQ (VP (VBZ is)) (NP (DT the) (NN actress))) (. ?)))", true},
		{"no location word", s.locative, whoIs, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.Matches(treebank.MustRead(tt.tree)))
		})
	}
}

func TestShapeGuardsExtraction(t *testing.T) {
	env := newTestEnv(t)
	m := matcherFunc{
		name:  NamePassiveObject,
		shape: env.shapes().passiveObject,
		fn: func(*parse.Node) Outcome {
			t.Fatal("extraction ran on a tree outside the shape")
			return NoMatch()
		},
	}
	o := m.TryMatch(treebank.MustRead("(TOP (SBARQ (WHNP (WP Who)) (SQ (VBZ is) (NP (DT the) (NN murderer))) (. ?)))"))
	assert.False(t, o.Matched())
}
