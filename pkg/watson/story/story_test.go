package story

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/watson/pkg/watson/graph"
	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/parse/treebank"
)

const smallStory = `
title: small
copula: be
contains: contain
entities:
  - {name: actress, kind: person}
  - {name: earl, kind: person}
  - {name: murderer, kind: person}
  - {name: study}
predicates: [kill, poison, be, contain]
families:
  - name: harm
    predicates: [kill, poison]
facts:
  - {subject: actress, relation: harm, object: earl}
  - subject: actress
    relation: be
    object: murderer
    indirect: {preposition: of, object: earl}
  - {subject: study, relation: contain, object: actress}
characters:
  - name: Actress
    murderer: true
    location: study
    knows_all: true
  - name: earl
    knows:
      - {subject: actress, relation: poison, object: earl}
      - {subject: actress, relation: be, object: murderer}
`

func TestDefaultStoryCompiles(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	lex, err := DefaultLexicon()
	require.NoError(t, err)

	w, err := Compile(s, lex)
	require.NoError(t, err)
	assert.Equal(t, []string{"actress", "countess", "colonel", "gangster", "policeman", "butler"}, s.CharacterNames())

	for _, name := range s.CharacterNames() {
		view, err := w.View(name)
		require.NoError(t, err, name)
		assert.LessOrEqual(t, view.Len(), w.Main().Len())
	}

	police, err := w.View("Policeman")
	require.NoError(t, err)
	assert.Same(t, w.Main(), police)

	actress, ok := s.Character("actress")
	require.True(t, ok)
	assert.True(t, actress.Murderer)
	assert.Equal(t, "study", actress.Location)

	e, ok := w.Assoc.EntityByName("butler")
	require.True(t, ok)
	assert.Equal(t, graph.KindPerson, w.Assoc.KindOf(e))
}

func TestDefaultParsesRead(t *testing.T) {
	fixtures, err := DefaultParses()
	require.NoError(t, err)
	require.NotEmpty(t, fixtures)

	p, err := treebank.NewFixtureParser(nil, fixtures)
	require.NoError(t, err)
	assert.Equal(t, len(fixtures), p.Len())

	tree, err := p.Parse("who killed the earl?")
	require.NoError(t, err)
	assert.Equal(t, []string{"Who", "killed", "the", "earl", "?"}, tree.Words())
}

func TestCompileFamiliesAndViews(t *testing.T) {
	s, err := Decode([]byte(smallStory))
	require.NoError(t, err)
	w, err := Compile(s, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"actress harm earl",
		"actress be murderer of earl",
		"study contain actress",
	}, w.FactStrings(w.Main()))

	// Knowing only the poisoning is weaker than the main "harm" fact, and
	// the earl may know the murderer without knowing whose.
	view, err := w.View("EARL")
	require.NoError(t, err)
	assert.Equal(t, []string{"actress poison earl", "actress be murderer"}, w.FactStrings(view))

	be, ok := w.Assoc.RelationByName("be")
	require.True(t, ok)
	assert.True(t, w.Copula.Equal(be))
	assert.False(t, w.Contains.Equal(be))
}

func TestCompileRejectsIncompatibleView(t *testing.T) {
	s, err := Decode([]byte(smallStory))
	require.NoError(t, err)
	s.Characters[1].Knows = append(s.Characters[1].Knows, Fact{Subject: "earl", Relation: "kill", Object: "actress"})

	_, err = Compile(s, nil)
	require.Error(t, err)
	assert.True(t, internalerr.Is(err, internalerr.ErrIncompatibleSubgraph))
}

func TestCompileRejectsInventedQualifier(t *testing.T) {
	s, err := Decode([]byte(smallStory))
	require.NoError(t, err)
	s.Characters[1].Knows = []Fact{{
		Subject: "actress", Relation: "be", Object: "murderer",
		Indirect: &Indirect{Preposition: "of", Object: "study"},
	}}

	_, err = Compile(s, nil)
	assert.True(t, internalerr.Is(err, internalerr.ErrIncompatibleSubgraph))
}

func TestCompileRejectsUnknownNames(t *testing.T) {
	tests := map[string]func(s *Story){
		"fact entity":   func(s *Story) { s.Facts[0].Object = "butler" },
		"fact relation": func(s *Story) { s.Facts[0].Relation = "marry" },
		"view entity":   func(s *Story) { s.Characters[1].Knows[0].Subject = "butler" },
		"location":      func(s *Story) { s.Characters[0].Location = "kitchen" },
		"copula":        func(s *Story) { s.Copula = "is" },
		"family":        func(s *Story) { s.Families[0].Predicates = []string{"kill", "strangle"} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := Decode([]byte(smallStory))
			require.NoError(t, err)
			mutate(s)
			_, err = Compile(s, nil)
			require.Error(t, err)
			assert.True(t, internalerr.Is(err, internalerr.ErrInvalidVocabulary), err.Error())
		})
	}
}

func TestDecodeRejectsBadShape(t *testing.T) {
	_, err := Decode([]byte("entities: ["))
	assert.True(t, internalerr.Is(err, internalerr.ErrInvalidConfig))

	_, err = Decode([]byte("entities: [{name: earl}]\npredicates: [kill]\n"))
	assert.True(t, internalerr.Is(err, internalerr.ErrInvalidConfig))

	_, err = Decode([]byte(smallStory + "  - name: earl\n    knows_all: true\n"))
	assert.True(t, internalerr.Is(err, internalerr.ErrDuplicate))

	s, err := Decode([]byte(smallStory))
	require.NoError(t, err)
	s.Entities[0].Kind = "ghost"
	assert.True(t, internalerr.Is(s.Validate(), internalerr.ErrInvalidConfig))
}

func TestUnknownCharacter(t *testing.T) {
	s, err := Decode([]byte(smallStory))
	require.NoError(t, err)
	w, err := Compile(s, nil)
	require.NoError(t, err)

	_, err = w.View("butler")
	assert.True(t, internalerr.Is(err, internalerr.ErrUnknownCharacter))
}

func TestLoadAndEncode(t *testing.T) {
	s, err := Decode([]byte(smallStory))
	require.NoError(t, err)
	data, err := s.Encode()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "story.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
