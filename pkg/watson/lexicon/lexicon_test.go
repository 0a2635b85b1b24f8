package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/watson/pkg/watson/internalerr"
)

func TestLexiconNew(t *testing.T) {
	lex := New()
	require.NotNil(t, lex)
	assert.Equal(t, 0, lex.Stats().SynonymGroups)
}

func TestLexiconAddSynonymGroup(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("kill", []string{"kills", "killed", "Murder"})

	assert.Equal(t, "kill", lex.Normalize("killed"))
	assert.Equal(t, "kill", lex.Normalize("MURDER"))
	assert.Equal(t, "unknown", lex.Normalize("unknown"))

	assert.Equal(t, []string{"kill", "kills", "killed", "murder"}, lex.SynonymSet("murder"))
	assert.True(t, lex.HasSynonyms("Kills"))
	assert.False(t, lex.HasSynonyms("poison"))
}

func TestLexiconReplaceGroup(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("kill", []string{"killed", "slay"})
	lex.AddSynonymGroup("kill", []string{"killed"})

	assert.False(t, lex.HasSynonyms("slay"))
	assert.Equal(t, []string{"kill", "killed"}, lex.SynonymSet("kill"))
	assert.Equal(t, Stats{SynonymGroups: 1, TotalVariants: 2}, lex.Stats())
}

func TestLexiconWordInSeveralGroups(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("study", []string{"studies", "learn"})
	lex.AddSynonymGroup("room", []string{"study", "chamber"})

	set := lex.SynonymSet("study")
	assert.ElementsMatch(t, []string{"study", "studies", "learn", "room", "chamber"}, set)
	assert.Equal(t, "study", lex.Normalize("study"))
}

func TestLexiconUnknownWordHasNoSynonymSet(t *testing.T) {
	lex := New()
	assert.Nil(t, lex.SynonymSet("earl"))
}

func TestSame(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("kill", []string{"killed", "murder"})

	tests := []struct {
		word, name string
		want       bool
	}{
		{"killed", "kill", true},
		{"Kill", "kill", true},
		{"kill", "murder", true},
		{"earl", "Earl", true},
		{"earl", "actress", false},
		{"poisoned", "kill", false},
		{"", "kill", false},
	}
	for _, tt := range tests {
		t.Run(tt.word+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Same(lex, tt.word, tt.name))
		})
	}
}

func TestSameWithoutThesaurus(t *testing.T) {
	assert.True(t, Same(nil, "Earl", "earl"))
	assert.False(t, Same(nil, "killed", "kill"))
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := `
synonyms:
  - canonical: be
    variants: [is, was, "'s"]
  - canonical: own
    variants: [owns, owned, possess]
  - canonical: ""
    variants: [ignored]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := LoadFromYAML(path)
	require.NoError(t, err)

	assert.Equal(t, 2, lex.Stats().SynonymGroups)
	assert.Equal(t, "be", lex.Normalize("'s"))
	assert.True(t, Same(lex, "possess", "own"))
	assert.False(t, lex.HasSynonyms("ignored"))
}

func TestLoadFromYAMLErrors(t *testing.T) {
	_, err := LoadFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Parse([]byte("synonyms: [unterminated"))
	require.Error(t, err)
	assert.True(t, internalerr.Is(err, internalerr.ErrInvalidConfig))
}
