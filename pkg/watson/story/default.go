package story

import (
	_ "embed"

	"github.com/cognicore/watson/pkg/watson/lexicon"
	"github.com/cognicore/watson/pkg/watson/parse/treebank"
)

var (
	//go:embed data/story.yaml
	defaultStory []byte
	//go:embed data/lexicon.yaml
	defaultLexicon []byte
	//go:embed data/parses.yaml
	defaultParses []byte
)

// Default returns the built-in country-house mystery.
func Default() (*Story, error) {
	return Decode(defaultStory)
}

// DefaultLexicon returns the synonyms of the built-in story's vocabulary.
func DefaultLexicon() (*lexicon.Lexicon, error) {
	return lexicon.Parse(defaultLexicon)
}

// DefaultParses returns the parse trees of the questions the built-in story
// is authored for.
func DefaultParses() ([]treebank.Fixture, error) {
	return treebank.DecodeFixtures(defaultParses)
}
