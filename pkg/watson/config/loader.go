package config

import (
	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/lexicon"
	"github.com/cognicore/watson/pkg/watson/parse/treebank"
	"github.com/cognicore/watson/pkg/watson/story"
)

// Loader loads all content files and constructs components
type Loader struct {
	StoryPath   string
	LexiconPath string
	ParsesPath  string
}

// Components holds all loaded content
type Components struct {
	Story   *story.Story
	Lexicon *lexicon.Lexicon
	Parser  *treebank.FixtureParser
}

// Load reads every content file and returns initialized components. Each
// empty path falls back to the built-in content.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load story
	var err error
	if l.StoryPath != "" {
		comp.Story, err = story.Load(l.StoryPath)
	} else {
		comp.Story, err = story.Default()
	}
	if err != nil {
		return nil, internalerr.Wrap(err, "load story")
	}

	// Load lexicon
	if l.LexiconPath != "" {
		comp.Lexicon, err = lexicon.LoadFromYAML(l.LexiconPath)
	} else {
		comp.Lexicon, err = story.DefaultLexicon()
	}
	if err != nil {
		return nil, internalerr.Wrap(err, "load lexicon")
	}

	// Load parses
	var fixtures []treebank.Fixture
	if l.ParsesPath != "" {
		fixtures, err = treebank.LoadFixtures(l.ParsesPath)
	} else {
		fixtures, err = story.DefaultParses()
	}
	if err != nil {
		return nil, internalerr.Wrap(err, "load parses")
	}
	comp.Parser, err = treebank.NewFixtureParser(nil, fixtures)
	if err != nil {
		return nil, internalerr.Wrap(err, "load parses")
	}

	return comp, nil
}
