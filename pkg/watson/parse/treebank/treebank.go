// Package treebank reads parse trees written in Penn Treebank bracket
// notation and serves them as a parse.Parser.
package treebank

import (
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/parse"
)

// Read parses one bracketed tree such as
//
//	(TOP (SBARQ (WHNP (WP Who)) (SQ (VP (VBD killed) (NP (DT the) (NN earl)))) (. ?)))
//
// A bare "(S ...)" root is wrapped in TOP so every tree has the same root.
func Read(s string) (*parse.Node, error) {
	r := &reader{src: s}
	r.skipSpace()
	n, err := r.node()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if r.pos != len(r.src) {
		return nil, r.errorf("trailing input")
	}
	if n.Label != parse.LabelTop {
		n = parse.Branch(parse.LabelTop, n)
	}
	return n, nil
}

// MustRead is Read for trees known to be well formed, such as test fixtures.
func MustRead(s string) *parse.Node {
	n, err := Read(s)
	if err != nil {
		panic(err)
	}
	return n
}

// LooksLikeTree reports whether s is written in bracket notation.
func LooksLikeTree(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "(")
}

type reader struct {
	src string
	pos int
}

func (r *reader) errorf(format string, args ...any) error {
	return internalerr.Wrapf(internalerr.ErrNoParse, "offset %d: "+format, append([]any{r.pos}, args...)...)
}

func (r *reader) skipSpace() {
	for r.pos < len(r.src) && unicode.IsSpace(rune(r.src[r.pos])) {
		r.pos++
	}
}

func (r *reader) node() (*parse.Node, error) {
	if r.pos >= len(r.src) || r.src[r.pos] != '(' {
		return nil, r.errorf("expected '('")
	}
	r.pos++
	r.skipSpace()

	label := r.atom()
	if label == "" {
		return nil, r.errorf("missing label")
	}
	r.skipSpace()

	if r.pos < len(r.src) && r.src[r.pos] != '(' && r.src[r.pos] != ')' {
		word := r.atom()
		r.skipSpace()
		if r.pos >= len(r.src) || r.src[r.pos] != ')' {
			return nil, r.errorf("expected ')' after word %q", word)
		}
		r.pos++
		return parse.Leaf(label, word), nil
	}

	n := parse.Branch(label)
	for {
		r.skipSpace()
		if r.pos >= len(r.src) {
			return nil, r.errorf("unbalanced brackets")
		}
		if r.src[r.pos] == ')' {
			r.pos++
			break
		}
		child, err := r.node()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	if len(n.Children) == 0 {
		return nil, r.errorf("empty node %q", label)
	}
	return n, nil
}

func (r *reader) atom() string {
	start := r.pos
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		if c == '(' || c == ')' || unicode.IsSpace(rune(c)) {
			break
		}
		r.pos++
	}
	return r.src[start:r.pos]
}

// FixtureParser answers from a fixed table of sentence → tree. It stands in
// for a statistical parser: the story's question forms are authored together
// with their trees. Input already written in bracket notation is read as is.
type FixtureParser struct {
	tokenizer *parse.Tokenizer
	trees     map[string]*parse.Node
}

// Fixture is one authored sentence and its tree.
type Fixture struct {
	Sentence string `yaml:"sentence"`
	Tree     string `yaml:"tree"`
}

// NewFixtureParser reads every fixture tree up front so malformed content is
// rejected at startup.
func NewFixtureParser(tok *parse.Tokenizer, fixtures []Fixture) (*FixtureParser, error) {
	if tok == nil {
		tok = parse.NewTokenizer(nil)
	}
	p := &FixtureParser{tokenizer: tok, trees: make(map[string]*parse.Node, len(fixtures))}
	for _, f := range fixtures {
		tree, err := Read(f.Tree)
		if err != nil {
			return nil, internalerr.Wrapf(err, "fixture %q", f.Sentence)
		}
		key := parse.Key(tok.Tokenize(f.Sentence))
		if _, dup := p.trees[key]; dup {
			return nil, internalerr.Wrapf(internalerr.ErrDuplicate, "fixture %q", f.Sentence)
		}
		p.trees[key] = tree
	}
	return p, nil
}

// LoadFixtures reads fixtures from a YAML file of the form
//
//	parses:
//	  - sentence: Who killed the earl?
//	    tree: (TOP (SBARQ ...))
func LoadFixtures(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, internalerr.Wrapf(err, "read parses %s", path)
	}
	return DecodeFixtures(data)
}

// DecodeFixtures decodes fixture YAML.
func DecodeFixtures(data []byte) ([]Fixture, error) {
	var f struct {
		Parses []Fixture `yaml:"parses"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, internalerr.Wrap(internalerr.ErrInvalidConfig, err.Error())
	}
	return f.Parses, nil
}

// Parse implements parse.Parser.
func (p *FixtureParser) Parse(sentence string) (*parse.Node, error) {
	if LooksLikeTree(sentence) {
		return Read(sentence)
	}
	key := parse.Key(p.tokenizer.Tokenize(sentence))
	tree, ok := p.trees[key]
	if !ok {
		return nil, internalerr.Wrapf(internalerr.ErrNoParse, "no tree for %q", sentence)
	}
	return tree, nil
}

// Len returns the number of known sentences.
func (p *FixtureParser) Len() int { return len(p.trees) }
