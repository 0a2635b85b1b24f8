// Package story holds the authored content of a mystery: its vocabulary,
// the facts of what happened, and the characters with what each of them
// knows. Stories are written in YAML; Compile turns one into the graphs the
// question answerer consults.
package story

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/watson/pkg/watson/internalerr"
)

// Story is the authored form of a mystery.
type Story struct {
	Title      string      `yaml:"title"`
	Entities   []Entity    `yaml:"entities"`
	Predicates []string    `yaml:"predicates"`
	Families   []Family    `yaml:"families,omitempty"`
	Copula     string      `yaml:"copula"`
	Contains   string      `yaml:"contains"`
	Facts      []Fact      `yaml:"facts"`
	Characters []Character `yaml:"characters"`
}

// Entity is a story noun. Kind is "person" or "thing" (the default).
type Entity struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind,omitempty"`
}

// Family names a set of predicates queried together, such as "harm" for
// kill and poison.
type Family struct {
	Name       string   `yaml:"name"`
	Predicates []string `yaml:"predicates"`
}

// Fact is one authored triple. Relation names a predicate or a family.
type Fact struct {
	Subject  string    `yaml:"subject"`
	Relation string    `yaml:"relation"`
	Object   string    `yaml:"object"`
	Indirect *Indirect `yaml:"indirect,omitempty"`
}

// Indirect is the prepositional qualifier of a fact: "of the earl".
type Indirect struct {
	Preposition string `yaml:"preposition"`
	Object      string `yaml:"object"`
}

// Character is someone the player can question. A character who knows
// everything sees the main graph; everyone else sees only Knows, which must
// be compatible with the main facts.
type Character struct {
	Name     string `yaml:"name"`
	Murderer bool   `yaml:"murderer,omitempty"`
	Gender   string `yaml:"gender,omitempty"`
	Location string `yaml:"location,omitempty"`
	KnowsAll bool   `yaml:"knows_all,omitempty"`
	Knows    []Fact `yaml:"knows,omitempty"`
}

// Load reads a story file.
func Load(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, internalerr.Wrapf(err, "read story %s", path)
	}
	return Decode(data)
}

// Decode parses story YAML and checks the parts Compile cannot: required
// fields and unique character names.
func Decode(data []byte) (*Story, error) {
	var s Story
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, internalerr.Wrap(internalerr.ErrInvalidConfig, err.Error())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode renders the story as YAML.
func (s *Story) Encode() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, internalerr.Wrap(err, "encode story")
	}
	return data, nil
}

// Validate checks the story's shape. Vocabulary references are checked by
// Compile.
func (s *Story) Validate() error {
	if len(s.Entities) == 0 || len(s.Predicates) == 0 {
		return internalerr.Wrap(internalerr.ErrInvalidConfig, "story needs entities and predicates")
	}
	if s.Copula == "" || s.Contains == "" {
		return internalerr.Wrap(internalerr.ErrInvalidConfig, "story needs copula and contains relations")
	}
	for _, e := range s.Entities {
		switch strings.ToLower(e.Kind) {
		case "", KindThing, KindPerson:
		default:
			return internalerr.Wrapf(internalerr.ErrInvalidConfig, "entity %q has unknown kind %q", e.Name, e.Kind)
		}
	}
	seen := make(map[string]bool, len(s.Characters))
	for _, c := range s.Characters {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			return internalerr.Wrap(internalerr.ErrInvalidConfig, "character has no name")
		}
		if seen[name] {
			return internalerr.Wrapf(internalerr.ErrDuplicate, "character %q", c.Name)
		}
		seen[name] = true
	}
	return nil
}

// Entity kinds as authored.
const (
	KindThing  = "thing"
	KindPerson = "person"
)

// Character returns the named character.
func (s *Story) Character(name string) (Character, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range s.Characters {
		if strings.ToLower(c.Name) == name {
			return c, true
		}
	}
	return Character{}, false
}

// CharacterNames lists the characters in authored order.
func (s *Story) CharacterNames() []string {
	out := make([]string, len(s.Characters))
	for i, c := range s.Characters {
		out[i] = strings.ToLower(c.Name)
	}
	return out
}
