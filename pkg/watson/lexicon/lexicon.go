package lexicon

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/watson/pkg/watson/internalerr"
)

// Thesaurus is the lexical database boundary: given a word it returns the
// words known to mean the same thing. An empty result means the database has
// no information about the word.
type Thesaurus interface {
	SynonymSet(word string) []string
}

// Lexicon stores synonym groups for the story vocabulary:
// - Synonyms: different words with the same meaning (kill ↔ murder ↔ slay)
// - Inflections: surface forms of a lexeme (kill ↔ killed ↔ kills)
//
// A word may belong to more than one group ("study" the room and "study" the
// verb share a surface form), so the reverse index keeps every canonical form
// a word belongs to.
type Lexicon struct {
	// canonical -> all variants (including canonical itself)
	// Example: "kill" -> ["kill", "kills", "killed", "murder"]
	synonyms map[string][]string

	// variant -> canonical forms, in registration order
	reverseIndex map[string][]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		synonyms:     make(map[string][]string),
		reverseIndex: make(map[string][]string),
	}
}

// File is the YAML layout of a lexicon file.
//
//	synonyms:
//	  - canonical: kill
//	    variants: [kills, killed, killing, murder, murdered]
//	  - canonical: be
//	    variants: [is, was, are, were, "'s"]
type File struct {
	Synonyms []Group `yaml:"synonyms"`
}

// Group is one synonym group of a lexicon file.
type Group struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// LoadFromYAML loads synonym groups from a YAML file.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, internalerr.Wrapf(err, "read lexicon %s", path)
	}
	return Parse(data)
}

// Parse builds a lexicon from YAML bytes in the File layout.
func Parse(data []byte) (*Lexicon, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, internalerr.Wrap(internalerr.ErrInvalidConfig, err.Error())
	}
	return FromGroups(f.Synonyms), nil
}

// FromGroups builds a lexicon from already decoded groups. Empty canonical
// forms are skipped.
func FromGroups(groups []Group) *Lexicon {
	lex := New()
	for _, g := range groups {
		if strings.TrimSpace(g.Canonical) == "" {
			continue
		}
		lex.AddSynonymGroup(g.Canonical, g.Variants)
	}
	return lex
}

// AddSynonymGroup adds a synonym group with a canonical form and its variants.
// The canonical form is always included as the first entry in the variants list.
// Re-adding an existing canonical form replaces its group.
func (l *Lexicon) AddSynonymGroup(canonical string, variants []string) {
	canonical = normalize(canonical)

	if old, exists := l.synonyms[canonical]; exists {
		for _, v := range old {
			l.reverseIndex[v] = remove(l.reverseIndex[v], canonical)
			if len(l.reverseIndex[v]) == 0 {
				delete(l.reverseIndex, v)
			}
		}
	}

	normalized := make([]string, 0, len(variants)+1)
	seen := map[string]bool{canonical: true}
	normalized = append(normalized, canonical)
	for _, v := range variants {
		v = normalize(v)
		if v == "" || seen[v] {
			continue
		}
		normalized = append(normalized, v)
		seen[v] = true
	}

	l.synonyms[canonical] = normalized
	for _, v := range normalized {
		l.reverseIndex[v] = append(l.reverseIndex[v], canonical)
	}
}

// Normalize returns the first canonical form of a token.
// If the token is not in the lexicon, returns the token itself.
func (l *Lexicon) Normalize(token string) string {
	token = normalize(token)
	if canonicals, ok := l.reverseIndex[token]; ok {
		return canonicals[0]
	}
	return token
}

// SynonymSet returns every word sharing a group with word, including word
// itself. Unknown words yield nil.
func (l *Lexicon) SynonymSet(word string) []string {
	word = normalize(word)
	canonicals, ok := l.reverseIndex[word]
	if !ok {
		return nil
	}
	if len(canonicals) == 1 {
		return l.synonyms[canonicals[0]]
	}

	var out []string
	seen := make(map[string]bool)
	for _, c := range canonicals {
		for _, v := range l.synonyms[c] {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// HasSynonyms returns true if the token has synonyms/variants in the lexicon.
func (l *Lexicon) HasSynonyms(token string) bool {
	_, exists := l.reverseIndex[normalize(token)]
	return exists
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	total := 0
	for _, variants := range l.synonyms {
		total += len(variants)
	}
	return Stats{
		SynonymGroups: len(l.synonyms),
		TotalVariants: total,
	}
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	SynonymGroups int // Number of canonical forms
	TotalVariants int // Variants across all groups, canonical forms included
}

// Same reports whether word and name denote the same lexeme: they are equal
// ignoring case, or one appears in the other's synonym set. A nil thesaurus,
// or one without information on either word, degrades to plain equality.
func Same(th Thesaurus, word, name string) bool {
	w, n := normalize(word), normalize(name)
	if w == "" || n == "" {
		return false
	}
	if w == n {
		return true
	}
	if th == nil {
		return false
	}
	return contains(th.SynonymSet(n), w) || contains(th.SynonymSet(w), n)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

func remove(words []string, w string) []string {
	out := words[:0]
	for _, x := range words {
		if x != w {
			out = append(out, x)
		}
	}
	return out
}
