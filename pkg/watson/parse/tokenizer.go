package parse

import (
	"strings"
	"unicode"
)

// Tokenizer splits a sentence into the tokens the grammar parser expects:
// words, punctuation marks and clitics ("'s", "n't") as separate tokens.
// Known multi-word compounds ("rat poison", "dining room") are joined with an
// underscore so the parser sees them as one noun.
type Tokenizer struct {
	compounds map[string]string // lowercased phrase → joined token
	maxLen    int
}

// NewTokenizer creates a tokenizer recognizing the given compounds.
func NewTokenizer(compounds []string) *Tokenizer {
	t := &Tokenizer{compounds: make(map[string]string), maxLen: 1}
	for _, c := range compounds {
		words := strings.Fields(strings.ToLower(c))
		if len(words) < 2 {
			continue
		}
		t.compounds[strings.Join(words, " ")] = strings.Join(words, "_")
		if len(words) > t.maxLen {
			t.maxLen = len(words)
		}
	}
	return t
}

// Tokenize splits text into tokens. Case is preserved; hyphenated words are
// split before compounds are joined.
func (t *Tokenizer) Tokenize(text string) []string {
	return t.joinCompounds(split(text))
}

// Tokenize splits text with no compound dictionary.
func Tokenize(text string) []string {
	return split(text)
}

func split(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tokens = append(tokens, splitClitic(current.String())...)
		current.Reset()
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' || r == '’':
			if r == '’' {
				r = '\''
			}
			current.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()

	return tokens
}

// splitClitic separates trailing "'s", "'re", "n't" and similar from word.
func splitClitic(word string) []string {
	lower := strings.ToLower(word)
	if strings.HasSuffix(lower, "n't") && len(word) > 3 {
		return []string{word[:len(word)-3], word[len(word)-3:]}
	}
	if i := strings.LastIndexByte(word, '\''); i > 0 && i < len(word)-1 {
		return []string{word[:i], word[i:]}
	}
	if strings.HasSuffix(word, "'") && len(word) > 1 {
		// plural possessive: "the earls'"
		return []string{word[:len(word)-1], "'"}
	}
	return []string{word}
}

// joinCompounds applies greedy longest-match over the compound dictionary.
func (t *Tokenizer) joinCompounds(tokens []string) []string {
	if len(t.compounds) == 0 {
		return tokens
	}
	var result []string
	i := 0
	for i < len(tokens) {
		matched := ""
		matchLen := 1

		maxPhrase := t.maxLen
		if remaining := len(tokens) - i; maxPhrase > remaining {
			maxPhrase = remaining
		}
		for n := maxPhrase; n >= 2; n-- {
			key := strings.ToLower(strings.Join(tokens[i:i+n], " "))
			if joined, ok := t.compounds[key]; ok {
				matched = joined
				matchLen = n
				break
			}
		}

		if matched != "" {
			result = append(result, matched)
			i += matchLen
		} else {
			result = append(result, tokens[i])
			i++
		}
	}
	return result
}

// Key normalizes a token sequence into a lookup key: lowercased tokens
// joined by single spaces.
func Key(tokens []string) string {
	return strings.ToLower(strings.Join(tokens, " "))
}
