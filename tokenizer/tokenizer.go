/*
	tokenizer package turns raw page text into a mapping of normalized
	search terms and their occurrence counts. Normalization lowercases
	the input and treats every run of non-alphanumeric characters as a
	single separator; tokens shorter than three characters and common
	English stopwords are discarded.
*/

package tokenizer

import (
	"strings"
	"unicode"
)

// MinTermLength is the minimum length of a token for it to qualify as
// a search term.
const MinTermLength = 3

// Tokenize breaks text into normalized terms and counts the occurrences
// of each. it's a pure function: identical inputs always produce
// identical mappings. Empty input, or input containing only stopwords
// and punctuation, yields an empty mapping.
func Tokenize(text string) map[string]int {
	terms := make(map[string]int)

	for _, token := range strings.FieldsFunc(strings.ToLower(text), isSeparator) {
		if len(token) < MinTermLength {
			continue
		}

		if _, isStopword := stopwords[token]; isStopword {
			continue
		}

		terms[token]++
	}

	return terms
}

// NormalizeTerm applies the tokenizer's normalization to a single query
// term: lowercasing and stripping every non-alphanumeric character.
// Callers can compare the result against their input to detect that
// sanitization occurred.
func NormalizeTerm(term string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, term)
}

// isSeparator reports whether a rune separates tokens. Anything that is
// not a letter or a digit does.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
