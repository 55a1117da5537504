// Package preprocess handles normalisation of attribute text before featurization.
package preprocess

import (
	"regexp"
	"strings"

	"github.com/bbalet/stopwords"
	"github.com/dan-locke/clean-html"
	"github.com/hscells/go-unidecode"
	"github.com/reiver/go-porterstemmer"
)

// TextProcessor is applied to an attribute value before it is tokenised.
type TextProcessor func(text string) string

var (
	alphanum, _ = regexp.Compile("[^a-zA-Z0-9 ]+")
	numbers, _  = regexp.Compile("[0-9]")
	spaces, _   = regexp.Compile(" +")
)

// AlphaNum removes all non-alphanumeric characters from text.
func AlphaNum(text string) string {
	return spaces.ReplaceAllString(alphanum.ReplaceAllString(text, " "), " ")
}

// StripNumbers removes numbers from text.
func StripNumbers(text string) string {
	return numbers.ReplaceAllString(text, "")
}

// Lowercase transforms all capital letters to lowercase.
func Lowercase(text string) string {
	return strings.ToLower(text)
}

// FoldDiacritics transliterates text to ASCII, e.g. "café" becomes "cafe".
func FoldDiacritics(text string) string {
	return unidecode.Unidecode(text)
}

// StopWords removes English stop words. Punctuation between words is dropped as a side effect.
func StopWords(text string) string {
	return strings.TrimSpace(stopwords.CleanString(text, "en", false))
}

// Stem reduces every whitespace separated word to its Porter stem.
func Stem(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = porterstemmer.StemString(w)
	}
	return strings.Join(words, " ")
}

// StripMarkup keeps the text outside of HTML tags, joined by spaces. Text that cannot be
// parsed is returned unchanged.
func StripMarkup(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}
	portions, err := clean_html.TextPos([]byte(text))
	if err != nil {
		return text
	}
	parts := make([]string, 0, len(portions.Positions))
	for _, pos := range portions.Positions {
		parts = append(parts, text[pos[0]:pos[1]])
	}
	return strings.Join(parts, " ")
}

// Chain applies processors left to right.
func Chain(processors ...TextProcessor) TextProcessor {
	return func(text string) string {
		for _, p := range processors {
			text = p(text)
		}
		return text
	}
}
