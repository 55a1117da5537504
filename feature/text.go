package feature

import (
	"sort"
	"strings"

	"github.com/hscells/elemental/preprocess"
	"github.com/jdkato/prose/v2"
	"github.com/pkg/errors"
	"github.com/xtgo/set"
)

// Options control how text is featurized. The zero value is replaced by DefaultOptions.
type Options struct {
	// WordNgrams is the longest word n-gram emitted; 1 gives unigrams only.
	WordNgrams int
	// CharNgrams is the length of character n-grams; 0 disables them.
	CharNgrams int
	// StopWords removes English stop words before word n-grams are formed.
	StopWords bool
	// Stem reduces words to their Porter stem before word n-grams are formed.
	Stem bool
	// StripMarkup drops HTML tags from attribute values before anything else.
	StripMarkup bool
	// AlphaNum replaces punctuation with spaces, so "btn-primary" reads as two words.
	AlphaNum bool
	// StripNumbers removes digits, so generated ids such as "ctl0042" share n-grams.
	StripNumbers bool
}

// DefaultOptions emits word unigrams and character trigrams.
func DefaultOptions() Options {
	return Options{WordNgrams: 1, CharNgrams: 3}
}

const (
	wordPrefix = "w:"
	charPrefix = "c:"
	// Boundary markers so that leading and trailing character n-grams are distinguishable.
	beginText = "\x02"
	endText   = "\x03"
)

// TextFeaturizer converts the text of one column into an L2-normalised bag of word and character n-grams.
// Its vocabulary is learned by Fit; n-grams not seen during Fit are ignored by Transform.
type TextFeaturizer struct {
	Column     string
	Options    Options
	Vocabulary map[string]int
}

// NewTextFeaturizer creates an unfitted featurizer for column.
func NewTextFeaturizer(column string, opts Options) *TextFeaturizer {
	if opts.WordNgrams <= 0 && opts.CharNgrams <= 0 {
		opts = DefaultOptions()
	}
	return &TextFeaturizer{Column: column, Options: opts}
}

// Dim is the size of the vocabulary, and so the dimensionality of transformed vectors.
func (t *TextFeaturizer) Dim() int {
	return len(t.Vocabulary)
}

// Fit learns the vocabulary from texts. IDs are assigned in sorted n-gram order.
func (t *TextFeaturizer) Fit(texts []string) error {
	var all []string
	for _, text := range texts {
		grams, err := t.grams(text)
		if err != nil {
			return errors.Wrapf(err, "featurizing %s", t.Column)
		}
		all = append(all, grams...)
	}
	sort.Strings(all)
	all = all[:set.Uniq(sort.StringSlice(all))]

	t.Vocabulary = make(map[string]int, len(all))
	for i, g := range all {
		t.Vocabulary[g] = i
	}
	return nil
}

// Transform featurizes one text value.
func (t *TextFeaturizer) Transform(text string) (Features, error) {
	grams, err := t.grams(text)
	if err != nil {
		return nil, errors.Wrapf(err, "featurizing %s", t.Column)
	}
	counts := make(map[int]float64)
	for _, g := range grams {
		if id, ok := t.Vocabulary[g]; ok {
			counts[id]++
		}
	}
	return FromCounts(counts).Normalise(), nil
}

func (t *TextFeaturizer) normaliser() preprocess.TextProcessor {
	var p []preprocess.TextProcessor
	if t.Options.StripMarkup {
		p = append(p, preprocess.StripMarkup)
	}
	p = append(p, preprocess.FoldDiacritics, preprocess.Lowercase)
	if t.Options.AlphaNum {
		p = append(p, preprocess.AlphaNum)
	}
	if t.Options.StripNumbers {
		p = append(p, preprocess.StripNumbers)
	}
	return preprocess.Chain(p...)
}

func (t *TextFeaturizer) wordProcessor() preprocess.TextProcessor {
	var p []preprocess.TextProcessor
	if t.Options.StopWords {
		p = append(p, preprocess.StopWords)
	}
	if t.Options.Stem {
		p = append(p, preprocess.Stem)
	}
	return preprocess.Chain(p...)
}

// grams returns every n-gram of text, with repetitions.
func (t *TextFeaturizer) grams(text string) ([]string, error) {
	text = strings.TrimSpace(t.normaliser()(text))
	if len(text) == 0 {
		return nil, nil
	}

	var grams []string
	if t.Options.WordNgrams > 0 {
		words, err := tokenise(t.wordProcessor()(text))
		if err != nil {
			return nil, err
		}
		for n := 1; n <= t.Options.WordNgrams; n++ {
			for i := 0; i+n <= len(words); i++ {
				grams = append(grams, wordPrefix+strings.Join(words[i:i+n], " "))
			}
		}
	}
	if t.Options.CharNgrams > 0 {
		runes := []rune(beginText + text + endText)
		for i := 0; i+t.Options.CharNgrams <= len(runes); i++ {
			grams = append(grams, charPrefix+string(runes[i:i+t.Options.CharNgrams]))
		}
	}
	return grams, nil
}

func tokenise(text string) ([]string, error) {
	if len(strings.TrimSpace(text)) == 0 {
		return nil, nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}
	tokens := doc.Tokens()
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Text
	}
	return words, nil
}
