package preprocess_test

import (
	"testing"

	"github.com/hscells/elemental/preprocess"
	"github.com/stretchr/testify/assert"
)

func TestAlphaNum(t *testing.T) {
	assert.Equal(t, "btn primary 2", preprocess.AlphaNum("btn--primary!!2"))
}

func TestStripNumbers(t *testing.T) {
	assert.Equal(t, "ctl", preprocess.StripNumbers("ctl0042"))
}

func TestFoldDiacritics(t *testing.T) {
	assert.Equal(t, "Cafe creme", preprocess.FoldDiacritics("Café crème"))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "search button", preprocess.Stem("searching buttons"))
}

func TestChain(t *testing.T) {
	p := preprocess.Chain(preprocess.FoldDiacritics, preprocess.Lowercase, preprocess.StripNumbers)
	assert.Equal(t, "resume", p("Résumé2"))
	assert.Equal(t, "abc", preprocess.Chain()("abc"))
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "Save changes", preprocess.StripMarkup("Save changes"))

	s := preprocess.StripMarkup("<b>Save</b> changes")
	assert.NotContains(t, s, "<b>")
	assert.Contains(t, s, "Save")
	assert.Contains(t, s, "changes")
}
