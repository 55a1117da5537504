package elemental_test

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hscells/elemental"
	"github.com/hscells/elemental/combinator"
	"github.com/hscells/elemental/feature"
	"github.com/hscells/elemental/learning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "ControlId,Name,CSSClass,Value,Role,Type,Title,Href,Element"

var elements = []struct {
	element, class, role, typ, href string
}{
	{"button", "btn btn-primary", "button", "submit", ""},
	{"link", "nav-link", "link", "", "https://example.com/page"},
	{"input", "form-control", "textbox", "text", ""},
	{"checkbox", "form-check-input", "checkbox", "checkbox", ""},
	{"select", "custom-select", "listbox", "select-one", ""},
}

// writeTrainingFile writes n labelled rows cycling through every element type.
func writeTrainingFile(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(header + "\n")
	for i := 0; i < n; i++ {
		e := elements[i%len(elements)]
		fmt.Fprintf(&b, "%s-%d,%s_%d,%s,value %d,%s,%s,%s %d,%s,%s\n",
			e.element, i, e.element, i, e.class, i, e.role, e.typ, e.element, i, e.href, e.element)
	}
	path := filepath.Join(t.TempDir(), "elements.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestTrainerFitEvaluate(t *testing.T) {
	path := writeTrainingFile(t, 100)
	for _, a := range elemental.Algorithms() {
		t.Run(a.Name, func(t *testing.T) {
			tr := elemental.New(a, elemental.WithBaseDirectory(t.TempDir()))
			assert.Equal(t, a.Name, tr.Name())
			require.NoError(t, tr.Fit(path))

			split, err := tr.Split()
			require.NoError(t, err)
			assert.Equal(t, 70, split.TrainSet.Len())
			assert.Equal(t, 30, split.TestSet.Len())

			m, err := tr.Evaluate()
			require.NoError(t, err)
			assert.Equal(t, 30, m.Samples+m.Skipped)
			assert.True(t, m.MicroAccuracy >= 0 && m.MicroAccuracy <= 1)
			assert.True(t, m.MacroAccuracy >= 0 && m.MacroAccuracy <= 1)
			assert.True(t, m.LogLoss >= 0)
			assert.Greater(t, m.MicroAccuracy, 0.8)
			assert.Len(t, m.ConfusionMatrix.Classes, len(elements))
		})
	}
}

func TestTrainerDeterministic(t *testing.T) {
	path := writeTrainingFile(t, 100)

	fit := func() (*elemental.Model, []int) {
		tr := elemental.New(elemental.SdcaMaximumEntropy, elemental.WithBaseDirectory(t.TempDir()))
		require.NoError(t, tr.Fit(path))
		model, err := tr.Model()
		require.NoError(t, err)
		split, err := tr.Split()
		require.NoError(t, err)
		return model, split.TestIndex
	}

	m1, idx1 := fit()
	m2, idx2 := fit()
	assert.Equal(t, idx1, idx2)
	assert.Equal(t, m1.Classifier, m2.Classifier)
	assert.Equal(t, m1.Labels(), m2.Labels())
}

func TestTrainerSeed(t *testing.T) {
	path := writeTrainingFile(t, 100)

	indices := func(seed int64) []int {
		tr := elemental.New(elemental.NaiveBayes, elemental.WithSeed(seed))
		require.NoError(t, tr.Fit(path))
		split, err := tr.Split()
		require.NoError(t, err)
		return split.TestIndex
	}
	assert.Equal(t, indices(111), indices(111))
	assert.NotEqual(t, indices(111), indices(7))
}

func TestTrainerTestFraction(t *testing.T) {
	path := writeTrainingFile(t, 100)
	tr := elemental.New(elemental.NaiveBayes, elemental.WithTestFraction(0.5))
	require.NoError(t, tr.Fit(path))
	split, err := tr.Split()
	require.NoError(t, err)
	assert.Equal(t, 50, split.TestSet.Len())
}

func TestTrainerInvalidState(t *testing.T) {
	tr := elemental.New(elemental.SdcaMaximumEntropy, elemental.WithBaseDirectory(t.TempDir()))

	_, err := tr.Evaluate()
	assert.ErrorIs(t, err, elemental.ErrInvalidState)
	assert.ErrorIs(t, tr.Save(), elemental.ErrInvalidState)
	_, err = tr.Model()
	assert.ErrorIs(t, err, elemental.ErrInvalidState)
	_, err = tr.Split()
	assert.ErrorIs(t, err, elemental.ErrInvalidState)

	_, err = os.Stat(tr.ModelPath())
	assert.True(t, os.IsNotExist(err))
}

func TestTrainerNotFound(t *testing.T) {
	tr := elemental.New(elemental.SdcaMaximumEntropy)
	err := tr.Fit(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, elemental.ErrNotFound)

	_, err = tr.Evaluate()
	assert.ErrorIs(t, err, elemental.ErrInvalidState)
}

func TestTrainerFailedFitKeepsState(t *testing.T) {
	path := writeTrainingFile(t, 50)
	tr := elemental.New(elemental.NaiveBayes)
	require.NoError(t, tr.Fit(path))
	before, err := tr.Model()
	require.NoError(t, err)

	assert.ErrorIs(t, tr.Fit(filepath.Join(t.TempDir(), "missing.csv")), elemental.ErrNotFound)

	bad := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("ControlId,Name\na,b\n"), 0644))
	assert.Error(t, tr.Fit(bad))

	after, err := tr.Model()
	require.NoError(t, err)
	assert.Same(t, before, after)
	_, err = tr.Evaluate()
	assert.NoError(t, err)
}

func TestTrainerSave(t *testing.T) {
	path := writeTrainingFile(t, 100)
	dir := t.TempDir()
	tr := elemental.New(elemental.SdcaMaximumEntropy, elemental.WithBaseDirectory(dir))
	require.NoError(t, tr.Fit(path))
	require.NoError(t, tr.Save())

	assert.Equal(t, filepath.Join(dir, elemental.ModelFileName), tr.ModelPath())
	info, err := os.Stat(tr.ModelPath())
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)

	// Saving again replaces the model without leaving temporary files behind.
	require.NoError(t, tr.Save())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTrainerSaveIO(t *testing.T) {
	path := writeTrainingFile(t, 50)
	tr := elemental.New(elemental.NaiveBayes, elemental.WithBaseDirectory(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, tr.Fit(path))
	err := tr.Save()
	assert.ErrorIs(t, err, elemental.ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestTrainerCache(t *testing.T) {
	path := writeTrainingFile(t, 100)

	plain := elemental.New(elemental.SdcaMaximumEntropy)
	require.NoError(t, plain.Fit(path))
	want, err := plain.Evaluate()
	require.NoError(t, err)

	cache, err := combinator.NewLRUFeatureCache(256)
	require.NoError(t, err)
	cached := elemental.New(elemental.SdcaMaximumEntropy, elemental.WithCache(cache))
	require.NoError(t, cached.Fit(path))
	got, err := cached.Evaluate()
	require.NoError(t, err)

	assert.Equal(t, want.MicroAccuracy, got.MicroAccuracy)
	assert.Equal(t, want.LogLoss, got.LogLoss)
}

func TestTrainerSkipsUnseenLabels(t *testing.T) {
	var b strings.Builder
	b.WriteString(header + "\n")
	for i := 0; i < 20; i++ {
		e := elements[i%2]
		fmt.Fprintf(&b, "%s-%d,,%s,,%s,%s,,%s,%s\n", e.element, i, e.class, e.role, e.typ, e.href, e.element)
	}
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "rare-%d,,,,,,,,rare%d\n", i, i)
	}
	path := filepath.Join(t.TempDir(), "rare.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

	tr := elemental.New(elemental.NaiveBayes)
	require.NoError(t, tr.Fit(path))
	split, err := tr.Split()
	require.NoError(t, err)
	model, err := tr.Model()
	require.NoError(t, err)

	known := map[string]bool{}
	for _, l := range model.Labels() {
		known[l] = true
	}
	var unseen int
	for _, r := range split.TestSet.Records {
		if !known[r.Element] {
			unseen++
		}
	}

	m, err := tr.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 8, split.TestSet.Len())
	assert.Equal(t, unseen, m.Skipped)
	assert.Equal(t, 8-unseen, m.Samples)
}

func TestTrainerNoAttributeText(t *testing.T) {
	var b strings.Builder
	b.WriteString(header + "\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, ",,,,,,,,%s\n", elements[i%2].element)
	}
	path := filepath.Join(t.TempDir(), "blank.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

	tr := elemental.New(elemental.SdcaMaximumEntropy)
	assert.ErrorIs(t, tr.Fit(path), learning.ErrNoData)
	_, err := tr.Model()
	assert.ErrorIs(t, err, elemental.ErrInvalidState)
}

// countingCache records how often a wrapped cache is hit.
type countingCache struct {
	combinator.FeatureCacher
	hits, misses int
}

func (c *countingCache) Get(key string) (feature.Features, error) {
	ff, err := c.FeatureCacher.Get(key)
	if err == nil {
		c.hits++
	} else {
		c.misses++
	}
	return ff, err
}

func TestTrainerDiskCacheAcrossRuns(t *testing.T) {
	path := writeTrainingFile(t, 100)
	dir := t.TempDir()

	fit := func() *countingCache {
		c := &countingCache{FeatureCacher: combinator.NewDiskvFeatureCache(combinator.NewDiskv(dir, 0))}
		tr := elemental.New(elemental.SdcaMaximumEntropy, elemental.WithCache(combinator.FeatureCache{FeatureCacher: c}))
		require.NoError(t, tr.Fit(path))
		return c
	}

	first := fit()
	assert.Equal(t, 0, first.hits)
	assert.Equal(t, 70, first.misses)

	second := fit()
	assert.Equal(t, 70, second.hits)
	assert.Equal(t, 0, second.misses)
}
