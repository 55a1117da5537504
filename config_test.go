package elemental_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hscells/elemental"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeProperties(t *testing.T, s string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elemental.properties")
	require.NoError(t, os.WriteFile(path, []byte(s), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := elemental.DefaultConfig()
	assert.Equal(t, "SdcaMaximumEntropy", c.Algorithm)
	assert.Equal(t, int64(111), c.Seed)
	assert.Equal(t, 0.3, c.TestFraction)
	assert.Equal(t, 1, c.Featurize.WordNgrams)
	assert.Equal(t, 3, c.Featurize.CharNgrams)
}

func TestLoadConfig(t *testing.T) {
	path := writeProperties(t, `
# training run
algorithm = naivebayes
seed = 42
test.fraction = 0.25
linear.iterations = 10
naivebayes.alpha = 0.5
featurize.word.ngrams = 2
featurize.stem = true
featurize.alphanum = true
featurize.strip.numbers = true
log.level = debug
`)
	c, err := elemental.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "naivebayes", c.Algorithm)
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, 0.25, c.TestFraction)
	assert.Equal(t, 10, c.Linear.Iterations)
	assert.Equal(t, 0.5, c.NaiveBayesAlpha)
	assert.Equal(t, 2, c.Featurize.WordNgrams)
	assert.True(t, c.Featurize.Stem)
	assert.True(t, c.Featurize.AlphaNum)
	assert.True(t, c.Featurize.StripNumbers)
	assert.Equal(t, "debug", c.LogLevel)

	// Untouched keys keep their defaults.
	assert.Equal(t, elemental.DefaultConfig().Linear.L2, c.Linear.L2)
	assert.Equal(t, "console", c.LogFormat)
}

func TestLoadConfigErrors(t *testing.T) {
	for name, s := range map[string]string{
		"bad float":     "linear.l2 = lots",
		"bad int":       "seed = 1.5",
		"bad bool":      "featurize.stem = perhaps",
		"bad fraction":  "test.fraction = 1",
		"bad algorithm": "algorithm = svm",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := elemental.LoadConfig(writeProperties(t, s))
			assert.Error(t, err)
		})
	}

	_, err := elemental.LoadConfig(filepath.Join(t.TempDir(), "missing.properties"))
	assert.Error(t, err)
}

func TestConfigTrainer(t *testing.T) {
	c := elemental.DefaultConfig()
	c.TestFraction = 0.2
	c.NaiveBayesAlpha = 0.1
	tr := elemental.New(elemental.NaiveBayes, elemental.WithConfig(c))
	require.NoError(t, tr.Fit(writeTrainingFile(t, 100)))
	split, err := tr.Split()
	require.NoError(t, err)
	assert.Equal(t, 20, split.TestSet.Len())
}

func TestAlgorithmByName(t *testing.T) {
	a, err := elemental.AlgorithmByName("onEVersusall")
	require.NoError(t, err)
	assert.Equal(t, elemental.OneVersusAll.Name, a.Name)

	_, err = elemental.AlgorithmByName("LightGbm")
	assert.Error(t, err)

	for _, a := range elemental.Algorithms() {
		l := a.New(elemental.DefaultConfig(), nil)
		assert.NotNil(t, l)
	}
}

func TestNewLogger(t *testing.T) {
	l := elemental.NewLogger("debug", "json")
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l = elemental.NewLogger("nonsense", "console")
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
}
