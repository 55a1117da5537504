package elemental

import (
	"strconv"

	"github.com/hscells/elemental/dataset"
	"github.com/hscells/elemental/feature"
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// Config holds the hyperparameters of a training run.
type Config struct {
	Algorithm    string
	Seed         int64
	TestFraction float64

	// Linear applies to the SdcaMaximumEntropy and OneVersusAll learners.
	Linear struct {
		L2           float64
		LearningRate float64
		Iterations   int
		Tolerance    float64
		BatchSize    int
	}
	NaiveBayesAlpha float64

	Featurize feature.Options

	LogLevel  string
	LogFormat string
}

// DefaultConfig reproduces the behaviour of the original training setup: maximum entropy,
// seed 111 and a 30% test split.
func DefaultConfig() Config {
	var c Config
	c.Algorithm = SdcaMaximumEntropy.Name
	c.Seed = dataset.DefaultSeed
	c.TestFraction = dataset.DefaultTestFraction
	c.Linear.L2 = 1e-4
	c.Linear.LearningRate = 0.5
	c.Linear.Iterations = 100
	c.Linear.Tolerance = 1e-6
	c.Linear.BatchSize = 16
	c.NaiveBayesAlpha = 1
	c.Featurize = feature.DefaultOptions()
	c.LogLevel = "info"
	c.LogFormat = "console"
	return c
}

// LoadConfig reads a Java-style properties file over DefaultConfig. Keys that are absent keep
// their defaults; values that fail to parse are an error.
func LoadConfig(path string) (Config, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, err
	}
	return configFromProperties(p)
}

func configFromProperties(p *properties.Properties) (Config, error) {
	c := DefaultConfig()
	r := reader{p: p}

	c.Algorithm = p.GetString("algorithm", c.Algorithm)
	c.Seed = r.getInt("seed", c.Seed)
	c.TestFraction = r.getFloat("test.fraction", c.TestFraction)
	c.Linear.L2 = r.getFloat("linear.l2", c.Linear.L2)
	c.Linear.LearningRate = r.getFloat("linear.learning.rate", c.Linear.LearningRate)
	c.Linear.Iterations = int(r.getInt("linear.iterations", int64(c.Linear.Iterations)))
	c.Linear.Tolerance = r.getFloat("linear.tolerance", c.Linear.Tolerance)
	c.Linear.BatchSize = int(r.getInt("linear.batch.size", int64(c.Linear.BatchSize)))
	c.NaiveBayesAlpha = r.getFloat("naivebayes.alpha", c.NaiveBayesAlpha)
	c.Featurize.WordNgrams = int(r.getInt("featurize.word.ngrams", int64(c.Featurize.WordNgrams)))
	c.Featurize.CharNgrams = int(r.getInt("featurize.char.ngrams", int64(c.Featurize.CharNgrams)))
	c.Featurize.StopWords = r.getBool("featurize.stopwords", c.Featurize.StopWords)
	c.Featurize.Stem = r.getBool("featurize.stem", c.Featurize.Stem)
	c.Featurize.StripMarkup = r.getBool("featurize.markup", c.Featurize.StripMarkup)
	c.Featurize.AlphaNum = r.getBool("featurize.alphanum", c.Featurize.AlphaNum)
	c.Featurize.StripNumbers = r.getBool("featurize.strip.numbers", c.Featurize.StripNumbers)
	c.LogLevel = p.GetString("log.level", c.LogLevel)
	c.LogFormat = p.GetString("log.format", c.LogFormat)

	if r.err != nil {
		return Config{}, r.err
	}
	if c.TestFraction < 0 || c.TestFraction >= 1 {
		return Config{}, errors.Errorf("test.fraction must be in [0, 1), got %v", c.TestFraction)
	}
	if _, err := AlgorithmByName(c.Algorithm); err != nil {
		return Config{}, err
	}
	return c, nil
}

// reader parses typed values and keeps the first error.
type reader struct {
	p   *properties.Properties
	err error
}

func (r *reader) value(key string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	return r.p.Get(key)
}

func (r *reader) getFloat(key string, def float64) float64 {
	s, ok := r.value(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = errors.Wrapf(err, "property %s", key)
		return def
	}
	return v
}

func (r *reader) getInt(key string, def int64) int64 {
	s, ok := r.value(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		r.err = errors.Wrapf(err, "property %s", key)
		return def
	}
	return v
}

func (r *reader) getBool(key string, def bool) bool {
	s, ok := r.value(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		r.err = errors.Wrapf(err, "property %s", key)
		return def
	}
	return v
}
