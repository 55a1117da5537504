package elemental

import (
	"strings"

	"github.com/hscells/elemental/learning"
	"github.com/pkg/errors"
)

// Algorithm selects the learner a Trainer fits. New receives the run's Config and a callback
// invoked after each training epoch (nil when progress is not reported).
type Algorithm struct {
	Name string
	New  func(c Config, onEpoch learning.EpochFunc) learning.Learner
}

var (
	// SdcaMaximumEntropy is an entropy-regularised multinomial logistic regression.
	SdcaMaximumEntropy = Algorithm{
		Name: "SdcaMaximumEntropy",
		New: func(c Config, onEpoch learning.EpochFunc) learning.Learner {
			m := learning.NewMaximumEntropy()
			m.L2 = c.Linear.L2
			m.LearningRate = c.Linear.LearningRate
			m.Iterations = c.Linear.Iterations
			m.Tolerance = c.Linear.Tolerance
			m.Seed = c.Seed
			m.OnEpoch = onEpoch
			return m
		},
	}
	// NaiveBayes is multinomial naive Bayes over the featurized n-gram weights.
	NaiveBayes = Algorithm{
		Name: "NaiveBayes",
		New: func(c Config, _ learning.EpochFunc) learning.Learner {
			nb := learning.NewNaiveBayes()
			nb.Alpha = c.NaiveBayesAlpha
			return nb
		},
	}
	// OneVersusAll trains a binary logistic regression per element type.
	OneVersusAll = Algorithm{
		Name: "OneVersusAll",
		New: func(c Config, onEpoch learning.EpochFunc) learning.Learner {
			o := learning.NewOneVersusAll()
			o.L2 = c.Linear.L2
			o.LearningRate = c.Linear.LearningRate
			o.Iterations = c.Linear.Iterations
			o.Tolerance = c.Linear.Tolerance
			o.BatchSize = c.Linear.BatchSize
			o.Seed = c.Seed
			o.OnEpoch = onEpoch
			return o
		},
	}
)

// Algorithms lists every available algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{SdcaMaximumEntropy, NaiveBayes, OneVersusAll}
}

// AlgorithmByName finds an algorithm, ignoring case.
func AlgorithmByName(name string) (Algorithm, error) {
	for _, a := range Algorithms() {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	names := make([]string, 0, 3)
	for _, a := range Algorithms() {
		names = append(names, a.Name)
	}
	return Algorithm{}, errors.Errorf("unknown algorithm %q (want one of %s)", name, strings.Join(names, ", "))
}
