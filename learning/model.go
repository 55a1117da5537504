// Package learning contains the multiclass learners used to train element classifiers.
package learning

import (
	"math"

	"github.com/hscells/elemental/feature"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Classifier is a trained multiclass model.
type Classifier interface {
	// Scores returns one probability per class. The probabilities sum to one.
	Scores(x feature.Features) []float64
	// Classes is the number of classes the model was trained on.
	Classes() int
}

// Learner fits a Classifier to labelled feature vectors. Labels are keys in [0, classes) and
// every vector has IDs in [0, dim).
type Learner interface {
	Name() string
	Fit(X []feature.Features, y []int, dim, classes int) (Classifier, error)
}

// EpochFunc is called by iterative learners after every pass over the training data.
type EpochFunc func(epoch int, loss float64)

// ErrNoData is returned when a learner is given nothing to learn from.
var ErrNoData = errors.New("no training data")

// Predict returns the most probable class of every vector.
func Predict(c Classifier, X []feature.Features) []int {
	out := make([]int, len(X))
	for i, x := range X {
		out[i] = floats.MaxIdx(c.Scores(x))
	}
	return out
}

func validate(X []feature.Features, y []int, dim, classes int) error {
	if len(X) == 0 || dim <= 0 || classes <= 0 {
		return errors.Wrapf(ErrNoData, "%d samples, %d features, %d classes", len(X), dim, classes)
	}
	if len(X) != len(y) {
		return errors.Errorf("%d samples but %d labels", len(X), len(y))
	}
	for i, label := range y {
		if label < 0 || label >= classes {
			return errors.Errorf("label %d of sample %d is outside [0, %d)", label, i, classes)
		}
		if n := len(X[i]); n > 0 && (X[i][0].ID < 0 || X[i][n-1].ID >= dim) {
			return errors.Errorf("sample %d has feature IDs outside [0, %d)", i, dim)
		}
	}
	return nil
}

// softmax converts log-scores into probabilities in place.
func softmax(z []float64) []float64 {
	lse := floats.LogSumExp(z)
	for k := range z {
		z[k] = math.Exp(z[k] - lse)
	}
	return z
}

func sigmoid(x float64) float64 { return 1.0 / (1.0 + math.Exp(-x)) }

// converged reports whether the relative change in loss is below tol.
func converged(prev, loss, tol float64) bool {
	if math.IsInf(prev, 1) {
		return false
	}
	return math.Abs(prev-loss) <= tol*math.Max(math.Abs(prev), 1e-12)
}
