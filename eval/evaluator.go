// Package eval computes multiclass classification metrics.
package eval

import (
	"math"

	"github.com/hscells/elemental/feature"
	"github.com/hscells/elemental/learning"
	"gonum.org/v1/gonum/floats"
)

// Outcome is the model output for one labelled sample.
type Outcome struct {
	Label  int
	Scores []float64
}

// Predicted is the most probable class.
func (o Outcome) Predicted() int {
	return floats.MaxIdx(o.Scores)
}

// Evaluator is an interface for scoring a set of outcomes.
type Evaluator interface {
	Score(outcomes []Outcome, classes int) float64
	Name() string
}

// epsilon bounds probabilities away from zero when taking logarithms.
const epsilon = 1e-15

type microAccuracy struct{}
type macroAccuracy struct{}
type logLoss struct{}
type logLossReduction struct{}

// TopKAccuracy is the fraction of samples whose label is among the K most probable classes.
type TopKAccuracy struct {
	K int
}

var (
	// MicroAccuracy is the fraction of samples predicted correctly.
	MicroAccuracy = microAccuracy{}
	// MacroAccuracy is the mean over classes of per-class accuracy (recall).
	MacroAccuracy = macroAccuracy{}
	// LogLoss is the mean negative log probability assigned to the true label.
	LogLoss = logLoss{}
	// LogLossReduction is the improvement in log-loss over predicting the label prior.
	LogLossReduction = logLossReduction{}
)

func (microAccuracy) Name() string {
	return "MicroAccuracy"
}

func (microAccuracy) Score(outcomes []Outcome, classes int) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	var correct float64
	for _, o := range outcomes {
		if o.Predicted() == o.Label {
			correct++
		}
	}
	return correct / float64(len(outcomes))
}

func (macroAccuracy) Name() string {
	return "MacroAccuracy"
}

func (macroAccuracy) Score(outcomes []Outcome, classes int) float64 {
	cm := NewConfusionMatrix(outcomes, classes)
	var sum, present float64
	for k := 0; k < classes; k++ {
		if cm.Support(k) > 0 {
			sum += cm.Recall(k)
			present++
		}
	}
	if present == 0 {
		return 0
	}
	return sum / present
}

func (logLoss) Name() string {
	return "LogLoss"
}

func (logLoss) Score(outcomes []Outcome, classes int) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	var sum float64
	for _, o := range outcomes {
		sum += sampleLogLoss(o)
	}
	return sum / float64(len(outcomes))
}

func (logLossReduction) Name() string {
	return "LogLossReduction"
}

func (logLossReduction) Score(outcomes []Outcome, classes int) float64 {
	prior := priorLogLoss(outcomes, classes)
	if prior == 0 {
		return 0
	}
	return (prior - LogLoss.Score(outcomes, classes)) / prior
}

func (t TopKAccuracy) Name() string {
	return "TopKAccuracy"
}

func (t TopKAccuracy) Score(outcomes []Outcome, classes int) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	var hits float64
	for _, o := range outcomes {
		// The label is in the top K when fewer than K classes score strictly higher.
		var higher int
		for _, s := range o.Scores {
			if s > o.Scores[o.Label] {
				higher++
			}
		}
		if higher < t.K {
			hits++
		}
	}
	return hits / float64(len(outcomes))
}

// PerClassLogLoss is the log-loss of the samples of each class. Classes without samples score 0.
func PerClassLogLoss(outcomes []Outcome, classes int) []float64 {
	sum := make([]float64, classes)
	n := make([]float64, classes)
	for _, o := range outcomes {
		sum[o.Label] += sampleLogLoss(o)
		n[o.Label]++
	}
	for k := range sum {
		if n[k] > 0 {
			sum[k] /= n[k]
		}
	}
	return sum
}

func sampleLogLoss(o Outcome) float64 {
	return -math.Log(math.Max(o.Scores[o.Label], epsilon))
}

// priorLogLoss is the log-loss of a model that always predicts the label distribution of outcomes.
func priorLogLoss(outcomes []Outcome, classes int) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	counts := make([]float64, classes)
	for _, o := range outcomes {
		counts[o.Label]++
	}
	n := float64(len(outcomes))
	var ll float64
	for _, c := range counts {
		if c > 0 {
			p := c / n
			ll -= p * math.Log(p)
		}
	}
	return ll
}

// Outcomes scores every sample with c.
func Outcomes(c learning.Classifier, X []feature.Features, y []int) []Outcome {
	out := make([]Outcome, len(X))
	for i, x := range X {
		out[i] = Outcome{Label: y[i], Scores: c.Scores(x)}
	}
	return out
}
