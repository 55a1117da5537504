package eval

import (
	"github.com/hscells/elemental/feature"
	"github.com/hscells/elemental/learning"
)

// DefaultTopK is the K reported by Evaluate for top-K accuracy.
const DefaultTopK = 3

// Metrics summarise a classifier's performance on a labelled test set.
type Metrics struct {
	MicroAccuracy    float64
	MacroAccuracy    float64
	LogLoss          float64
	LogLossReduction float64
	TopK             int
	TopKAccuracy     float64
	PerClassLogLoss  []float64
	ConfusionMatrix  ConfusionMatrix
	// Samples is the number of evaluated samples; Skipped counts test samples whose label
	// never occurred in training and so could not be scored.
	Samples int
	Skipped int
}

// Evaluate scores c on X against y. labels names each class key.
func Evaluate(c learning.Classifier, X []feature.Features, y []int, labels []string) Metrics {
	outcomes := Outcomes(c, X, y)
	classes := c.Classes()
	topK := TopKAccuracy{K: DefaultTopK}

	cm := NewConfusionMatrix(outcomes, classes)
	cm.Classes = labels

	return Metrics{
		MicroAccuracy:    MicroAccuracy.Score(outcomes, classes),
		MacroAccuracy:    MacroAccuracy.Score(outcomes, classes),
		LogLoss:          LogLoss.Score(outcomes, classes),
		LogLossReduction: LogLossReduction.Score(outcomes, classes),
		TopK:             topK.K,
		TopKAccuracy:     topK.Score(outcomes, classes),
		PerClassLogLoss:  PerClassLogLoss(outcomes, classes),
		ConfusionMatrix:  cm,
		Samples:          len(outcomes),
	}
}

// Measures flattens the scalar metrics keyed by evaluator name.
func (m Metrics) Measures() map[string]float64 {
	return map[string]float64{
		MicroAccuracy.Name():    m.MicroAccuracy,
		MacroAccuracy.Name():    m.MacroAccuracy,
		LogLoss.Name():          m.LogLoss,
		LogLossReduction.Name(): m.LogLossReduction,
		TopKAccuracy{}.Name():   m.TopKAccuracy,
	}
}
