package learning

import (
	"math"

	"github.com/hscells/elemental/feature"
)

// NaiveBayes is a multinomial naive Bayes learner with additive smoothing. Feature scores must
// be non-negative; they are treated as fractional term counts.
type NaiveBayes struct {
	Alpha float64
}

// NewNaiveBayes creates a learner with Laplace smoothing.
func NewNaiveBayes() *NaiveBayes {
	return &NaiveBayes{Alpha: 1}
}

func (nb *NaiveBayes) Name() string {
	return "NaiveBayes"
}

func (nb *NaiveBayes) Fit(X []feature.Features, y []int, dim, classes int) (Classifier, error) {
	if err := validate(X, y, dim, classes); err != nil {
		return nil, err
	}

	counts := make([]float64, classes*dim)
	totals := make([]float64, classes)
	docs := make([]float64, classes)
	for i, x := range X {
		c := y[i]
		docs[c]++
		for _, f := range x {
			if f.Score <= 0 {
				continue
			}
			counts[c*dim+f.ID] += f.Score
			totals[c] += f.Score
		}
	}

	model := &NaiveBayesModel{
		LogPrior:      make([]float64, classes),
		LogLikelihood: make([]float64, classes*dim),
		Dim:           dim,
		K:             classes,
	}
	n := float64(len(X))
	for c := 0; c < classes; c++ {
		// Classes absent from the training data keep a small non-zero prior.
		model.LogPrior[c] = math.Log((docs[c] + nb.Alpha) / (n + nb.Alpha*float64(classes)))
		denom := totals[c] + nb.Alpha*float64(dim)
		for j := 0; j < dim; j++ {
			model.LogLikelihood[c*dim+j] = math.Log((counts[c*dim+j] + nb.Alpha) / denom)
		}
	}
	return model, nil
}

// NaiveBayesModel holds the log probabilities of a trained NaiveBayes classifier.
type NaiveBayesModel struct {
	LogPrior []float64
	// LogLikelihood is a K×Dim row-major matrix.
	LogLikelihood []float64
	Dim           int
	K             int
}

func (m *NaiveBayesModel) Classes() int {
	return m.K
}

func (m *NaiveBayesModel) Scores(x feature.Features) []float64 {
	z := make([]float64, m.K)
	for c := 0; c < m.K; c++ {
		z[c] = m.LogPrior[c] + x.Dot(m.LogLikelihood[c*m.Dim:(c+1)*m.Dim])
	}
	return softmax(z)
}
