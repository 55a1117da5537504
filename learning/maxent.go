package learning

import (
	"math"
	"math/rand"

	"github.com/hscells/elemental/feature"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MaximumEntropy trains an L2-regularised multinomial logistic regression with stochastic
// coordinate updates over a seeded shuffle of the training set.
type MaximumEntropy struct {
	L2           float64
	LearningRate float64
	Iterations   int
	Tolerance    float64
	Seed         int64
	OnEpoch      EpochFunc
}

// NewMaximumEntropy creates a learner with default hyperparameters.
func NewMaximumEntropy() *MaximumEntropy {
	return &MaximumEntropy{
		L2:           1e-4,
		LearningRate: 0.5,
		Iterations:   100,
		Tolerance:    1e-6,
		Seed:         111,
	}
}

func (m *MaximumEntropy) Name() string {
	return "SdcaMaximumEntropy"
}

func (m *MaximumEntropy) Fit(X []feature.Features, y []int, dim, classes int) (Classifier, error) {
	if err := validate(X, y, dim, classes); err != nil {
		return nil, err
	}

	model := &MaximumEntropyModel{
		Weights: make([]float64, classes*dim),
		Bias:    make([]float64, classes),
		Dim:     dim,
		K:       classes,
	}
	w := model.matrix()
	rng := rand.New(rand.NewSource(m.Seed))
	z := make([]float64, classes)
	prev := math.Inf(1)

	for epoch := 0; epoch < m.Iterations; epoch++ {
		eta := m.LearningRate / math.Sqrt(float64(epoch+1))
		var nll float64
		for _, i := range rng.Perm(len(X)) {
			x := X[i]
			for k := 0; k < classes; k++ {
				z[k] = x.Dot(w.RawRowView(k)) + model.Bias[k]
			}
			p := softmax(z)
			nll -= math.Log(math.Max(p[y[i]], 1e-15))
			for k := 0; k < classes; k++ {
				g := p[k]
				if k == y[i] {
					g--
				}
				row := w.RawRowView(k)
				for _, f := range x {
					row[f.ID] -= eta * g * f.Score
				}
				model.Bias[k] -= eta * g
			}
		}
		// Weight decay of one (1-eta*L2) step per sample, applied once for the epoch.
		w.Scale(math.Pow(math.Max(1-eta*m.L2, 0), float64(len(X))), w)

		loss := nll/float64(len(X)) + 0.5*m.L2*floats.Dot(model.Weights, model.Weights)
		if m.OnEpoch != nil {
			m.OnEpoch(epoch, loss)
		}
		if converged(prev, loss, m.Tolerance) {
			break
		}
		prev = loss
	}
	return model, nil
}

// MaximumEntropyModel holds the weights of a trained MaximumEntropy classifier.
type MaximumEntropyModel struct {
	// Weights is a K×Dim row-major matrix.
	Weights []float64
	Bias    []float64
	Dim     int
	K       int
}

func (m *MaximumEntropyModel) matrix() *mat.Dense {
	return mat.NewDense(m.K, m.Dim, m.Weights)
}

func (m *MaximumEntropyModel) Classes() int {
	return m.K
}

func (m *MaximumEntropyModel) Scores(x feature.Features) []float64 {
	z := make([]float64, m.K)
	for k := 0; k < m.K; k++ {
		z[k] = x.Dot(m.Weights[k*m.Dim:(k+1)*m.Dim]) + m.Bias[k]
	}
	return softmax(z)
}
