package learning

import (
	"math"
	"math/rand"

	"github.com/hscells/elemental/feature"
	"gonum.org/v1/gonum/floats"
)

// OneVersusAll trains one binary logistic regression per class with mini-batch gradient
// descent and normalises the per-class probabilities.
type OneVersusAll struct {
	L2           float64
	LearningRate float64
	Iterations   int
	BatchSize    int
	Tolerance    float64
	Seed         int64
	OnEpoch      EpochFunc
}

// NewOneVersusAll creates a learner with default hyperparameters.
func NewOneVersusAll() *OneVersusAll {
	return &OneVersusAll{
		L2:           1e-4,
		LearningRate: 1,
		Iterations:   100,
		BatchSize:    16,
		Tolerance:    1e-6,
		Seed:         111,
	}
}

func (o *OneVersusAll) Name() string {
	return "OneVersusAll"
}

func (o *OneVersusAll) Fit(X []feature.Features, y []int, dim, classes int) (Classifier, error) {
	if err := validate(X, y, dim, classes); err != nil {
		return nil, err
	}
	batch := o.BatchSize
	if batch <= 0 {
		batch = len(X)
	}

	model := &OneVersusAllModel{
		Weights: make([]float64, classes*dim),
		Bias:    make([]float64, classes),
		Dim:     dim,
		K:       classes,
	}
	rng := rand.New(rand.NewSource(o.Seed))
	grad := make([]float64, dim)
	prev := math.Inf(1)

	for epoch := 0; epoch < o.Iterations; epoch++ {
		perm := rng.Perm(len(X))
		var bce float64
		for c := 0; c < classes; c++ {
			w := model.Weights[c*dim : (c+1)*dim]
			for start := 0; start < len(perm); start += batch {
				end := start + batch
				if end > len(perm) {
					end = len(perm)
				}
				for j := range grad {
					grad[j] = 0
				}
				var gb float64
				for _, i := range perm[start:end] {
					p := sigmoid(X[i].Dot(w) + model.Bias[c])
					t := 0.0
					if y[i] == c {
						t = 1
					}
					q := math.Min(math.Max(p, 1e-12), 1-1e-12)
					bce -= t*math.Log(q) + (1-t)*math.Log(1-q)
					d := p - t
					for _, f := range X[i] {
						grad[f.ID] += d * f.Score
					}
					gb += d
				}
				scale := o.LearningRate / float64(end-start)
				floats.Scale(1-o.LearningRate*o.L2, w)
				floats.AddScaled(w, -scale, grad)
				model.Bias[c] -= scale * gb
			}
		}

		loss := bce/float64(len(X)*classes) + 0.5*o.L2*floats.Dot(model.Weights, model.Weights)
		if o.OnEpoch != nil {
			o.OnEpoch(epoch, loss)
		}
		if converged(prev, loss, o.Tolerance) {
			break
		}
		prev = loss
	}
	return model, nil
}

// OneVersusAllModel holds the per-class logistic regressions.
type OneVersusAllModel struct {
	// Weights is a K×Dim row-major matrix.
	Weights []float64
	Bias    []float64
	Dim     int
	K       int
}

func (m *OneVersusAllModel) Classes() int {
	return m.K
}

func (m *OneVersusAllModel) Scores(x feature.Features) []float64 {
	p := make([]float64, m.K)
	for c := 0; c < m.K; c++ {
		p[c] = sigmoid(x.Dot(m.Weights[c*m.Dim:(c+1)*m.Dim]) + m.Bias[c])
	}
	if sum := floats.Sum(p); sum > 0 {
		floats.Scale(1/sum, p)
	}
	return p
}
