package learning_test

import (
	"math"
	"testing"

	"github.com/hscells/elemental/feature"
	"github.com/hscells/elemental/learning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable builds three classes, each signalled by its own block of two features.
func separable(n int) ([]feature.Features, []int) {
	var X []feature.Features
	var y []int
	for i := 0; i < n; i++ {
		c := i % 3
		noise := float64(i%5) / 10
		X = append(X, feature.Features{
			feature.NewFeature(c*2, 1),
			feature.NewFeature(c*2+1, 0.5+noise),
			feature.NewFeature(6, 0.2),
		})
		y = append(y, c)
	}
	return X, y
}

func learners() []learning.Learner {
	return []learning.Learner{
		learning.NewMaximumEntropy(),
		learning.NewNaiveBayes(),
		learning.NewOneVersusAll(),
	}
}

func TestLearnersSeparable(t *testing.T) {
	X, y := separable(60)
	for _, l := range learners() {
		t.Run(l.Name(), func(t *testing.T) {
			c, err := l.Fit(X, y, 7, 3)
			require.NoError(t, err)
			assert.Equal(t, 3, c.Classes())

			pred := learning.Predict(c, X)
			assert.Equal(t, y, pred)

			for _, x := range X[:5] {
				var sum float64
				for _, p := range c.Scores(x) {
					assert.True(t, p >= 0 && p <= 1)
					sum += p
				}
				assert.InDelta(t, 1.0, sum, 1e-9)
			}
		})
	}
}

func TestLearnersDeterministic(t *testing.T) {
	X, y := separable(30)
	for _, l := range learners() {
		a, err := l.Fit(X, y, 7, 3)
		require.NoError(t, err)
		b, err := l.Fit(X, y, 7, 3)
		require.NoError(t, err)
		assert.Equal(t, a, b, l.Name())
	}
}

func TestLearnersRejectBadInput(t *testing.T) {
	X, y := separable(6)
	for _, l := range learners() {
		_, err := l.Fit(nil, nil, 7, 3)
		assert.ErrorIs(t, err, learning.ErrNoData)

		_, err = l.Fit(X, y[:3], 7, 3)
		assert.Error(t, err)

		_, err = l.Fit(X, []int{0, 1, 2, 3, 0, 1}, 7, 3)
		assert.Error(t, err)

		_, err = l.Fit(X, y, 5, 3)
		assert.Error(t, err, "feature IDs beyond dim")
	}
}

func TestMaximumEntropyOnEpoch(t *testing.T) {
	X, y := separable(30)
	m := learning.NewMaximumEntropy()
	var losses []float64
	m.OnEpoch = func(epoch int, loss float64) {
		assert.Equal(t, len(losses), epoch)
		losses = append(losses, loss)
	}
	_, err := m.Fit(X, y, 7, 3)
	require.NoError(t, err)
	require.NotEmpty(t, losses)
	assert.Less(t, losses[len(losses)-1], losses[0])
	for _, l := range losses {
		assert.False(t, math.IsNaN(l))
	}
}

func TestEmptyVectorGetsPrior(t *testing.T) {
	X, y := separable(30)
	c, err := learning.NewNaiveBayes().Fit(X, y, 7, 3)
	require.NoError(t, err)
	p := c.Scores(nil)
	assert.InDelta(t, 1.0/3, p[0], 1e-9)
}

// twoClasses alternates between two classes, each marked by its own feature plus a shared one.
func twoClasses(n int) ([]feature.Features, []int) {
	X := make([]feature.Features, n)
	y := make([]int, n)
	for i := range X {
		c := i % 2
		X[i] = feature.Features{feature.NewFeature(c, 1), feature.NewFeature(2, 1)}
		y[i] = c
	}
	return X, y
}

// The weight decay of one epoch must shrink smoothly with the number of samples: eta*L2*n
// crosses 1 between 198 and 202 samples here.
func TestMaximumEntropyDecayIsSmoothInSamples(t *testing.T) {
	fit := func(n int) ([]feature.Features, []int, learning.Classifier, float64) {
		m := learning.NewMaximumEntropy()
		m.L2 = 0.01
		m.Iterations = 1
		X, y := twoClasses(n)
		c, err := m.Fit(X, y, 3, 2)
		require.NoError(t, err)
		var sum float64
		for _, v := range c.(*learning.MaximumEntropyModel).Weights {
			sum += v * v
		}
		return X, y, c, math.Sqrt(sum)
	}

	var norms []float64
	for _, n := range []int{198, 202} {
		X, y, c, norm := fit(n)
		assert.Equal(t, y, learning.Predict(c, X), "n=%d", n)
		for i, x := range X[:2] {
			assert.Greater(t, c.Scores(x)[y[i]], 0.5, "n=%d", n)
		}
		norms = append(norms, norm)
	}
	require.Greater(t, norms[0], 0.0)
	assert.InDelta(t, 1.0, norms[1]/norms[0], 0.1)

	_, _, _, small := fit(100)
	_, _, _, large := fit(1000)
	assert.Less(t, large, small)
}
