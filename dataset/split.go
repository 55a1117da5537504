package dataset

import (
	"math"
	"math/rand"
)

// DefaultSeed seeds the train/test split so that runs are reproducible.
const DefaultSeed int64 = 111

// DefaultTestFraction is the share of records held out for evaluation.
const DefaultTestFraction = 0.3

// Split is a disjoint, exhaustive partition of a dataset.
type Split struct {
	TrainSet Dataset
	TestSet  Dataset
	// TrainIndex and TestIndex are positions in the source dataset.
	TrainIndex []int
	TestIndex  []int
}

// TrainTestSplit shuffles the record indices with a source seeded by seed and holds out
// round(testFraction*n) of them as the test set. Both sets keep the order of the shuffle.
func TrainTestSplit(d Dataset, testFraction float64, seed int64) Split {
	if testFraction < 0 {
		testFraction = 0
	}
	if testFraction > 1 {
		testFraction = 1
	}

	n := d.Len()
	indices := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(math.Round(float64(n) * testFraction))

	s := Split{
		TrainSet:   Dataset{Schema: d.Schema, Records: make([]Record, 0, n-nTest)},
		TestSet:    Dataset{Schema: d.Schema, Records: make([]Record, 0, nTest)},
		TrainIndex: make([]int, 0, n-nTest),
		TestIndex:  make([]int, 0, nTest),
	}
	for i, idx := range indices {
		if i < nTest {
			s.TestSet.Records = append(s.TestSet.Records, d.Records[idx])
			s.TestIndex = append(s.TestIndex, idx)
		} else {
			s.TrainSet.Records = append(s.TrainSet.Records, d.Records[idx])
			s.TrainIndex = append(s.TrainIndex, idx)
		}
	}
	return s
}
