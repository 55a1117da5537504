// Package feature turns element records into sparse numeric feature vectors.
package feature

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Feature is a single non-zero component of a feature vector.
type Feature struct {
	ID    int
	Score float64
}

// NewFeature creates a new feature with the specified ID and `Score`.
func NewFeature(id int, score float64) Feature {
	return Feature{id, score}
}

// Features is a sparse feature vector ordered by ID, with no repeated IDs.
type Features []Feature

func (ff Features) Len() int           { return len(ff) }
func (ff Features) Swap(i, j int)      { ff[i], ff[j] = ff[j], ff[i] }
func (ff Features) Less(i, j int) bool { return ff[i].ID < ff[j].ID }

// Dot computes the inner product with a dense weight vector.
func (ff Features) Dot(w []float64) float64 {
	var s float64
	for _, f := range ff {
		if f.ID < len(w) {
			s += w[f.ID] * f.Score
		}
	}
	return s
}

// Values returns the scores in ID order.
func (ff Features) Values() []float64 {
	v := make([]float64, len(ff))
	for i, f := range ff {
		v[i] = f.Score
	}
	return v
}

// Normalise scales the vector to unit L2 norm. A zero vector is returned unchanged.
func (ff Features) Normalise() Features {
	norm := floats.Norm(ff.Values(), 2)
	if norm == 0 {
		return ff
	}
	out := make(Features, len(ff))
	for i, f := range ff {
		out[i] = Feature{f.ID, f.Score / norm}
	}
	return out
}

// FromCounts builds a sorted vector from a map of ID to count.
func FromCounts(counts map[int]float64) Features {
	ff := make(Features, 0, len(counts))
	for id, c := range counts {
		ff = append(ff, Feature{id, c})
	}
	sort.Sort(ff)
	return ff
}

// Concatenate joins vectors end to end. dims[i] is the dimensionality of parts[i]; the IDs of
// each part are offset by the sum of the preceding dims.
func Concatenate(dims []int, parts ...Features) Features {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make(Features, 0, n)
	offset := 0
	for i, p := range parts {
		for _, f := range p {
			out = append(out, Feature{f.ID + offset, f.Score})
		}
		offset += dims[i]
	}
	return out
}
