package feature

import (
	"github.com/hscells/elemental/dataset"
)

// Pipeline is the fixed feature engineering chain: one TextFeaturizer per feature column, their
// outputs concatenated in column order, plus the label encoding.
type Pipeline struct {
	Featurizers []*TextFeaturizer
	Labels      *LabelEncoder
}

// NewPipeline creates an unfitted pipeline over columns.
func NewPipeline(columns []string, opts Options) *Pipeline {
	p := &Pipeline{Labels: NewLabelEncoder()}
	for _, c := range columns {
		p.Featurizers = append(p.Featurizers, NewTextFeaturizer(c, opts))
	}
	return p
}

// Fit learns every column's vocabulary and the label mapping from d.
func (p *Pipeline) Fit(d dataset.Dataset) error {
	for _, f := range p.Featurizers {
		if err := f.Fit(d.Column(f.Column)); err != nil {
			return err
		}
	}
	p.Labels.Fit(d.Labels())
	return nil
}

// Dims is the dimensionality of each column's block of the concatenated vector.
func (p *Pipeline) Dims() []int {
	dims := make([]int, len(p.Featurizers))
	for i, f := range p.Featurizers {
		dims[i] = f.Dim()
	}
	return dims
}

// Dim is the dimensionality of the concatenated vector.
func (p *Pipeline) Dim() int {
	var n int
	for _, d := range p.Dims() {
		n += d
	}
	return n
}

// Transform featurizes every column of r and concatenates the results.
func (p *Pipeline) Transform(r dataset.Record) (Features, error) {
	parts := make([]Features, len(p.Featurizers))
	for i, f := range p.Featurizers {
		var err error
		parts[i], err = f.Transform(r.Get(f.Column))
		if err != nil {
			return nil, err
		}
	}
	return Concatenate(p.Dims(), parts...), nil
}
