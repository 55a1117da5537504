package eval

// ConfusionMatrix counts samples by true class (rows) and predicted class (columns).
type ConfusionMatrix struct {
	Classes []string
	Counts  [][]int
}

// NewConfusionMatrix tallies outcomes over classes.
func NewConfusionMatrix(outcomes []Outcome, classes int) ConfusionMatrix {
	cm := ConfusionMatrix{Counts: make([][]int, classes)}
	for k := range cm.Counts {
		cm.Counts[k] = make([]int, classes)
	}
	for _, o := range outcomes {
		cm.Counts[o.Label][o.Predicted()]++
	}
	return cm
}

// Support is the number of samples whose true class is k.
func (cm ConfusionMatrix) Support(k int) int {
	var n int
	for _, c := range cm.Counts[k] {
		n += c
	}
	return n
}

// Predictions is the number of samples predicted as k.
func (cm ConfusionMatrix) Predictions(k int) int {
	var n int
	for _, row := range cm.Counts {
		n += row[k]
	}
	return n
}

// Precision of class k, or 0 if nothing was predicted as k.
func (cm ConfusionMatrix) Precision(k int) float64 {
	p := cm.Predictions(k)
	if p == 0 {
		return 0
	}
	return float64(cm.Counts[k][k]) / float64(p)
}

// Recall of class k, or 0 if k has no samples.
func (cm ConfusionMatrix) Recall(k int) float64 {
	s := cm.Support(k)
	if s == 0 {
		return 0
	}
	return float64(cm.Counts[k][k]) / float64(s)
}

// PerClassPrecision is Precision for every class.
func (cm ConfusionMatrix) PerClassPrecision() []float64 {
	p := make([]float64, len(cm.Counts))
	for k := range p {
		p[k] = cm.Precision(k)
	}
	return p
}

// PerClassRecall is Recall for every class.
func (cm ConfusionMatrix) PerClassRecall() []float64 {
	r := make([]float64, len(cm.Counts))
	for k := range r {
		r[k] = cm.Recall(k)
	}
	return r
}
