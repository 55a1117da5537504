package eval

import (
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"
)

// MarshalJSON implements json.Marshaler.
func (m Metrics) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(m)
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (m Metrics) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"microAccuracy":`)
	w.Float64(m.MicroAccuracy)
	w.RawString(`,"macroAccuracy":`)
	w.Float64(m.MacroAccuracy)
	w.RawString(`,"logLoss":`)
	w.Float64(m.LogLoss)
	w.RawString(`,"logLossReduction":`)
	w.Float64(m.LogLossReduction)
	w.RawString(`,"topK":`)
	w.Int(m.TopK)
	w.RawString(`,"topKAccuracy":`)
	w.Float64(m.TopKAccuracy)
	w.RawString(`,"perClassLogLoss":`)
	writeFloats(w, m.PerClassLogLoss)
	w.RawString(`,"confusionMatrix":`)
	m.ConfusionMatrix.MarshalEasyJSON(w)
	w.RawString(`,"samples":`)
	w.Int(m.Samples)
	w.RawString(`,"skipped":`)
	w.Int(m.Skipped)
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (cm ConfusionMatrix) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(cm)
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (cm ConfusionMatrix) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"classes":[`)
	for i, c := range cm.Classes {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(c)
	}
	w.RawString(`],"counts":[`)
	for i, row := range cm.Counts {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawByte('[')
		for j, c := range row {
			if j > 0 {
				w.RawByte(',')
			}
			w.Int(c)
		}
		w.RawByte(']')
	}
	w.RawString(`],"precision":`)
	writeFloats(w, cm.PerClassPrecision())
	w.RawString(`,"recall":`)
	writeFloats(w, cm.PerClassRecall())
	w.RawByte('}')
}

func writeFloats(w *jwriter.Writer, v []float64) {
	w.RawByte('[')
	for i, f := range v {
		if i > 0 {
			w.RawByte(',')
		}
		w.Float64(f)
	}
	w.RawByte(']')
}
