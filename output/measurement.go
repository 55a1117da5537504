package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/hscells/elemental/eval"
)

// CsvMeasurementFormatter outputs one row per element type with its support, precision,
// recall and log-loss.
func CsvMeasurementFormatter(m eval.Metrics) (string, error) {
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	w.Write([]string{"Element", "Support", "Precision", "Recall", "LogLoss"})
	cm := m.ConfusionMatrix
	for k, label := range cm.Classes {
		w.Write([]string{
			label,
			strconv.Itoa(cm.Support(k)),
			strconv.FormatFloat(cm.Precision(k), 'f', -1, 64),
			strconv.FormatFloat(cm.Recall(k), 'f', -1, 64),
			strconv.FormatFloat(perClass(m.PerClassLogLoss, k), 'f', -1, 64),
		})
	}
	w.Flush()
	return b.String(), w.Error()
}
