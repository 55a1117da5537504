package output

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/hscells/elemental/eval"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// TextEvaluationFormatter outputs the summary metrics followed by a per-class table.
func TextEvaluationFormatter(m eval.Metrics) (string, error) {
	b := new(bytes.Buffer)
	w := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)

	measures := m.Measures()
	names := make([]string, 0, len(measures))
	for name := range measures {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, formatFloat(measures[name]))
	}
	fmt.Fprintf(w, "Samples\t%d\n", m.Samples)
	if m.Skipped > 0 {
		fmt.Fprintf(w, "Skipped\t%d\n", m.Skipped)
	}

	if len(m.ConfusionMatrix.Classes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Element\tSupport\tPrecision\tRecall\tLogLoss")
		for k, label := range m.ConfusionMatrix.Classes {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
				label,
				m.ConfusionMatrix.Support(k),
				formatFloat(m.ConfusionMatrix.Precision(k)),
				formatFloat(m.ConfusionMatrix.Recall(k)),
				formatFloat(perClass(m.PerClassLogLoss, k)))
		}
	}

	if err := w.Flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func perClass(v []float64, k int) float64 {
	if k < len(v) {
		return v[k]
	}
	return 0
}
