// Package output provides different formats of output for evaluation results.
package output

import (
	"bytes"
	"encoding/json"

	"github.com/hscells/elemental/eval"
	"github.com/mailru/easyjson"
)

// EvaluationFormatter renders the metrics of an evaluated model.
type EvaluationFormatter func(m eval.Metrics) (string, error)

// JsonEvaluationFormatter outputs metrics in an indented JSON format.
func JsonEvaluationFormatter(m eval.Metrics) (string, error) {
	v, err := easyjson.Marshal(m)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	if err := json.Indent(&b, v, "", "    "); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Formatters maps the names accepted on the command line to formatters.
var Formatters = map[string]EvaluationFormatter{
	"text": TextEvaluationFormatter,
	"json": JsonEvaluationFormatter,
	"csv":  CsvMeasurementFormatter,
}
