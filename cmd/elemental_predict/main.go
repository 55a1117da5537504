// Command elemental_predict labels UI elements with a model saved by elemental.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"github.com/hscells/elemental"
	"github.com/hscells/elemental/dataset"
	"go.uber.org/zap"
)

var (
	name    = "elemental_predict"
	version = "19.Oct.2026"
)

type args struct {
	Model   string `arg:"-m" help:"path to a saved model (default is data.csv beside this binary)"`
	Input   string `arg:"-i,required" help:"CSV of elements to label (the Element column is optional)"`
	Verbose bool   `arg:"-v" help:"log debug messages"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
# %s
Predict the element type of UI controls. Output is CSV: ControlId, Element, Predicted, Score.`, name, version)
}

func main() {
	var args args
	arg.MustParse(&args)

	if err := run(args); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, 0).ErrorStack())
		os.Exit(1)
	}
}

func run(args args) error {
	level := "info"
	if args.Verbose {
		level = "debug"
	}
	logger := elemental.NewLogger(level, "console")
	defer logger.Sync()

	path := args.Model
	if len(path) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return err
		}
		path = filepath.Join(filepath.Dir(exe), elemental.ModelFileName)
	}
	model, err := elemental.LoadModel(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded model",
		zap.String("path", path),
		zap.String("algorithm", model.Algorithm),
		zap.Stringer("model", model.ID),
		zap.Time("trained", model.TrainedAt))

	d, err := dataset.LoadUnlabelledFile(args.Input)
	if err != nil {
		return err
	}
	predictions, err := model.Predict(d.Records)
	if err != nil {
		return err
	}

	var labelled, correct int
	w := csv.NewWriter(os.Stdout)
	w.Write([]string{dataset.ControlID, dataset.Element, "Predicted", "Score"})
	for i, p := range predictions {
		r := d.Records[i]
		if len(r.Element) > 0 {
			labelled++
			if r.Element == p.Element {
				correct++
			}
		}
		w.Write([]string{r.ControlID, r.Element, p.Element, strconv.FormatFloat(p.Score, 'f', 6, 64)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	logger.Info("predicted elements",
		zap.Int("records", len(predictions)),
		zap.Int("labelled", labelled),
		zap.Int("matching", correct))
	return nil
}
