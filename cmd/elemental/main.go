// Command elemental trains a UI element classifier, reports how it does on a held-out split
// of the training data and saves it beside the binary (or in --base-dir).
package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"github.com/hscells/elemental"
	"github.com/hscells/elemental/combinator"
	"github.com/hscells/elemental/output"
)

var (
	name    = "elemental"
	version = "19.Oct.2026"
)

type args struct {
	TrainingFile string `arg:"--training-file,required" help:"CSV of labelled elements to train on"`
	Algorithm    string `arg:"-a" help:"learning algorithm (SdcaMaximumEntropy, NaiveBayes, OneVersusAll)"`
	Config       string `arg:"-c" help:"properties file of hyperparameters"`
	BaseDir      string `arg:"--base-dir" help:"directory to save the model to (default is the directory of this binary)"`
	CacheDir     string `arg:"--cache-dir" help:"directory to cache featurized records in"`
	Format       string `arg:"-f" help:"format of the evaluation (text, json, csv)"`
	Progress     bool   `arg:"-p" help:"show progress bars"`
	Verbose      bool   `arg:"-v" help:"log debug messages"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
# %s
Train and evaluate a classifier predicting the element type of UI controls.`, name, version)
}

func main() {
	var args args
	args.Format = "text"
	arg.MustParse(&args)

	if err := run(args); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, 0).ErrorStack())
		os.Exit(1)
	}
}

func run(args args) error {
	config := elemental.DefaultConfig()
	if len(args.Config) > 0 {
		var err error
		config, err = elemental.LoadConfig(args.Config)
		if err != nil {
			return err
		}
	}
	if len(args.Algorithm) > 0 {
		config.Algorithm = args.Algorithm
	}
	if args.Verbose {
		config.LogLevel = "debug"
	}

	formatter, ok := output.Formatters[args.Format]
	if !ok {
		return errors.Errorf("unknown format %q", args.Format)
	}
	algorithm, err := elemental.AlgorithmByName(config.Algorithm)
	if err != nil {
		return err
	}

	logger := elemental.NewLogger(config.LogLevel, config.LogFormat)
	defer logger.Sync()

	opts := []elemental.Option{
		elemental.WithConfig(config),
		elemental.WithLogger(logger),
		elemental.WithProgress(args.Progress),
	}
	if len(args.BaseDir) > 0 {
		opts = append(opts, elemental.WithBaseDirectory(args.BaseDir))
	}
	if len(args.CacheDir) > 0 {
		opts = append(opts, elemental.WithCache(combinator.NewDiskvFeatureCache(combinator.NewDiskv(args.CacheDir, 1024*1024*64))))
	}

	trainer := elemental.New(algorithm, opts...)
	if err := trainer.Fit(args.TrainingFile); err != nil {
		return err
	}
	metrics, err := trainer.Evaluate()
	if err != nil {
		return err
	}
	s, err := formatter(metrics)
	if err != nil {
		return err
	}
	fmt.Println(s)

	return trainer.Save()
}
