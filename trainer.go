// Package elemental trains classifiers that predict the type of a UI element from its attributes.
//
// A Trainer loads a CSV of labelled elements, holds out a seeded test split, featurizes the
// eight text attributes into one vector, fits the configured learning algorithm, and can then
// evaluate the model on the held-out records and save it for later prediction.
package elemental

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hscells/elemental/combinator"
	"github.com/hscells/elemental/dataset"
	"github.com/hscells/elemental/eval"
	"github.com/hscells/elemental/feature"
	"github.com/hscells/elemental/learning"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/cheggaaa/pb.v1"
)

// Trainer fits, evaluates and saves an element classifier. A Trainer is not safe for
// concurrent use.
type Trainer struct {
	algorithm Algorithm
	config    Config
	logger    *zap.Logger
	baseDir   string
	cache     combinator.FeatureCache
	progress  bool
	epochs    *pb.ProgressBar

	// state is nil until Fit succeeds, and is replaced as a whole by every later Fit.
	state *fitted
}

type fitted struct {
	split dataset.Split
	model *Model
	// namespace keys the featurization cache for model's pipeline.
	namespace uuid.UUID
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithConfig replaces the default hyperparameters. The algorithm passed to New still decides
// which learner is used.
func WithConfig(c Config) Option {
	return func(t *Trainer) {
		t.config = c
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Trainer) {
		t.logger = l
	}
}

// WithBaseDirectory sets the directory Save writes to. The default is the directory of the
// running executable.
func WithBaseDirectory(dir string) Option {
	return func(t *Trainer) {
		t.baseDir = dir
	}
}

// WithSeed sets the seed of the train/test split and of the learner.
func WithSeed(seed int64) Option {
	return func(t *Trainer) {
		t.config.Seed = seed
	}
}

// WithTestFraction sets the share of records held out for evaluation.
func WithTestFraction(f float64) Option {
	return func(t *Trainer) {
		t.config.TestFraction = f
	}
}

// WithFeaturizeOptions sets how the text columns are featurized.
func WithFeaturizeOptions(o feature.Options) Option {
	return func(t *Trainer) {
		t.config.Featurize = o
	}
}

// WithCache caches featurized records. Without a cache every record is featurized each time
// it is needed.
func WithCache(c combinator.FeatureCache) Option {
	return func(t *Trainer) {
		t.cache = c
	}
}

// WithProgress draws progress bars on stdout while featurizing and training.
func WithProgress(show bool) Option {
	return func(t *Trainer) {
		t.progress = show
	}
}

// New creates an unfitted trainer for algorithm.
func New(algorithm Algorithm, opts ...Option) *Trainer {
	t := &Trainer{
		algorithm: algorithm,
		config:    DefaultConfig(),
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(t)
	}
	t.config.Algorithm = algorithm.Name
	if t.baseDir == "" {
		t.baseDir = executableDir()
	}
	return t
}

// Name identifies the algorithm this trainer fits.
func (t *Trainer) Name() string {
	return t.algorithm.Name
}

// ModelPath is where Save writes the model.
func (t *Trainer) ModelPath() string {
	return filepath.Join(t.baseDir, ModelFileName)
}

// Fit trains a model on the file at trainingFileName. On any error the trainer keeps the
// state of its previous successful Fit, if there was one.
func (t *Trainer) Fit(trainingFileName string) error {
	if _, err := os.Stat(trainingFileName); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "file %s doesn't exist", trainingFileName)
		}
		return err
	}

	start := time.Now()
	d, err := dataset.LoadFile(trainingFileName)
	if err != nil {
		return err
	}
	split := dataset.TrainTestSplit(d, t.config.TestFraction, t.config.Seed)
	t.logger.Info("loaded training data",
		zap.String("file", trainingFileName),
		zap.Int("records", d.Len()),
		zap.Int("train", split.TrainSet.Len()),
		zap.Int("test", split.TestSet.Len()))
	if split.TrainSet.Len() == 0 {
		return errors.Wrapf(learning.ErrNoData, "%s has no training records", trainingFileName)
	}

	pipeline := feature.NewPipeline(dataset.FeatureColumns, t.config.Featurize)
	if err := pipeline.Fit(split.TrainSet); err != nil {
		return err
	}
	if pipeline.Dim() == 0 {
		return errors.Wrapf(learning.ErrNoData, "%s has no attribute text in its training records", trainingFileName)
	}
	id := uuid.New()
	namespace := combinator.Namespace(pipeline)
	t.logger.Debug("fitted feature pipeline",
		zap.Stringer("model", id),
		zap.Stringer("namespace", namespace),
		zap.Ints("dims", pipeline.Dims()),
		zap.Strings("labels", pipeline.Labels.Values))

	X, err := t.transform(namespace, pipeline, split.TrainSet.Records)
	if err != nil {
		return err
	}
	y := make([]int, len(X))
	for i, r := range split.TrainSet.Records {
		y[i], _ = pipeline.Labels.Encode(r.Element)
	}

	learner := t.algorithm.New(t.config, t.epochFunc())
	clf, err := learner.Fit(X, y, pipeline.Dim(), pipeline.Labels.Len())
	t.finishEpochs()
	if err != nil {
		return errors.Wrapf(err, "training %s", learner.Name())
	}

	model := &Model{
		Version:    modelVersion,
		ID:         id,
		Algorithm:  t.algorithm.Name,
		Schema:     d.Schema,
		Pipeline:   pipeline,
		Classifier: clf,
		TrainedAt:  time.Now(),
	}
	t.state = &fitted{split: split, model: model, namespace: namespace}
	t.logger.Info("trained model",
		zap.String("algorithm", t.algorithm.Name),
		zap.Stringer("model", id),
		zap.Int("features", pipeline.Dim()),
		zap.Int("classes", pipeline.Labels.Len()),
		zap.Duration("took", time.Since(start)))
	return nil
}

// Evaluate scores the trained model on the held-out test set. Test records whose element
// type never appeared in the training set cannot be scored and are counted in Skipped.
func (t *Trainer) Evaluate() (eval.Metrics, error) {
	if t.state == nil {
		return eval.Metrics{}, errors.Wrap(ErrInvalidState, "evaluate")
	}
	m := t.state.model

	var (
		records []dataset.Record
		y       []int
		skipped int
	)
	for _, r := range t.state.split.TestSet.Records {
		k, ok := m.Pipeline.Labels.Encode(r.Element)
		if !ok {
			skipped++
			continue
		}
		records = append(records, r)
		y = append(y, k)
	}

	X, err := t.transform(t.state.namespace, m.Pipeline, records)
	if err != nil {
		return eval.Metrics{}, err
	}
	metrics := eval.Evaluate(m.Classifier, X, y, m.Labels())
	metrics.Skipped = skipped

	if skipped > 0 {
		t.logger.Warn("skipped test records with unseen labels", zap.Int("skipped", skipped))
	}
	t.logger.Info("evaluated model",
		zap.Int("samples", metrics.Samples),
		zap.Float64("microAccuracy", metrics.MicroAccuracy),
		zap.Float64("macroAccuracy", metrics.MacroAccuracy),
		zap.Float64("logLoss", metrics.LogLoss))
	return metrics, nil
}

// Save writes the trained model to ModelPath.
func (t *Trainer) Save() error {
	if t.state == nil {
		return errors.Wrap(ErrInvalidState, "save")
	}
	path := t.ModelPath()
	if err := t.state.model.Save(path); err != nil {
		return &ioError{path: path, err: err}
	}
	t.logger.Info("saved model", zap.String("path", path))
	return nil
}

// Model returns the trained model.
func (t *Trainer) Model() (*Model, error) {
	if t.state == nil {
		return nil, errors.Wrap(ErrInvalidState, "model")
	}
	return t.state.model, nil
}

// Split returns the train/test split of the last successful Fit.
func (t *Trainer) Split() (dataset.Split, error) {
	if t.state == nil {
		return dataset.Split{}, errors.Wrap(ErrInvalidState, "split")
	}
	return t.state.split, nil
}

func (t *Trainer) transform(namespace uuid.UUID, p *feature.Pipeline, records []dataset.Record) ([]feature.Features, error) {
	var bar *pb.ProgressBar
	if t.progress {
		bar = pb.StartNew(len(records))
		bar.Prefix("featurizing")
		defer bar.Finish()
	}
	X := make([]feature.Features, len(records))
	for i, r := range records {
		var err error
		X[i], err = combinator.Transform(t.cache, namespace, p, r)
		if err != nil {
			return nil, err
		}
		if bar != nil {
			bar.Increment()
		}
	}
	return X, nil
}

func (t *Trainer) epochFunc() learning.EpochFunc {
	if !t.progress {
		return nil
	}
	return func(epoch int, loss float64) {
		if t.epochs == nil {
			t.epochs = pb.StartNew(t.config.Linear.Iterations)
			t.epochs.Prefix("training")
		}
		t.epochs.Increment()
		t.logger.Debug("epoch", zap.Int("epoch", epoch), zap.Float64("loss", loss))
	}
}

func (t *Trainer) finishEpochs() {
	if t.epochs != nil {
		t.epochs.Finish()
		t.epochs = nil
	}
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
