package elemental

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hscells/elemental/dataset"
	"github.com/hscells/elemental/feature"
	"github.com/hscells/elemental/learning"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ModelFileName is the name Save writes the trained model to, inside the base directory.
//
// TODO: this is the same name as the usual training file; rename once every
// consumer of saved models has moved off the old path.
const ModelFileName = "data.csv"

// modelVersion is bumped whenever the encoded layout of Model changes.
const modelVersion = 1

func init() {
	gob.Register(&learning.MaximumEntropyModel{})
	gob.Register(&learning.NaiveBayesModel{})
	gob.Register(&learning.OneVersusAllModel{})
}

// Model is a fitted feature pipeline and classifier. A Model is read-only once trained and
// may be used for prediction from multiple goroutines.
type Model struct {
	Version    int
	ID         uuid.UUID
	Algorithm  string
	Schema     dataset.Schema
	Pipeline   *feature.Pipeline
	Classifier learning.Classifier
	TrainedAt  time.Time
}

// Prediction is the classification of one record.
type Prediction struct {
	Element string
	// Score is the probability of Element; Scores holds the probability of every label,
	// indexed like Labels.
	Score  float64
	Scores []float64
}

// Labels are the element types the model can predict.
func (m *Model) Labels() []string {
	return m.Pipeline.Labels.Values
}

// Transform featurizes r with the fitted pipeline.
func (m *Model) Transform(r dataset.Record) (feature.Features, error) {
	return m.Pipeline.Transform(r)
}

// Predict classifies records. Their Element field is ignored.
func (m *Model) Predict(records []dataset.Record) ([]Prediction, error) {
	out := make([]Prediction, len(records))
	for i, r := range records {
		x, err := m.Transform(r)
		if err != nil {
			return nil, err
		}
		scores := m.Classifier.Scores(x)
		k := floats.MaxIdx(scores)
		label, _ := m.Pipeline.Labels.Decode(k)
		out[i] = Prediction{Element: label, Score: scores[k], Scores: scores}
	}
	return out, nil
}

// Save writes the model to path. The file is written beside path and renamed into place, so
// a failed save leaves any previous file intact.
func (m *Model) Save(path string) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+name+"-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// LoadModel reads a model written by Save.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, errors.Wrapf(err, "decoding model %s", path)
	}
	if m.Version != modelVersion {
		return nil, errors.Errorf("model %s has version %d, want %d", path, m.Version, modelVersion)
	}
	if m.Pipeline == nil || m.Classifier == nil {
		return nil, errors.Errorf("model %s is incomplete", path)
	}
	return &m, nil
}
