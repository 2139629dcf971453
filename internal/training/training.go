// Package training exports the labelled training set consumed by the
// external gradient-boosted classifier, together with a manifest describing
// its hyperparameter search space.
package training

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"path/filepath"
	"strconv"

	"github.com/specialistvlad/noise2read/internal/config"
	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/embedding"
	"github.com/specialistvlad/noise2read/internal/fsutil"
	"github.com/specialistvlad/noise2read/internal/samples"
	"gopkg.in/yaml.v3"
)

const (
	TrainFile    = "train.csv"
	TestFile     = "test.csv"
	ManifestFile = "model_tuning.yaml"
)

// Row is one labelled feature vector.
type Row struct {
	Read     string
	Features []float64
	Label    int
}

// Manifest is written next to the training set.
type Manifest struct {
	Features    []string        `yaml:"features"`
	ErrorTypes  []string        `yaml:"error_types"`
	TrainRows   int             `yaml:"train_rows"`
	TestRows    int             `yaml:"test_rows"`
	Positives   int             `yaml:"positives"`
	Negatives   int             `yaml:"negatives"`
	TrainFile   string          `yaml:"train_file"`
	TestFile    string          `yaml:"test_file"`
	ModelTuning ModelTuningSpec `yaml:"model_tuning"`
}

// ModelTuningSpec mirrors the ModelTuningSetup section.
type ModelTuningSpec struct {
	NTrials          int        `yaml:"n_trials"`
	NEstimators      int        `yaml:"n_estimators"`
	TestSize         float64    `yaml:"test_size"`
	RandomState      int        `yaml:"random_state"`
	TreeMethod       string     `yaml:"tree_method"`
	LearningRate     FloatRange `yaml:"learning_rate"`
	L2Regularization FloatRange `yaml:"l2_regularization"`
	MaxDepth         IntRange   `yaml:"max_depth"`
	NumBoostRound    IntRange   `yaml:"num_boost_round"`
	Subsample        FloatRange `yaml:"subsample"`
	Colsample        FloatRange `yaml:"colsample"`
	XGBoostSeed      int        `yaml:"xgboost_seed"`
	OptunaSeed       int        `yaml:"optuna_seed"`
}

// FloatRange is a continuous search interval.
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRange is a stepped search interval.
type IntRange struct {
	Min  int `yaml:"min"`
	Max  int `yaml:"max"`
	Step int `yaml:"step"`
}

// SpecFrom copies the tuning section into its manifest form.
func SpecFrom(mt config.ModelTuningSetup) ModelTuningSpec {
	return ModelTuningSpec{
		NTrials:          mt.NTrials,
		NEstimators:      mt.NEstimators,
		TestSize:         mt.TestSize,
		RandomState:      mt.RandomState,
		TreeMethod:       mt.TreeMethod,
		LearningRate:     FloatRange{Min: mt.LearningRateMin, Max: mt.LearningRateMax},
		L2Regularization: FloatRange{Min: mt.L2RegularizationMin, Max: mt.L2RegularizationMax},
		MaxDepth:         IntRange{Min: mt.MaxDepthMin, Max: mt.MaxDepthMax, Step: mt.MaxDepthStep},
		NumBoostRound:    IntRange{Min: mt.NumBoostRoundMin, Max: mt.NumBoostRoundMax, Step: mt.NumBoostRoundStep},
		Subsample:        FloatRange{Min: mt.SubsampleMin, Max: mt.SubsampleMax},
		Colsample:        FloatRange{Min: mt.ColsampleMin, Max: mt.ColsampleMax},
		XGBoostSeed:      mt.XGBoostSeed,
		OptunaSeed:       mt.OptunaSeed,
	}
}

// Rows labels every genuine sample as positive and every negative read as
// negative. Read is the end read of the sample.
func Rows(f embedding.Featurizer, set *samples.Set) []Row {
	rows := make([]Row, 0, len(set.Genuine)+len(set.Negatives))
	for _, s := range set.Genuine {
		rows = append(rows, Row{Read: s.End.Read, Features: f.SampleFeatures(s), Label: 1})
	}
	for _, n := range set.Negatives {
		rows = append(rows, Row{Read: n.Read, Features: f.NegativeFeatures(n), Label: 0})
	}
	return rows
}

// Split shuffles rows with a generator seeded by seed and moves
// ceil(len*testSize) of them into the test partition.
func Split(rows []Row, testSize float64, seed int) (train, test []Row) {
	shuffled := make([]Row, len(rows))
	copy(shuffled, rows)
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	nTest := int(math.Ceil(float64(len(shuffled)) * testSize))
	nTest = min(nTest, len(shuffled))
	return shuffled[nTest:], shuffled[:nTest]
}

// Export writes the training set and manifest into dir.
func Export(ctx context.Context, dir string, f embedding.Featurizer, mt config.ModelTuningSetup, set *samples.Set) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	rows := Rows(f, set)
	if len(rows) == 0 {
		logger.Warn("No samples available, training set not exported.")
		return nil, nil
	}

	train, test := Split(rows, mt.TestSize, mt.RandomState)
	names := f.Names()
	if err := writeRows(ctx, filepath.Join(dir, TrainFile), names, train); err != nil {
		return nil, err
	}
	if err := writeRows(ctx, filepath.Join(dir, TestFile), names, test); err != nil {
		return nil, err
	}

	m := &Manifest{
		Features:    names,
		ErrorTypes:  f.ErrorTypes(),
		TrainRows:   len(train),
		TestRows:    len(test),
		Positives:   len(set.Genuine),
		Negatives:   len(set.Negatives),
		TrainFile:   TrainFile,
		TestFile:    TestFile,
		ModelTuning: SpecFrom(mt),
	}
	err := fsutil.WriteAtomic(ctx, filepath.Join(dir, ManifestFile), func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write training manifest: %w", err)
	}
	logger.Info("Training set exported.", "train_rows", m.TrainRows, "test_rows", m.TestRows, "dir", dir)
	return m, nil
}

func writeRows(ctx context.Context, path string, names []string, rows []Row) error {
	return fsutil.WriteAtomic(ctx, path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		header := append([]string{"Read"}, names...)
		if err := w.Write(append(header, "Label")); err != nil {
			return err
		}
		rec := make([]string, 0, len(names)+2)
		for _, r := range rows {
			rec = append(rec[:0], r.Read)
			for _, v := range r.Features {
				rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
			}
			rec = append(rec, strconv.Itoa(r.Label))
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}
