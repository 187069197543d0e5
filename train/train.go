// Package train fits the bike-share pipeline on the configured training data
// and saves it under the package version.
package train

import (
	"context"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/bikeshare"
	"github.com/YuminosukeSato/bikeshare/config"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/metrics"
	"github.com/YuminosukeSato/bikeshare/modelstore"
	"github.com/YuminosukeSato/bikeshare/pipeline"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
	"github.com/YuminosukeSato/bikeshare/pkg/log"
	"github.com/YuminosukeSato/bikeshare/processing"
)

// Result summarises a training run.
type Result struct {
	Version string

	// Rows is the number of usable rows; Dropped lists the rows removed by
	// validation or for a missing target.
	Rows    int
	Dropped []processing.ValidationIssue

	Train metrics.Report
	Test  metrics.Report

	// TestTarget and TestPredictions hold the held-out split for diagnostics.
	TestTarget      []float64
	TestPredictions []float64

	Pipeline *pipeline.Pipeline
}

// Run loads cfg.App.TrainingDataFile, fits the pipeline on a seeded train
// split, scores both splits and saves the pipeline in the configured store.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	logger := log.GetLoggerWithName("train")
	start := time.Now()

	raw, err := dataframe.ReadCSVFile(cfg.App.TrainingDataFile, processing.NumericInputColumns(cfg.Model))
	if err != nil {
		return nil, errors.Wrap(err, "load training data")
	}
	logger.Info("Training data loaded",
		log.ConfigFileKey, cfg.App.TrainingDataFile,
		log.SamplesKey, raw.Len(),
		log.FeaturesKey, raw.Width(),
	)

	df, y, dropped, err := Prepare(raw, cfg.Model)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		logger.Warn("Training rows dropped", "rows", len(dropped), "first", dropped[0].String())
	}

	trainIdx, testIdx, err := Split(df.Len(), cfg.Model.TestSize, cfg.Model.RandomState)
	if err != nil {
		return nil, err
	}
	logger.Info("Data split",
		"train", len(trainIdx),
		"test", len(testIdx),
		log.RandomSeedKey, cfg.Model.RandomState,
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := pipeline.NewBikeshare(cfg.Model)
	if err != nil {
		return nil, err
	}
	xTrain, yTrain := df.Rows(trainIdx), pick(y, trainIdx)
	if err := p.Fit(xTrain, yTrain); err != nil {
		return nil, errors.Wrap(err, "fit pipeline")
	}

	result := &Result{Version: bikeshare.Version, Rows: df.Len(), Dropped: dropped, Pipeline: p}
	if result.Train, err = p.Score(xTrain, yTrain); err != nil {
		return nil, errors.Wrap(err, "score train split")
	}
	result.TestTarget = pick(y, testIdx)
	if result.TestPredictions, err = p.Predict(df.Rows(testIdx)); err != nil {
		return nil, errors.Wrap(err, "predict test split")
	}
	if result.Test, err = metrics.Evaluate(
		mat.NewVecDense(len(testIdx), result.TestTarget),
		mat.NewVecDense(len(testIdx), append([]float64(nil), result.TestPredictions...)),
	); err != nil {
		return nil, errors.Wrap(err, "score test split")
	}
	logger.Info("Pipeline evaluated",
		log.PhaseKey, log.PhaseTraining,
		log.R2ScoreKey, result.Test.R2,
		log.RMSEKey, result.Test.RMSE,
		"train_r2", result.Train.R2,
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store, err := modelstore.Open(cfg.App)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	if err := store.Save(bikeshare.Version, p); err != nil {
		return nil, errors.Wrap(err, "save pipeline")
	}

	logger.Info("Training finished",
		log.ConfigVersionKey, bikeshare.Version,
		log.StoreKey, cfg.App.Store,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// Prepare validates raw training rows and extracts the target. Rows failing
// validation or lacking a target are dropped and returned as issues.
func Prepare(raw *dataframe.Frame, cfg config.ModelConfig) (*dataframe.Frame, []float64, []processing.ValidationIssue, error) {
	target, err := raw.Column(cfg.Target)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "target column")
	}
	if !target.Kind().Numeric() {
		return nil, nil, nil, errors.NewValidationError(cfg.Target, "target must be numeric", target.Kind().String())
	}

	res := processing.ValidateInputs(raw, cfg)
	if res.HasTableIssues() {
		return nil, nil, nil, res.Err()
	}
	issues := res.Issues

	// ラベルは元のCSVの行位置
	labelPos := make(map[int]int, raw.Len())
	for i := 0; i < raw.Len(); i++ {
		labelPos[raw.Label(i)] = i
	}
	keep := make([]int, 0, res.Frame.Len())
	y := make([]float64, 0, res.Frame.Len())
	for k := 0; k < res.Frame.Len(); k++ {
		label := res.Frame.Label(k)
		pos := labelPos[label]
		if target.IsMissing(pos) {
			issues = append(issues, processing.ValidationIssue{Row: label, Column: cfg.Target, Message: "missing target"})
			continue
		}
		keep = append(keep, k)
		y = append(y, target.Float(pos))
	}
	if len(keep) == 0 {
		return nil, nil, issues, errors.NewModelError("train.Prepare", "no usable rows", errors.ErrEmptyData)
	}
	return res.Frame.Rows(keep), y, issues, nil
}

func pick(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
