// Package predict is the prediction entry point: it validates raw input,
// reindexes it to the configured feature order and runs a stored pipeline.
package predict

import (
	"github.com/YuminosukeSato/bikeshare"
	"github.com/YuminosukeSato/bikeshare/config"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/modelstore"
	"github.com/YuminosukeSato/bikeshare/pipeline"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
	"github.com/YuminosukeSato/bikeshare/pkg/log"
	"github.com/YuminosukeSato/bikeshare/processing"
)

// Result is the outcome of one prediction request. Predictions[i] belongs to
// the input row Rows[i]; rows listed in Errors get no prediction.
type Result struct {
	Predictions []float64                    `json:"predictions"`
	Rows        []int                        `json:"rows"`
	Version     string                       `json:"version"`
	Errors      []processing.ValidationIssue `json:"errors,omitempty"`
}

// Predictor serves predictions from one fitted pipeline. It is safe for
// concurrent use.
type Predictor struct {
	Pipeline *pipeline.Pipeline
	Config   config.ModelConfig
	Version  string

	logger log.Logger
}

// New wraps an already fitted pipeline.
func New(p *pipeline.Pipeline, cfg config.ModelConfig, version string) (*Predictor, error) {
	if p == nil || !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}
	return &Predictor{
		Pipeline: p,
		Config:   cfg,
		Version:  version,
		logger:   log.GetLoggerWithName("predict").With(log.ConfigVersionKey, version),
	}, nil
}

// Load reads the pipeline for the package version from store.
func Load(store modelstore.Store, cfg config.ModelConfig) (*Predictor, error) {
	p, err := store.Load(bikeshare.Version)
	if err != nil {
		return nil, err
	}
	return New(p, cfg, bikeshare.Version)
}

// MakePrediction validates df and predicts every valid row. Validation
// problems are returned in Result.Errors; a missing column yields no
// predictions at all. An error is returned only when the pipeline itself
// rejects the data, for example an unmapped category.
func (p *Predictor) MakePrediction(df *dataframe.Frame) (*Result, error) {
	result := &Result{Version: p.Version}

	validation := processing.ValidateInputs(df, p.Config)
	result.Errors = validation.Issues
	if validation.HasTableIssues() || validation.Frame.Len() == 0 {
		p.logger.Warn("No valid rows to predict", "issues", len(validation.Issues))
		return result, nil
	}

	preds, err := p.Pipeline.Predict(validation.Frame)
	if err != nil {
		p.logger.Error("Prediction failed", err, log.SamplesKey, validation.Frame.Len())
		return result, err
	}
	result.Predictions = preds
	result.Rows = validation.Frame.Index()

	p.logger.Info("Prediction made",
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, len(preds),
		"rejected", len(validation.Issues),
	)
	return result, nil
}

// PredictRecords predicts row-oriented input, one map per row. Cells are read
// as text so that a malformed number becomes a row issue instead of failing
// the whole request.
func (p *Predictor) PredictRecords(records []map[string]interface{}) (*Result, error) {
	df, err := dataframe.FromRecords(records, nil)
	if err != nil {
		return nil, err
	}
	return p.MakePrediction(df)
}

// PredictColumns predicts column-oriented input, one slice per column.
func (p *Predictor) PredictColumns(columns map[string][]interface{}) (*Result, error) {
	df, err := dataframe.FromColumnMap(columns, nil)
	if err != nil {
		return nil, err
	}
	return p.MakePrediction(df)
}
