// Package pipeline chains the frame transformers of the feature pipeline with
// a matrix scaler and a final regressor.
//
// Steps run strictly in order: Fit happens once on one reference dataset, and
// the fitted pipeline can then transform and predict any number of times.
// A fitted pipeline is read-only during Transform and Predict, so those calls
// may run concurrently; Fit must not overlap any other call.
package pipeline

import (
	"encoding/gob"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/linear"
	"github.com/YuminosukeSato/bikeshare/metrics"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
	"github.com/YuminosukeSato/bikeshare/pkg/log"
	"github.com/YuminosukeSato/bikeshare/preprocessing"
)

func init() {
	// Step.Transformer, Scaler and Regressor are interfaces; gob needs the
	// concrete types to encode a fitted pipeline.
	gob.Register(&preprocessing.WeekdayImputer{})
	gob.Register(&preprocessing.WeathersitImputer{})
	gob.Register(&preprocessing.OutlierCapper{})
	gob.Register(&preprocessing.OrdinalMapper{})
	gob.Register(&preprocessing.WeekdayOneHotEncoder{})
	gob.Register(&preprocessing.ColumnDropper{})
	gob.Register(&preprocessing.StandardScaler{})
	gob.Register(&preprocessing.MinMaxScaler{})
	gob.Register(&linear.LinearRegression{})
}

// Step is a named frame transformer.
type Step struct {
	Name        string
	Transformer model.FrameTransformer
}

// Pipeline is an ordered list of frame steps followed by a scaler and a
// regressor. All fields are exported so the fitted pipeline can be stored
// with gob.
type Pipeline struct {
	Steps     []Step
	Scaler    model.Transformer
	Regressor model.Regressor

	// FeatureNames is the column order of the feature matrix, recorded at fit.
	FeatureNames []string

	State *model.StateManager

	logger log.Logger
}

// New creates a pipeline. Step names must be unique and non-empty.
func New(steps []Step, scaler model.Transformer, regressor model.Regressor) (*Pipeline, error) {
	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		if s.Name == "" {
			return nil, errors.NewValidationError("steps", "step name must not be empty", i)
		}
		if seen[s.Name] {
			return nil, errors.NewValidationError("steps", "duplicate step name", s.Name)
		}
		if s.Transformer == nil {
			return nil, errors.NewValidationError("steps", "step has no transformer", s.Name)
		}
		seen[s.Name] = true
	}
	if regressor == nil {
		return nil, errors.NewValidationError("regressor", "must not be nil", nil)
	}
	return &Pipeline{
		Steps:     steps,
		Scaler:    scaler,
		Regressor: regressor,
		State:     model.NewStateManager(),
	}, nil
}

// getLogger は設定されたロガー、なければ共通プロバイダのロガーを返す。
// gobで復元したパイプラインにはロガーがない。Predict から並行に呼ばれるため書き込まない。
func (p *Pipeline) getLogger() log.Logger {
	if p.logger != nil {
		return p.logger
	}
	return log.GetLoggerWithName("pipeline")
}

// SetLogger replaces the logger used by the pipeline.
func (p *Pipeline) SetLogger(l log.Logger) {
	p.logger = l
}

// IsFitted reports whether Fit has completed.
func (p *Pipeline) IsFitted() bool {
	return p.State != nil && p.State.IsFitted()
}

// Step returns the transformer registered under name.
func (p *Pipeline) Step(name string) (model.FrameTransformer, bool) {
	for _, s := range p.Steps {
		if s.Name == name {
			return s.Transformer, true
		}
	}
	return nil, false
}

// GetParams returns the parameters of every step that exposes them, keyed
// by step name, plus the scaler and the regressor.
func (p *Pipeline) GetParams() map[string]interface{} {
	params := make(map[string]interface{}, len(p.Steps)+2)
	for _, s := range p.Steps {
		if g, ok := s.Transformer.(model.ParameterGetter); ok {
			params[s.Name] = g.GetParams()
		}
	}
	if g, ok := p.Scaler.(model.ParameterGetter); ok {
		params["scaler"] = g.GetParams()
	}
	if g, ok := p.Regressor.(model.ParameterGetter); ok {
		params["regressor"] = g.GetParams()
	}
	return params
}

// Fit fits every step on the output of the previous one, then the scaler and
// the regressor on the resulting feature matrix. y holds one target per row
// of df.
func (p *Pipeline) Fit(df *dataframe.Frame, y []float64) error {
	logger := p.getLogger()
	if df == nil || df.Len() == 0 {
		return errors.NewModelError("Pipeline.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != df.Len() {
		return errors.NewDimensionError("Pipeline.Fit", df.Len(), len(y), 0)
	}
	if p.State == nil {
		p.State = model.NewStateManager()
	}
	p.State.Reset()

	start := time.Now()
	logger.Info("Pipeline fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, df.Len(),
		log.FeaturesKey, df.Width(),
	)

	current := df
	for i, s := range p.Steps {
		var out *dataframe.Frame
		err := errors.SafeExecute(fmt.Sprintf("fit step %s", s.Name), func() error {
			var ferr error
			out, ferr = model.FitTransform(s.Transformer, current)
			return ferr
		})
		if err != nil {
			logger.Error("Pipeline step failed", err, log.StepKey, s.Name, log.StepIndexKey, i)
			return errors.Wrapf(err, "pipeline step %q", s.Name)
		}
		fields := []any{log.StepKey, s.Name, log.StepIndexKey, i, log.FeaturesKey, out.Width()}
		if g, ok := s.Transformer.(model.ParameterGetter); ok {
			fields = append(fields, "params", g.GetParams())
		}
		logger.Debug("Pipeline step fitted", fields...)
		current = out
	}

	p.FeatureNames = current.Names()
	dense, err := p.matrix(current, "Pipeline.Fit")
	if err != nil {
		return err
	}
	var X mat.Matrix = dense
	if p.Scaler != nil {
		scaled, err := p.Scaler.FitTransform(X)
		if err != nil {
			return errors.Wrap(err, "fit scaler")
		}
		X = scaled
	}
	if err := p.Regressor.Fit(X, mat.NewVecDense(len(y), append([]float64(nil), y...))); err != nil {
		return errors.Wrap(err, "fit regressor")
	}

	p.State.SetFitted(len(p.FeatureNames), df.Len())
	logger.Info("Pipeline fitted",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, df.Len(),
		log.FeaturesKey, len(p.FeatureNames),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// TransformFrame runs the fitted frame steps on df and returns the final
// frame. df is not modified.
func (p *Pipeline) TransformFrame(df *dataframe.Frame) (*dataframe.Frame, error) {
	if p.State == nil {
		return nil, errors.NewNotFittedError("Pipeline", "Transform")
	}
	if err := p.State.RequireFitted("Pipeline", "Transform"); err != nil {
		return nil, err
	}
	current := df
	for _, s := range p.Steps {
		var out *dataframe.Frame
		err := errors.SafeExecute(fmt.Sprintf("transform step %s", s.Name), func() error {
			var terr error
			out, terr = s.Transformer.Transform(current)
			return terr
		})
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline step %q", s.Name)
		}
		current = out
	}
	return current, nil
}

// Features transforms df into the scaled feature matrix fed to the regressor.
// Columns follow FeatureNames.
func (p *Pipeline) Features(df *dataframe.Frame) (mat.Matrix, error) {
	out, err := p.TransformFrame(df)
	if err != nil {
		return nil, err
	}
	X, err := p.matrix(out, "Pipeline.Transform")
	if err != nil {
		return nil, err
	}
	if p.Scaler == nil {
		return X, nil
	}
	return p.Scaler.Transform(X)
}

// Predict returns one prediction per row of df.
func (p *Pipeline) Predict(df *dataframe.Frame) ([]float64, error) {
	X, err := p.Features(df)
	if err != nil {
		return nil, err
	}
	pred, err := p.Regressor.Predict(X)
	if err != nil {
		return nil, errors.Wrap(err, "predict")
	}
	r, _ := pred.Dims()
	out := make([]float64, r)
	for i := range out {
		out[i] = pred.At(i, 0)
	}
	p.getLogger().Debug("Pipeline predicted",
		log.OperationKey, log.OperationPredict,
		log.PredsKey, len(out),
	)
	return out, nil
}

// Score predicts df and evaluates the predictions against y.
func (p *Pipeline) Score(df *dataframe.Frame, y []float64) (metrics.Report, error) {
	pred, err := p.Predict(df)
	if err != nil {
		return metrics.Report{}, err
	}
	if len(y) != len(pred) {
		return metrics.Report{}, errors.NewDimensionError("Pipeline.Score", len(pred), len(y), 0)
	}
	if len(y) == 0 {
		return metrics.Report{}, errors.NewModelError("Pipeline.Score", "empty data", errors.ErrEmptyData)
	}
	return metrics.Evaluate(mat.NewVecDense(len(y), append([]float64(nil), y...)), mat.NewVecDense(len(pred), pred))
}

// matrix selects FeatureNames from df and converts them to a dense matrix.
// Missing or non-finite cells are rejected.
func (p *Pipeline) matrix(df *dataframe.Frame, op string) (*mat.Dense, error) {
	selected, err := df.Select(p.FeatureNames)
	if err != nil {
		return nil, err
	}
	X, err := selected.ToDense(p.FeatureNames)
	if err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if err := errors.CheckMatrix(op, X, r, c); err != nil {
		return nil, err
	}
	return X, nil
}
