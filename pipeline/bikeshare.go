package pipeline

import (
	"github.com/YuminosukeSato/bikeshare/config"
	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/linear"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
	"github.com/YuminosukeSato/bikeshare/preprocessing"
)

// Step names of the bike-share pipeline.
const (
	StepWeekdayImputer = "weekday_imputer"
	StepWeatherImputer = "weather_imputer"
	StepOutlierHandler = "outlier_handler"
	StepWeekdayEncoder = "weekday_encoder"
	StepColumnDropper  = "column_dropper"
)

// NewBikeshare builds the unfitted bike-share pipeline from cfg:
//
//	weekday_imputer -> weather_imputer -> outlier_handler ->
//	map_yr .. map_hr -> weekday_encoder -> column_dropper -> scaler -> regressor
//
// The date and weekday columns are dropped after encoding.
func NewBikeshare(cfg config.ModelConfig) (*Pipeline, error) {
	weekday, err := preprocessing.NewWeekdayImputer(cfg.DateVar, cfg.WeekdayVar)
	if err != nil {
		return nil, err
	}
	weather, err := preprocessing.NewWeathersitImputer(cfg.WeathersitVar)
	if err != nil {
		return nil, err
	}
	outliers, err := preprocessing.NewOutlierCapper(cfg.NumericalVars, cfg.IQRMultiplier)
	if err != nil {
		return nil, err
	}

	steps := []Step{
		{Name: StepWeekdayImputer, Transformer: weekday},
		{Name: StepWeatherImputer, Transformer: weather},
		{Name: StepOutlierHandler, Transformer: outliers},
	}
	for _, mc := range cfg.MappedColumns() {
		m, err := preprocessing.NewOrdinalMapper(mc.Column, mc.Mappings)
		if err != nil {
			return nil, errors.Wrapf(err, "step %s", mc.Step)
		}
		steps = append(steps, Step{Name: mc.Step, Transformer: m})
	}

	policy, err := preprocessing.ParseUnknownPolicy(cfg.UnknownCategoryPolicy)
	if err != nil {
		return nil, err
	}
	encoder, err := preprocessing.NewWeekdayOneHotEncoder(cfg.WeekdayVar, policy)
	if err != nil {
		return nil, err
	}
	steps = append(steps,
		Step{Name: StepWeekdayEncoder, Transformer: encoder},
		Step{Name: StepColumnDropper, Transformer: preprocessing.NewColumnDropper([]string{cfg.DateVar, cfg.WeekdayVar})},
	)

	return New(steps, newScaler(cfg.Scaler), linear.NewLinearRegression())
}

func newScaler(name string) model.Transformer {
	if name == config.ScalerMinMax {
		return preprocessing.NewMinMaxScalerDefault()
	}
	return preprocessing.NewStandardScalerDefault()
}
