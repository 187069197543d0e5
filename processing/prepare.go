// Package processing prepares raw bike-share records for the feature
// pipeline and validates prediction inputs.
package processing

import (
	"github.com/YuminosukeSato/bikeshare/config"
	"github.com/YuminosukeSato/bikeshare/dataframe"
)

// PrePipelinePreparation derives the year and month-name columns from the
// date column and drops the unused fields. The input frame is not modified.
func PrePipelinePreparation(df *dataframe.Frame, cfg config.ModelConfig) (*dataframe.Frame, error) {
	out, err := dataframe.DeriveDateParts(df, cfg.DateVar, cfg.YearVar, cfg.MonthVar)
	if err != nil {
		return nil, err
	}
	return dataframe.DropIfPresent(out, cfg.UnusedFields...), nil
}

// RawInputColumns returns the feature columns a caller must supply, which
// excludes the columns PrePipelinePreparation derives.
func RawInputColumns(cfg config.ModelConfig) []string {
	cols := make([]string, 0, len(cfg.Features))
	for _, f := range cfg.Features {
		if f == cfg.YearVar || f == cfg.MonthVar {
			continue
		}
		cols = append(cols, f)
	}
	return cols
}

// NumericInputColumns returns the columns read as numbers from CSV and JSON
// input: the numerical features and the target.
func NumericInputColumns(cfg config.ModelConfig) []string {
	return append(append([]string(nil), cfg.NumericalVars...), cfg.Target)
}
