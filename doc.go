// Package bikeshare predicts hourly bike-share hire counts from weather and
// calendar features.
//
// A raw record carries a date, categorical calendar and weather labels
// (season, hour, holiday, weekday, workingday, weathersit) and four numeric
// weather readings. The feature pipeline cleans and encodes these columns in
// a fixed order, standardises the resulting matrix and fits a linear model.
//
// # Quick Start
//
//	cfg, err := config.Load("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := train.Run(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("R2:", result.Test.R2)
//
//	out, err := predict.MakePrediction(store, cfg.Model, records)
//
// # Packages
//
//   - dataframe: typed column frame with missing mask, CSV and record input
//   - preprocessing: the frame transformers, the scalers and quantiles
//   - pipeline: ordered steps, the bike-share pipeline builder
//   - linear: least-squares regression through SVD
//   - metrics: regression metrics (MSE, RMSE, MAE, R², MAPE)
//   - processing: pre-pipeline preparation and input validation
//   - modelstore: versioned pipeline persistence (files or bbolt)
//   - train, predict: training run and prediction entry point
//   - config: YAML configuration with environment overrides
//   - core/model: core interfaces, state and gob persistence
//   - core/parallel: parallel processing utilities
//   - pkg/errors, pkg/log: structured errors and logging
//
// The command line front end lives in cmd/bikeshare.
package bikeshare

// Version is the version under which trained pipelines are saved and loaded.
const Version = "0.0.1"
