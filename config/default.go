package config

// Default returns the built-in configuration. It matches the shipped config.yml.
func Default() *Config {
	return &Config{
		App: AppConfig{
			PackageName:      "bikeshare",
			TrainingDataFile: "datasets/bike-sharing-dataset.csv",
			PipelineSaveFile: "bikeshare_pipeline_v",
			Store:            StoreFile,
			StorePath:        "trained_models",
			LogLevel:         "info",
		},
		Model: ModelConfig{
			Target: "cnt",
			Features: []string{
				"dteday", "season", "hr", "holiday", "weekday", "workingday",
				"weathersit", "temp", "atemp", "hum", "windspeed", "yr", "mnth",
			},
			UnusedFields: []string{"casual", "registered"},

			DateVar:       "dteday",
			WeekdayVar:    "weekday",
			WeathersitVar: "weathersit",
			YearVar:       "yr",
			MonthVar:      "mnth",
			SeasonVar:     "season",
			HolidayVar:    "holiday",
			WorkingdayVar: "workingday",
			HourVar:       "hr",

			YearMappings: map[string]int{"2011": 0, "2012": 1},
			MonthMappings: map[string]int{
				"January": 0, "February": 1, "March": 2, "April": 3,
				"May": 4, "June": 5, "July": 6, "August": 7,
				"September": 8, "October": 9, "November": 10, "December": 11,
			},
			SeasonMappings:     map[string]int{"spring": 0, "winter": 1, "summer": 2, "fall": 3},
			WeathersitMappings: map[string]int{"Heavy Rain": 0, "Light Rain": 1, "Mist": 2, "Clear": 3},
			HolidayMappings:    map[string]int{"Yes": 0, "No": 1},
			WorkingdayMappings: map[string]int{"No": 0, "Yes": 1},
			HourMappings: map[string]int{
				"4am": 0, "3am": 1, "5am": 2, "2am": 3, "1am": 4, "12am": 5,
				"6am": 6, "11pm": 7, "10pm": 8, "10am": 9, "9pm": 10, "11am": 11,
				"7am": 12, "9am": 13, "8pm": 14, "2pm": 15, "1pm": 16, "12pm": 17,
				"3pm": 18, "4pm": 19, "7pm": 20, "8am": 21, "6pm": 22, "5pm": 23,
			},

			NumericalVars:         []string{"temp", "atemp", "hum", "windspeed"},
			IQRMultiplier:         DefaultIQRMultiplier,
			UnknownCategoryPolicy: "zero_fill",
			Scaler:                ScalerStandard,

			TestSize:    0.2,
			RandomState: 42,
		},
	}
}
