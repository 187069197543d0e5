// Package config loads the application and model configuration from YAML
// and applies environment overrides. A loaded Config is treated as immutable
// and is passed explicitly to the components that need it.
package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// EnvPrefix is the prefix of the environment overrides (BIKESHARE_LOG_LEVEL...).
const EnvPrefix = "bikeshare"

// Store backends.
const (
	StoreFile = "file"
	StoreBolt = "bolt"
)

// Scalers selectable for the standardisation step.
const (
	ScalerStandard = "standard"
	ScalerMinMax   = "minmax"
)

// DefaultIQRMultiplier is used when model.iqr_multiplier is absent.
const DefaultIQRMultiplier = 1.5

// Config is the whole configuration file.
type Config struct {
	App   AppConfig   `yaml:"app"`
	Model ModelConfig `yaml:"model"`
}

// AppConfig holds package-level settings.
type AppConfig struct {
	PackageName      string `yaml:"package_name"`
	TrainingDataFile string `yaml:"training_data_file"`
	PipelineSaveFile string `yaml:"pipeline_save_file"`
	Store            string `yaml:"store"`
	StorePath        string `yaml:"store_path"`
	LogLevel         string `yaml:"log_level"`
}

// ModelConfig holds everything the feature pipeline and the regressor need.
type ModelConfig struct {
	Target       string   `yaml:"target"`
	Features     []string `yaml:"features"`
	UnusedFields []string `yaml:"unused_fields"`

	DateVar       string `yaml:"date_var"`
	WeekdayVar    string `yaml:"weekday_var"`
	WeathersitVar string `yaml:"weathersit_var"`
	YearVar       string `yaml:"year_var"`
	MonthVar      string `yaml:"month_var"`
	SeasonVar     string `yaml:"season_var"`
	HolidayVar    string `yaml:"holiday_var"`
	WorkingdayVar string `yaml:"workingday_var"`
	HourVar       string `yaml:"hour_var"`

	YearMappings       map[string]int `yaml:"yr_mappings"`
	MonthMappings      map[string]int `yaml:"mnth_mappings"`
	SeasonMappings     map[string]int `yaml:"season_mappings"`
	WeathersitMappings map[string]int `yaml:"weathersit_mappings"`
	HolidayMappings    map[string]int `yaml:"holiday_mappings"`
	WorkingdayMappings map[string]int `yaml:"workingday_mappings"`
	HourMappings       map[string]int `yaml:"hr_mappings"`

	NumericalVars         []string `yaml:"numerical_vars"`
	IQRMultiplier         float64  `yaml:"iqr_multiplier"`
	UnknownCategoryPolicy string   `yaml:"unknown_category_policy"`
	Scaler                string   `yaml:"scaler"`

	TestSize    float64 `yaml:"test_size"`
	RandomState int64   `yaml:"random_state"`
}

// envOverrides are read with envconfig after the file. Empty values leave the
// file setting in place.
type envOverrides struct {
	LogLevel     string `envconfig:"LOG_LEVEL"`
	Store        string `envconfig:"STORE"`
	StorePath    string `envconfig:"STORE_PATH"`
	TrainingData string `envconfig:"TRAINING_DATA"`
}

// Load reads path, applies environment overrides and validates the result.
// An empty path yields Default with overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
		cfg, err = Parse(data)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML strictly: unknown keys are an error. Fields missing
// from the document keep their zero value, except model.iqr_multiplier which
// defaults to DefaultIQRMultiplier. An explicit 0 disables the margin.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	cfg.Model.IQRMultiplier = DefaultIQRMultiplier
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "invalid yaml")
	}
	return &cfg, nil
}

// Marshal encodes the config back to YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return data, nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return errors.Wrap(err, "failed to read environment overrides")
	}
	if env.LogLevel != "" {
		c.App.LogLevel = env.LogLevel
	}
	if env.Store != "" {
		c.App.Store = env.Store
	}
	if env.StorePath != "" {
		c.App.StorePath = env.StorePath
	}
	if env.TrainingData != "" {
		c.App.TrainingDataFile = env.TrainingData
	}
	return nil
}

// Validate rejects configurations the pipeline cannot be built from.
func (c *Config) Validate() error {
	switch c.App.Store {
	case StoreFile, StoreBolt:
	default:
		return errors.NewValidationError("app.store", "must be file or bolt", c.App.Store)
	}
	if c.App.StorePath == "" {
		return errors.NewValidationError("app.store_path", "must not be empty", c.App.StorePath)
	}
	if c.App.PipelineSaveFile == "" {
		return errors.NewValidationError("app.pipeline_save_file", "must not be empty", c.App.PipelineSaveFile)
	}

	m := c.Model
	if m.Target == "" {
		return errors.NewValidationError("model.target", "must not be empty", m.Target)
	}
	if len(m.Features) == 0 {
		return errors.NewValidationError("model.features", "must not be empty", m.Features)
	}
	features := make(map[string]bool, len(m.Features))
	for _, f := range m.Features {
		if f == m.Target {
			return errors.NewValidationError("model.features", "must not contain the target", f)
		}
		features[f] = true
	}
	for key, name := range c.Model.columnVars() {
		if name == "" {
			return errors.NewValidationError("model."+key, "must not be empty", name)
		}
		if !features[name] {
			return errors.NewValidationError("model."+key, "must be listed in model.features", name)
		}
	}
	for _, name := range m.NumericalVars {
		if !features[name] {
			return errors.NewValidationError("model.numerical_vars", "must be listed in model.features", name)
		}
	}
	for key, table := range c.Model.MappingTables() {
		if len(table) == 0 {
			return errors.NewValidationError("model."+key+"_mappings", "must not be empty", key)
		}
	}
	if m.IQRMultiplier < 0 {
		return errors.NewValidationError("model.iqr_multiplier", "must be non-negative", m.IQRMultiplier)
	}
	switch m.UnknownCategoryPolicy {
	case "", "zero_fill", "error":
	default:
		return errors.NewValidationError("model.unknown_category_policy", "must be zero_fill or error", m.UnknownCategoryPolicy)
	}
	switch m.Scaler {
	case "", ScalerStandard, ScalerMinMax:
	default:
		return errors.NewValidationError("model.scaler", "must be standard or minmax", m.Scaler)
	}
	if m.TestSize <= 0 || m.TestSize >= 1 {
		return errors.NewValidationError("model.test_size", "must be in (0, 1)", m.TestSize)
	}
	return nil
}

func (m ModelConfig) columnVars() map[string]string {
	return map[string]string{
		"date_var":       m.DateVar,
		"weekday_var":    m.WeekdayVar,
		"weathersit_var": m.WeathersitVar,
		"year_var":       m.YearVar,
		"month_var":      m.MonthVar,
		"season_var":     m.SeasonVar,
		"holiday_var":    m.HolidayVar,
		"workingday_var": m.WorkingdayVar,
		"hour_var":       m.HourVar,
	}
}

// MappingTables returns the ordinal mapping tables keyed by their short name
// (yr, mnth, season, weathersit, holiday, workingday, hr).
func (m ModelConfig) MappingTables() map[string]map[string]int {
	return map[string]map[string]int{
		"yr":         m.YearMappings,
		"mnth":       m.MonthMappings,
		"season":     m.SeasonMappings,
		"weathersit": m.WeathersitMappings,
		"holiday":    m.HolidayMappings,
		"workingday": m.WorkingdayMappings,
		"hr":         m.HourMappings,
	}
}

// MappedColumns returns the ordinal-mapped columns in pipeline order, each
// with its step name and table.
func (m ModelConfig) MappedColumns() []MappedColumn {
	return []MappedColumn{
		{Step: "map_yr", Column: m.YearVar, Mappings: m.YearMappings},
		{Step: "map_mnth", Column: m.MonthVar, Mappings: m.MonthMappings},
		{Step: "map_season", Column: m.SeasonVar, Mappings: m.SeasonMappings},
		{Step: "map_weathersit", Column: m.WeathersitVar, Mappings: m.WeathersitMappings},
		{Step: "map_holiday", Column: m.HolidayVar, Mappings: m.HolidayMappings},
		{Step: "map_workingday", Column: m.WorkingdayVar, Mappings: m.WorkingdayMappings},
		{Step: "map_hr", Column: m.HourVar, Mappings: m.HourMappings},
	}
}

// MappedColumn pairs a pipeline step with the column and table it maps.
type MappedColumn struct {
	Step     string
	Column   string
	Mappings map[string]int
}

// CategoricalVars returns the text-valued feature columns, i.e. every feature
// not listed as numerical.
func (m ModelConfig) CategoricalVars() []string {
	numeric := make(map[string]bool, len(m.NumericalVars))
	for _, n := range m.NumericalVars {
		numeric[n] = true
	}
	var out []string
	for _, f := range m.Features {
		if !numeric[f] {
			out = append(out, f)
		}
	}
	return out
}
