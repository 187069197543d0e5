package processing

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/YuminosukeSato/bikeshare/config"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

func sampleRecords() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"dteday": "2012-11-05", "season": "winter", "hr": "6am", "holiday": "No",
			"weekday": "Mon", "workingday": "Yes", "weathersit": "Mist",
			"temp": 6.1, "atemp": 3.0014, "hum": 49.0, "windspeed": 19.0012,
			"casual": 4.0, "registered": 135.0,
		},
		{
			"dteday": "2011-07-01", "season": "summer", "hr": "5pm", "holiday": "No",
			"weekday": nil, "workingday": "Yes", "weathersit": nil,
			"temp": "31.2", "atemp": 33.0, "hum": 40.0, "windspeed": 12.5,
		},
		{
			"dteday": "someday", "season": "fall", "hr": "1am", "holiday": "No",
			"weekday": "Sat", "workingday": "No", "weathersit": "Clear",
			"temp": "warm", "atemp": 10.0, "hum": nil, "windspeed": 5.0,
		},
	}
}

func TestPrePipelinePreparation(t *testing.T) {
	cfg := config.Default().Model
	df, err := dataframe.FromRecords(sampleRecords()[:1], nil)
	if err != nil {
		t.Fatal(err)
	}

	out, err := PrePipelinePreparation(df, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if out.Has("casual") || out.Has("registered") {
		t.Errorf("unused fields should be dropped: %v", out.Names())
	}
	yr, _ := out.Column("yr")
	mnth, _ := out.Column("mnth")
	if yr.Text(0) != "2012" || mnth.Str(0) != "November" {
		t.Errorf("got yr=%s mnth=%s", yr.Text(0), mnth.Str(0))
	}
}

func TestValidateInputs(t *testing.T) {
	cfg := config.Default().Model
	df, err := dataframe.FromRecords(sampleRecords(), nil)
	if err != nil {
		t.Fatal(err)
	}

	result := ValidateInputs(df, cfg)
	if result.HasTableIssues() {
		t.Fatalf("unexpected table issues: %v", result.Issues)
	}

	want := []ValidationIssue{
		{Row: 2, Column: "temp", Message: `not a number: "warm"`},
		{Row: 2, Column: "hum", Message: "missing value"},
		{Row: 2, Column: "dteday", Message: `unparsable date "someday"`},
	}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(cfg.Features, result.Frame.Names()); diff != "" {
		t.Errorf("frame should follow the feature order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, result.Frame.Index()); diff != "" {
		t.Errorf("rows with issues should be removed (-want +got):\n%s", diff)
	}

	temp, _ := result.Frame.Column("temp")
	if temp.Kind() != dataframe.KindFloat || temp.Float(1) != 31.2 {
		t.Errorf("numeric strings should be coerced, got %s %v", temp.Kind(), temp.Text(1))
	}
	weekday, _ := result.Frame.Column("weekday")
	if !weekday.IsMissing(1) {
		t.Errorf("missing categorical values are left to the imputers")
	}

	var ve *errors.ValidationError
	if !errors.As(result.Err(), &ve) {
		t.Errorf("Err() should summarise the issues as a ValidationError")
	}
}

func TestValidateInputsMissingColumn(t *testing.T) {
	cfg := config.Default().Model
	records := sampleRecords()[:1]
	delete(records[0], "hr")
	df, _ := dataframe.FromRecords(records, nil)

	result := ValidateInputs(df, cfg)
	if !result.HasTableIssues() || result.Frame != nil {
		t.Fatalf("expected a table issue, got %+v", result)
	}
	if result.Issues[0].Column != "hr" {
		t.Errorf("issue = %v", result.Issues[0])
	}
}

func TestRawInputColumns(t *testing.T) {
	cols := RawInputColumns(config.Default().Model)
	for _, c := range cols {
		if c == "yr" || c == "mnth" {
			t.Errorf("derived column %s should not be required", c)
		}
	}
	if len(cols) != 11 {
		t.Errorf("got %d raw columns, want 11", len(cols))
	}
}

func TestValidateInputsNumericCategorical(t *testing.T) {
	var warnings []error
	errors.SetZerologWarnFunc(nil)
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })

	cfg := config.Default().Model
	cfg.HolidayMappings = map[string]int{"0": 0, "1": 1}
	df, err := dataframe.FromRecords(sampleRecords()[:1], nil)
	if err != nil {
		t.Fatal(err)
	}
	// holiday arrives as numeric codes, e.g. from a CSV read with the wrong schema
	if err := df.SetColumn(dataframe.NewFloatColumn("holiday", []float64{1}, nil)); err != nil {
		t.Fatal(err)
	}

	res := ValidateInputs(df, cfg)
	if err := res.Err(); err != nil {
		t.Fatal(err)
	}
	holiday, _ := res.Frame.Column("holiday")
	if holiday.Kind() != dataframe.KindString || holiday.Str(0) != "1" {
		t.Errorf("holiday not converted to text: kind %s", holiday.Kind())
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	var w *errors.DataConversionWarning
	if !errors.As(warnings[0], &w) || w.FromType != "float" {
		t.Errorf("unexpected warning %v", warnings[0])
	}
}

func TestValidateInputsMappedColumns(t *testing.T) {
	cfg := config.Default().Model
	base := sampleRecords()[0]
	records := make([]map[string]interface{}, 5)
	for i := range records {
		records[i] = make(map[string]interface{}, len(base))
		for k, v := range base {
			records[i][k] = v
		}
	}
	records[1]["season"] = nil
	records[2]["hr"] = "25pm"
	records[3]["weathersit"] = nil
	records[4]["dteday"] = "2015-03-01"

	df, err := dataframe.FromRecords(records, nil)
	if err != nil {
		t.Fatal(err)
	}
	result := ValidateInputs(df, cfg)
	if result.HasTableIssues() {
		t.Fatalf("unexpected table issues: %v", result.Issues)
	}

	want := []ValidationIssue{
		{Row: 1, Column: "season", Message: "missing value"},
		{Row: 2, Column: "hr", Message: `no mapping for "25pm"`},
		{Row: 4, Column: "yr", Message: `no mapping for "2015"`},
	}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
	// a missing weather situation is imputed later
	if diff := cmp.Diff([]int{0, 3}, result.Frame.Index()); diff != "" {
		t.Errorf("kept rows mismatch (-want +got):\n%s", diff)
	}
}
