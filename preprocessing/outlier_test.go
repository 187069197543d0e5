package preprocessing

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"lower quartile", []float64{4, 1, 3, 2}, 0.25, 1.75},
		{"upper quartile", []float64{4, 1, 3, 2}, 0.75, 3.25},
		{"median odd", []float64{5, 1, 3}, 0.5, 3},
		{"single", []float64{7}, 0.25, 7},
		{"exact position", []float64{1, 2, 3, 4, 100}, 0.75, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quantile(tt.values, tt.q)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("quantile(%v, %v) = %v, want %v", tt.values, tt.q, got, tt.want)
			}
		})
	}

	if !math.IsNaN(quantile(nil, 0.5)) {
		t.Errorf("quantile of no values should be NaN")
	}
}

func TestOutlierCapperFitOnTrain(t *testing.T) {
	train := dataframe.MustFromColumns(dataframe.Floats("temp", 1, 2, 3, 4, 100))

	oc, err := NewOutlierCapper([]string{"temp"}, DefaultIQRMultiplier)
	if err != nil {
		t.Fatal(err)
	}
	if err := oc.Fit(train); err != nil {
		t.Fatal(err)
	}
	if oc.IQR["temp"] != 2 {
		t.Errorf("IQR = %v, want 2", oc.IQR["temp"])
	}

	out, err := oc.Transform(train)
	if err != nil {
		t.Fatal(err)
	}
	bounds, _ := oc.Bounds(train)
	col := mustColumn(t, out, "temp")
	if diff := cmp.Diff([]float64{1, 2, 3, 4, 7}, col.Values()); diff != "" {
		t.Errorf("capped values mismatch (-want +got):\n%s", diff)
	}
	for _, v := range col.Values() {
		if v < bounds["temp"].Lower || v > bounds["temp"].Upper {
			t.Errorf("%v outside [%v, %v]", v, bounds["temp"].Lower, bounds["temp"].Upper)
		}
	}
}

// The IQR comes from the training data while Q1 and Q3 come from the data
// being transformed. Either pure scope would give a different answer here:
// train-only bounds [-1, 7] cap every value to 7, transform-only bounds
// [-10, 70] leave the data unchanged.
func TestOutlierCapperMixedStatisticScope(t *testing.T) {
	train := dataframe.MustFromColumns(dataframe.Floats("temp", 1, 2, 3, 4, 100))
	test := dataframe.MustFromColumns(dataframe.Floats("temp", 10, 20, 30, 40, 50))

	oc, _ := NewOutlierCapper([]string{"temp"}, 1.5)
	if err := oc.Fit(train); err != nil {
		t.Fatal(err)
	}

	bounds, err := oc.Bounds(test)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Bounds{Lower: 17, Upper: 43}, bounds["temp"]); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}

	out, err := oc.Transform(test)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{17, 20, 30, 40, 43}, mustColumn(t, out, "temp").Values()); diff != "" {
		t.Errorf("capped values mismatch (-want +got):\n%s", diff)
	}
}

func TestOutlierCapperKeepsMissing(t *testing.T) {
	df := dataframe.MustFromColumns(
		dataframe.Floats("temp", 1, math.NaN(), 3, 4, 100),
		dataframe.Floats("hum", 10, 20, 30, 40, 50),
	)

	oc, _ := NewOutlierCapper([]string{"temp", "hum"}, DefaultIQRMultiplier)
	if err := oc.Fit(df); err != nil {
		t.Fatal(err)
	}
	out, err := oc.Transform(df)
	if err != nil {
		t.Fatal(err)
	}

	if !mustColumn(t, out, "temp").IsMissing(1) {
		t.Errorf("missing cell should stay missing")
	}
	if mustColumn(t, df, "temp").Float(4) != 100 {
		t.Errorf("input frame was mutated")
	}
	if diff := cmp.Diff([]float64{10, 20, 30, 40, 50}, mustColumn(t, out, "hum").Values()); diff != "" {
		t.Errorf("hum within bounds should be unchanged (-want +got):\n%s", diff)
	}
}

func TestOutlierCapperValidation(t *testing.T) {
	if _, err := NewOutlierCapper([]string{"temp"}, -1); err == nil {
		t.Errorf("negative multiplier should be rejected")
	}
	if _, err := NewOutlierCapper(nil, 1.5); err == nil {
		t.Errorf("empty column list should be rejected")
	}

	oc, _ := NewOutlierCapper([]string{"season"}, 1.5)
	err := oc.Fit(dataframe.MustFromColumns(dataframe.Strings("season", "fall")))
	var ve *errors.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for a text column, got %v", err)
	}

	oc, _ = NewOutlierCapper([]string{"windspeed"}, 1.5)
	err = oc.Fit(dataframe.MustFromColumns(dataframe.Floats("temp", 1)))
	var mc *errors.MissingColumnError
	if !errors.As(err, &mc) {
		t.Errorf("expected MissingColumnError, got %v", err)
	}
}

func TestOutlierCapperIntColumnBecomesFloat(t *testing.T) {
	df := dataframe.MustFromColumns(dataframe.NewIntColumn("cnt", []int{1, 2, 3, 4, 100}, nil))

	oc, _ := NewOutlierCapper([]string{"cnt"}, 1.25)
	out, err := model.FitTransform(oc, df)
	if err != nil {
		t.Fatal(err)
	}
	col := mustColumn(t, out, "cnt")
	if col.Kind() != dataframe.KindFloat {
		t.Errorf("kind = %s, want float", col.Kind())
	}
	if diff := cmp.Diff([]float64{1, 2, 3, 4, 6.5}, col.Values()); diff != "" {
		t.Errorf("capped values mismatch (-want +got):\n%s", diff)
	}
	if mustColumn(t, df, "cnt").Kind() != dataframe.KindInt {
		t.Errorf("input frame was mutated")
	}
}
