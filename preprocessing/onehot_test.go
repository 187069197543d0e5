package preprocessing

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

func captureWarnings(t *testing.T) *[]error {
	t.Helper()
	var got []error
	errors.SetZerologWarnFunc(nil)
	errors.SetWarningHandler(func(w error) { got = append(got, w) })
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })
	return &got
}

func TestWeekdayOneHotEncoder(t *testing.T) {
	train := dataframe.MustFromColumns(
		dataframe.Strings("weekday", "Tue", "Mon", "", "Mon"),
		dataframe.Floats("temp", 1, 2, 3, 4),
	)

	enc, err := NewWeekdayOneHotEncoder("weekday", UnknownZeroFill)
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.Fit(train); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Mon", "Tue", "nan"}, enc.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	out, err := enc.Transform(train)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width() != train.Width()+len(enc.Categories) {
		t.Errorf("width = %d, want %d", out.Width(), train.Width()+len(enc.Categories))
	}
	wantNames := []string{"weekday", "temp", "weekday_Mon", "weekday_Tue", "weekday_nan"}
	if diff := cmp.Diff(wantNames, out.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	for i := 0; i < out.Len(); i++ {
		ones := 0
		for _, name := range enc.FeatureNames() {
			col := mustColumn(t, out, name)
			if col.Kind() != dataframe.KindInt {
				t.Fatalf("%s kind = %s, want int", name, col.Kind())
			}
			ones += col.Int(i)
		}
		if ones != 1 {
			t.Errorf("row %d has %d ones, want exactly 1", i, ones)
		}
	}
	if got := mustColumn(t, out, "weekday_nan").Int(2); got != 1 {
		t.Errorf("missing weekday should encode as weekday_nan")
	}
}

func TestWeekdayOneHotEncoderUnknownZeroFill(t *testing.T) {
	warnings := captureWarnings(t)

	enc, _ := NewWeekdayOneHotEncoder("weekday", "")
	_ = enc.Fit(dataframe.MustFromColumns(dataframe.Strings("weekday", "Mon", "Tue")))

	out, err := enc.Transform(dataframe.MustFromColumns(dataframe.Strings("weekday", "Wed", "Mon", "Wed", "")))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range enc.FeatureNames() {
		col := mustColumn(t, out, name)
		if col.Int(0) != 0 || col.Int(2) != 0 || col.Int(3) != 0 {
			t.Errorf("%s: unseen categories should be all zeros", name)
		}
	}
	if mustColumn(t, out, "weekday_Mon").Int(1) != 1 {
		t.Errorf("known category lost")
	}

	if len(*warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(*warnings))
	}
	var w *errors.UnknownCategoryWarning
	if !errors.As((*warnings)[0], &w) {
		t.Fatalf("unexpected warning type %T", (*warnings)[0])
	}
	if diff := cmp.Diff([]string{"Wed", "nan"}, w.Categories); diff != "" || w.Rows != 3 {
		t.Errorf("warning = %+v", w)
	}
}

func TestWeekdayOneHotEncoderUnknownError(t *testing.T) {
	enc, _ := NewWeekdayOneHotEncoder("weekday", UnknownError)
	_ = enc.Fit(dataframe.MustFromColumns(dataframe.Strings("weekday", "Mon")))

	_, err := enc.Transform(dataframe.MustFromColumns(dataframe.Strings("weekday", "Mon", "Sun")))
	var uc *errors.UnknownCategoryError
	if !errors.As(err, &uc) {
		t.Fatalf("expected UnknownCategoryError, got %v", err)
	}
	if uc.Category != "Sun" || uc.Row != 1 {
		t.Errorf("got %+v", uc)
	}
}

func TestParseUnknownPolicy(t *testing.T) {
	if _, err := ParseUnknownPolicy("ignore"); err == nil {
		t.Errorf("unsupported policy should be rejected")
	}
	if p, _ := ParseUnknownPolicy(""); p != UnknownZeroFill {
		t.Errorf("default policy = %q", p)
	}
}

func TestColumnDropper(t *testing.T) {
	df := dataframe.MustFromColumns(
		dataframe.Strings("dteday", "2012-11-05"),
		dataframe.Strings("weekday", "Mon"),
		dataframe.Floats("temp", 6.1),
	)

	d := NewColumnDropper([]string{"dteday", "weekday"}, "casual")
	if err := d.Fit(df); err != nil {
		t.Fatal(err)
	}
	out, err := d.Transform(df)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"temp"}, out.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if df.Width() != 3 {
		t.Errorf("input frame was mutated")
	}

	_, err = d.Transform(out)
	var mc *errors.MissingColumnError
	if !errors.As(err, &mc) || mc.Column != "dteday" {
		t.Errorf("expected MissingColumnError for dteday, got %v", err)
	}
}

func TestWeekdayOneHotEncoderLiteralNan(t *testing.T) {
	train := dataframe.MustFromColumns(dataframe.Strings("weekday", "Mon", "nan", ""))

	enc, _ := NewWeekdayOneHotEncoder("weekday", UnknownZeroFill)
	if err := enc.Fit(train); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Mon", "nan"}, enc.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	out, err := enc.Transform(train)
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"weekday", "weekday_Mon", "weekday_nan"}
	if diff := cmp.Diff(wantNames, out.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"0", "1", "1"}, texts(mustColumn(t, out, "weekday_nan"))); diff != "" {
		t.Errorf("weekday_nan mismatch (-want +got):\n%s", diff)
	}
}
