package preprocessing

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

func TestWeekdayImputer(t *testing.T) {
	df := dataframe.MustFromColumns(
		dataframe.Strings("dteday", "2012-11-05", "2011-01-01", "bad", "", "2012-11-06"),
		dataframe.Strings("weekday", "Sun", "", "", "", ""),
	)

	imp, err := NewWeekdayImputer("dteday", "weekday")
	if err != nil {
		t.Fatal(err)
	}
	if err := imp.Fit(df); err != nil {
		t.Fatal(err)
	}
	if imp.FillValue != UnknownWeekday {
		t.Errorf("FillValue = %q, want %q", imp.FillValue, UnknownWeekday)
	}

	out, err := imp.Transform(df)
	if err != nil {
		t.Fatal(err)
	}

	// a present value is kept even when it disagrees with the date
	want := []string{"Sun", "Sat", "Unknown", "Unknown", "Tue"}
	if diff := cmp.Diff(want, texts(mustColumn(t, out, "weekday"))); diff != "" {
		t.Errorf("weekday mismatch (-want +got):\n%s", diff)
	}
	if mustColumn(t, out, "weekday").MissingCount() != 0 {
		t.Errorf("no weekday should remain missing")
	}
	if diff := cmp.Diff(texts(mustColumn(t, df, "dteday")), texts(mustColumn(t, out, "dteday"))); diff != "" {
		t.Errorf("date column changed (-want +got):\n%s", diff)
	}
	if mustColumn(t, df, "weekday").MissingCount() != 4 {
		t.Errorf("input frame was mutated")
	}

	again, err := imp.Transform(out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(out, again, frameCmp); diff != "" {
		t.Errorf("second transform changed clean data (-first +second):\n%s", diff)
	}
}

func TestWeekdayImputerMissingColumn(t *testing.T) {
	imp, _ := NewWeekdayImputer("dteday", "weekday")
	df := dataframe.MustFromColumns(dataframe.Strings("weekday", "Mon"))

	err := imp.Fit(df)
	var mc *errors.MissingColumnError
	if !errors.As(err, &mc) || mc.Column != "dteday" {
		t.Errorf("expected MissingColumnError for dteday, got %v", err)
	}

	if _, err := NewWeekdayImputer("", "weekday"); err == nil {
		t.Errorf("empty date column should be rejected")
	}
}

func TestWeathersitImputer(t *testing.T) {
	tests := []struct {
		name  string
		train []string
		want  string
	}{
		{"majority wins", []string{"Mist", "Mist", "Clear", ""}, "Mist"},
		{"tie picks smallest label", []string{"Mist", "Clear", "", "Mist", "Clear"}, "Clear"},
		{"single value", []string{"Light Rain"}, "Light Rain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			train := dataframe.MustFromColumns(dataframe.Strings("weathersit", tt.train...))
			imp, _ := NewWeathersitImputer("weathersit")
			if err := imp.Fit(train); err != nil {
				t.Fatal(err)
			}
			if imp.FillValue != tt.want {
				t.Errorf("FillValue = %q, want %q", imp.FillValue, tt.want)
			}

			out, err := imp.Transform(train)
			if err != nil {
				t.Fatal(err)
			}
			col := mustColumn(t, out, "weathersit")
			if col.MissingCount() != 0 {
				t.Errorf("missing values remain after imputation")
			}
			for i, v := range tt.train {
				if v == "" && col.Str(i) != tt.want {
					t.Errorf("row %d = %q, want mode %q", i, col.Str(i), tt.want)
				}
				if v != "" && col.Str(i) != v {
					t.Errorf("row %d changed from %q to %q", i, v, col.Str(i))
				}
			}
		})
	}
}

func TestWeathersitImputerAllMissing(t *testing.T) {
	imp, _ := NewWeathersitImputer("weathersit")
	err := imp.Fit(dataframe.MustFromColumns(dataframe.Strings("weathersit", "", "")))
	var ve *errors.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
