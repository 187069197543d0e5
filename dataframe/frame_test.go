package dataframe

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

func sampleFrame() *Frame {
	return MustFromColumns(
		Strings("dteday", "2012-11-05", "2011-01-01", ""),
		Strings("weekday", "Mon", "", "Wed"),
		Floats("temp", 6.1, math.NaN(), 20.5),
	)
}

func TestFrameBasics(t *testing.T) {
	f := sampleFrame()

	if f.Len() != 3 || f.Width() != 3 {
		t.Fatalf("got %dx%d, want 3x3", f.Len(), f.Width())
	}
	if diff := cmp.Diff([]string{"dteday", "weekday", "temp"}, f.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, f.Index()); diff != "" {
		t.Errorf("Index() mismatch (-want +got):\n%s", diff)
	}

	temp, err := f.Column("temp")
	if err != nil {
		t.Fatal(err)
	}
	if !temp.IsMissing(1) || temp.MissingCount() != 1 {
		t.Errorf("NaN should be stored as missing")
	}
	if diff := cmp.Diff([]float64{6.1, 20.5}, temp.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetColumnLengthMismatch(t *testing.T) {
	f := sampleFrame()
	err := f.SetColumn(Floats("hum", 1, 2))

	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
	if dimErr.Expected != 3 || dimErr.Got != 2 {
		t.Errorf("got expected=%d got=%d", dimErr.Expected, dimErr.Got)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	f := sampleFrame()
	c := f.Copy()

	col, _ := c.Column("weekday")
	col.SetStr(1, "Sat")

	orig, _ := f.Column("weekday")
	if !orig.IsMissing(1) {
		t.Errorf("mutating the copy changed the original")
	}
}

func TestSelectAndDrop(t *testing.T) {
	f := sampleFrame()

	sel, err := f.Select([]string{"temp", "dteday"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"temp", "dteday"}, sel.Names()); diff != "" {
		t.Errorf("Select order mismatch (-want +got):\n%s", diff)
	}

	_, err = f.Select([]string{"hum"})
	var missingErr *errors.MissingColumnError
	if !errors.As(err, &missingErr) || missingErr.Column != "hum" {
		t.Errorf("expected MissingColumnError for hum, got %v", err)
	}

	if err := f.Drop("dteday", "nope"); err == nil {
		t.Errorf("Drop with an absent column should fail")
	}
	if f.Width() != 3 {
		t.Errorf("failed Drop must not remove anything, width=%d", f.Width())
	}
	if err := f.Drop("dteday"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"weekday", "temp"}, f.Names()); diff != "" {
		t.Errorf("Drop mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsKeepsIndexLabels(t *testing.T) {
	f := sampleFrame().Rows([]int{2, 0})

	if diff := cmp.Diff([]int{2, 0}, f.Index()); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
	wd, _ := f.Column("weekday")
	if wd.Str(0) != "Wed" || wd.Str(1) != "Mon" {
		t.Errorf("unexpected rows: %q %q", wd.Str(0), wd.Str(1))
	}
}

func TestToDense(t *testing.T) {
	f := MustFromColumns(
		NewIntColumn("yr", []int{0, 1}, nil),
		Floats("temp", 1.5, 2.5),
		Strings("season", "fall", "winter"),
	)

	m, err := f.ToDense([]string{"temp", "yr"})
	if err != nil {
		t.Fatal(err)
	}
	if r, c := m.Dims(); r != 2 || c != 2 {
		t.Fatalf("got %dx%d", r, c)
	}
	if m.At(1, 0) != 2.5 || m.At(1, 1) != 1 {
		t.Errorf("unexpected values %v", m.RawMatrix().Data)
	}

	_, err = f.ToDense([]string{"season"})
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("string column should be rejected, got %v", err)
	}
}

func TestColumnText(t *testing.T) {
	c := NewIntColumn("yr", []int{2011}, nil)
	if got := c.Text(0); got != "2011" {
		t.Errorf("Text() = %q, want 2011", got)
	}
	f := Floats("temp", 0.5)
	if got := f.Text(0); got != "0.5" {
		t.Errorf("Text() = %q, want 0.5", got)
	}
}

func TestReadCSV(t *testing.T) {
	in := "dteday,weekday,temp\n2012-11-05,Mon,6.1\n2011-01-01,,NA\n"
	f, err := ReadCSV(strings.NewReader(in), []string{"temp"})
	if err != nil {
		t.Fatal(err)
	}
	wd, _ := f.Column("weekday")
	temp, _ := f.Column("temp")
	if !wd.IsMissing(1) || !temp.IsMissing(1) {
		t.Errorf("empty and NA cells should be missing")
	}
	if temp.Kind() != KindFloat || temp.Float(0) != 6.1 {
		t.Errorf("temp not parsed as float")
	}

	_, err = ReadCSV(strings.NewReader("temp\nwarm\n"), []string{"temp"})
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, sampleFrame()); err != nil {
		t.Fatal(err)
	}
	want := "dteday,weekday,temp\n2012-11-05,Mon,6.1\n2011-01-01,,\n,Wed,20.5\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("WriteCSV mismatch (-want +got):\n%s", diff)
	}
}
