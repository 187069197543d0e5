package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "bikeshare: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "bikeshare: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("OutlierCapper", "Transform")

	want := "bikeshare: OutlierCapper: this model is not fitted yet. Call Fit() before using Transform()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewLookupError(t *testing.T) {
	err := NewLookupError("season", "monsoon", 7046)

	want := `bikeshare: column 'season': value "monsoon" at row 7046 has no entry in the mapping table`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var lookupErr *LookupError
	if !As(err, &lookupErr) {
		t.Fatal("Error should be castable to *LookupError")
	}
	if lookupErr.Row != 7046 || lookupErr.Value != "monsoon" {
		t.Errorf("unexpected fields: %+v", lookupErr)
	}
}

func TestNewMissingColumnError(t *testing.T) {
	err := Wrap(NewMissingColumnError("ColumnDropper.Transform", "dteday"), "step column_dropper")

	var colErr *MissingColumnError
	if !As(err, &colErr) {
		t.Fatal("wrapped error should still be castable to *MissingColumnError")
	}
	if colErr.Column != "dteday" {
		t.Errorf("Column = %q, want dteday", colErr.Column)
	}
	if !strings.Contains(err.Error(), "step column_dropper") {
		t.Errorf("expected wrapping message in %q", err.Error())
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("column", "must not be empty", "")

	want := "bikeshare: validation failed for parameter 'column': must not be empty (got: )"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestUnknownCategoryWarning(t *testing.T) {
	w := NewUnknownCategoryWarning("weekday", []string{"Xyz"}, 2)

	want := "found 2 row(s) with unknown categories [Xyz] in column 'weekday'; encoded as all zeros"
	if w.Error() != want {
		t.Errorf("Error() = %v, want %v", w.Error(), want)
	}
}

func TestWarnUsesHandler(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(NewDataConversionWarning("float", "int", "ordinal mapping"))

	if len(got) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(got))
	}
}

func TestWrapfAndIs(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d rows", "Fit", 10)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Fit: expected 10 rows"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestCheckMatrix(t *testing.T) {
	ok := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if err := CheckMatrix("features", ok, 2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := mat.NewDense(2, 2, []float64{1, 2, math.NaN(), 4})
	err := CheckMatrix("features", bad, 2, 2)
	if err == nil {
		t.Fatal("expected error for NaN cell")
	}
	if !strings.Contains(err.Error(), "row 1, column 0") {
		t.Errorf("error should name the cell: %v", err)
	}
}

func TestClipValue(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := ClipValue(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("ClipValue(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
