package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{
		1, 2,
		3, 2,
	})

	s := NewStandardScalerDefault()
	got, err := s.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}

	want := mat.NewDense(2, 2, []float64{
		-1, 0,
		1, 0,
	})
	if !mat.EqualApprox(got, want, 1e-12) {
		t.Errorf("got %v, want %v", mat.Formatted(got), mat.Formatted(want))
	}
	if s.Scale[1] != 1 {
		t.Errorf("zero variance column should have scale 1, got %v", s.Scale[1])
	}

	back, err := s.InverseTransform(got)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.EqualApprox(back, X, 1e-12) {
		t.Errorf("inverse transform mismatch")
	}
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScalerDefault()

	if _, err := s.Transform(mat.NewDense(1, 1, nil)); err == nil {
		t.Errorf("transform before fit should fail")
	}

	err := s.Fit(mat.NewDense(2, 1, []float64{1, math.NaN()}))
	var ve *errors.ValueError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValueError for NaN input, got %v", err)
	}

	_ = s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	_, err = s.Transform(mat.NewDense(1, 3, nil))
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("expected DimensionError, got %v", err)
	}
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{2, 4, 6})

	m := NewMinMaxScalerDefault()
	got, err := m.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}
	want := mat.NewDense(3, 1, []float64{0, 0.5, 1})
	if !mat.EqualApprox(got, want, 1e-12) {
		t.Errorf("got %v", mat.Formatted(got))
	}

	back, _ := m.InverseTransform(got)
	if !mat.EqualApprox(back, X, 1e-12) {
		t.Errorf("inverse transform mismatch")
	}
}
