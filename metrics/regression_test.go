package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(4, []float64{16, 40, 32, 13}),
			yPred:     mat.NewVecDense(4, []float64{16, 40, 32, 13}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25,
			tolerance: 1e-10,
		},
		{
			name:      "hourly counts",
			yTrue:     mat.NewVecDense(3, []float64{110, 93, 67}),
			yPred:     mat.NewVecDense(3, []float64{100, 95, 70}),
			want:      113.0 / 3.0, // (100 + 4 + 9) / 3
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMSEMatrix(t *testing.T) {
	got, err := MSEMatrix(
		mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
		mat.NewDense(4, 1, []float64{1.5, 2.5, 2.5, 3.5}),
	)
	if err != nil || math.Abs(got-0.25) > 1e-10 {
		t.Errorf("MSEMatrix() = %v, %v; want 0.25", got, err)
	}

	_, err = MSEMatrix(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	if err == nil {
		t.Errorf("multiple columns should error")
	}
}

func TestRMSEAndMAE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{3, -0.5, 2, 7})
	yPred := mat.NewVecDense(4, []float64{2.5, 0.0, 2, 8})

	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Sqrt(0.375); math.Abs(rmse-want) > 1e-10 {
		t.Errorf("RMSE() = %v, want %v", rmse, want)
	}

	mae, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(mae-0.5) > 1e-10 {
		t.Errorf("MAE() = %v, want 0.5", mae)
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{"perfect prediction", []float64{1, 2, 3, 4, 5}, []float64{1, 2, 3, 4, 5}, 1.0, false},
		{"no variance in yTrue", []float64{3, 3, 3}, []float64{2, 3, 4}, 0, true},
		{"worse than mean baseline", []float64{1, 2, 3, 4}, []float64{4, 3, 2, 1}, -3.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(mat.NewVecDense(len(tt.yTrue), tt.yTrue), mat.NewVecDense(len(tt.yPred), tt.yPred))
			if (err != nil) != tt.wantErr {
				t.Fatalf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	yTrue := mat.NewDense(4, 1, []float64{100, 200, 0, 400})
	yPred := mat.NewDense(4, 1, []float64{110, 190, 10, 400})

	r, err := Evaluate(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if r.Samples != 4 || math.Abs(r.MSE-75) > 1e-10 || math.Abs(r.MAE-7.5) > 1e-10 {
		t.Errorf("unexpected report %+v", r)
	}
	if math.Abs(r.RMSE-math.Sqrt(75)) > 1e-10 {
		t.Errorf("RMSE = %v", r.RMSE)
	}
	// the zero target is skipped: (10% + 5% + 0%) / 3
	if math.Abs(r.MAPE-5) > 1e-10 {
		t.Errorf("MAPE = %v, want 5", r.MAPE)
	}
	if r.R2 <= 0.99 {
		t.Errorf("R2 = %v, expected close to 1", r.R2)
	}
}
