// Package metrics は回帰モデルの評価指標を提供する
package metrics

import (
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// checkPair は2つのベクトルが空でなく同じ長さであることを確認する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// residuals は yTrue - yPred を返す
func residuals(yTrue, yPred *mat.VecDense) []float64 {
	var diff mat.VecDense
	diff.SubVec(yTrue, yPred)
	return append([]float64(nil), diff.RawVector().Data...)
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	r := residuals(yTrue, yPred)
	return floats.Dot(r, r) / float64(n), nil
}

// MSEMatrix は n×1 行列形式の入力に対してMSEを計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columnVectors("MSEMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return MSE(t, p)
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Norm(residuals(yTrue, yPred), 1) / float64(n), nil
}

// R2Score は決定係数（R²）を計算する。yTrue に分散がない場合はエラー。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	if _, err := checkPair("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	truth := mat.Col(nil, 0, yTrue)
	mean := stat.Mean(truth, nil)

	var tss float64
	for _, v := range truth {
		tss += (v - mean) * (v - mean)
	}
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	r := residuals(yTrue, yPred)
	return 1 - floats.Dot(r, r)/tss, nil
}

// MAPE は平均絶対パーセンテージ誤差を計算する。yTrue が0の要素は除外する。
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	valid := 0
	for i := 0; i < n; i++ {
		truth := yTrue.AtVec(i)
		if truth == 0 {
			continue
		}
		sum += math.Abs(truth-yPred.AtVec(i)) / math.Abs(truth)
		valid++
	}
	if valid == 0 {
		return 0, errors.NewValueError("MAPE", "all yTrue values are zero")
	}
	return sum / float64(valid) * 100, nil
}

// Report は学習・評価時にログへ出す回帰指標の集まり
type Report struct {
	Samples int
	MSE     float64
	RMSE    float64
	MAE     float64
	R2      float64
	MAPE    float64 // yTrue がすべて0の場合は NaN
}

// MarshalZerologObject はzerologのイベントに指標を追加する
func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Int("samples", r.Samples).
		Float64("mse", r.MSE).
		Float64("rmse", r.RMSE).
		Float64("mae", r.MAE).
		Float64("r2", r.R2).
		Float64("mape", r.MAPE)
}

// Evaluate は n×1 の正解と予測からすべての指標を計算する
func Evaluate(yTrue, yPred mat.Matrix) (Report, error) {
	t, p, err := columnVectors("Evaluate", yTrue, yPred)
	if err != nil {
		return Report{}, err
	}

	report := Report{Samples: t.Len()}
	if report.MSE, err = MSE(t, p); err != nil {
		return Report{}, err
	}
	report.RMSE = math.Sqrt(report.MSE)
	if report.MAE, err = MAE(t, p); err != nil {
		return Report{}, err
	}
	if report.R2, err = R2Score(t, p); err != nil {
		return Report{}, err
	}
	if report.MAPE, err = MAPE(t, p); err != nil {
		report.MAPE = math.NaN()
	}
	return report, nil
}

func columnVectors(op string, yTrue, yPred mat.Matrix) (*mat.VecDense, *mat.VecDense, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return nil, nil, errors.NewValueError(op, "empty matrix")
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != 1 || cPred != 1 {
		return nil, nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	return mat.NewVecDense(rTrue, mat.Col(nil, 0, yTrue)), mat.NewVecDense(rPred, mat.Col(nil, 0, yPred)), nil
}
