// Package linear は最小二乗法による線形回帰モデルを提供する
package linear

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/core/parallel"
	"github.com/YuminosukeSato/bikeshare/metrics"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 1000

// defaultRcond は実効ランクを決める特異値の相対閾値
const defaultRcond = 1e-10

// LinearRegression は線形回帰モデル。
// 特異値分解による最小二乗解を求めるため、ワンホット列のような共線な特徴量が
// あっても最小ノルム解が得られる。
type LinearRegression struct {
	model.BaseEstimator

	Weights   []float64 // 重み（係数）
	Intercept float64   // 切片
	NFeatures int       // 特徴量の数
	Rank      int       // 中心化した特徴量行列の実効ランク

	FitIntercept bool    // 切片を推定するかどうか (デフォルト: true)
	Rcond        float64 // 特異値の相対閾値
}

// NewLinearRegression は新しい線形回帰モデルを作成する
//
// 使用例:
//
//	reg := linear.NewLinearRegression()
//	err := reg.Fit(X, y)
//	yPred, err := reg.Predict(X)
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		FitIntercept: true,
		Rcond:        defaultRcond,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる。
// 切片を推定する場合は X と y を中心化してから min ||Xw - y|| を SVD で解き、
// 切片を mean(y) - mean(X)·w とする。
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", X, r, c); err != nil {
		return err
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", y, ry, cy); err != nil {
		return err
	}

	xMean := make([]float64, c)
	var yMean float64
	if lr.FitIntercept {
		for j := 0; j < c; j++ {
			for i := 0; i < r; i++ {
				xMean[j] += X.At(i, j)
			}
			xMean[j] /= float64(r)
		}
		for i := 0; i < r; i++ {
			yMean += y.At(i, 0)
		}
		yMean /= float64(r)
	}

	// 中心化した行列を作る
	A := mat.NewDense(r, c, nil)
	b := mat.NewDense(r, 1, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				A.Set(i, j, X.At(i, j)-xMean[j])
			}
			b.Set(i, 0, y.At(i, 0)-yMean)
		}
	})

	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return errors.NewModelError("LinearRegression.Fit", "SVD did not converge", errors.ErrSingularMatrix)
	}
	rank := svd.Rank(lr.Rcond)
	if rank == 0 {
		return errors.NewModelError("LinearRegression.Fit", "feature matrix has rank zero", errors.ErrSingularMatrix)
	}

	var w mat.Dense
	svd.SolveTo(&w, b, rank)

	lr.NFeatures = c
	lr.Rank = rank
	lr.Weights = mat.Col(nil, 0, &w)
	lr.Intercept = 0
	if lr.FitIntercept {
		lr.Intercept = yMean - mat.Dot(mat.NewVecDense(c, xMean), mat.NewVecDense(c, lr.Weights))
	}

	lr.SetFitted()
	return nil
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	// 予測: y = X * weights + intercept
	var pred mat.VecDense
	pred.MulVec(X, mat.NewVecDense(c, lr.Weights))

	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, pred.AtVec(i)+lr.Intercept)
	}
	return out, nil
}

// GetWeights は学習された重み（係数）のコピーを返す
func (lr *LinearRegression) GetWeights() []float64 {
	return append([]float64(nil), lr.Weights...)
}

// GetIntercept は学習された切片を返す
func (lr *LinearRegression) GetIntercept() float64 {
	return lr.Intercept
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	report, err := metrics.Evaluate(y, yPred)
	if err != nil {
		return 0, err
	}
	return report.R2, nil
}

// GetParams はモデルのパラメータを返す
func (lr *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.FitIntercept,
		"rcond":         lr.Rcond,
	}
}

// String はモデルの文字列表現を返す
func (lr *LinearRegression) String() string {
	if !lr.IsFitted() {
		return fmt.Sprintf("LinearRegression(fit_intercept=%t)", lr.FitIntercept)
	}
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_features=%d, rank=%d)",
		lr.FitIntercept, lr.NFeatures, lr.Rank)
}
