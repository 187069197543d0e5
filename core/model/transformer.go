package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/bikeshare/dataframe"
)

// Transformer は数値行列を変換するインターフェース（スケーラーなど）
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// FrameTransformer はデータフレームを変換する特徴量エンジニアリングのステップ。
// Transform は常に新しいフレームを返し、入力を変更しない。
type FrameTransformer interface {
	// Fit は訓練データから統計情報を学習する
	Fit(df *dataframe.Frame) error

	// Transform は学習済みの統計情報を使ってデータを変換する
	Transform(df *dataframe.Frame) (*dataframe.Frame, error)

	// IsFitted は学習済みかどうかを返す
	IsFitted() bool
}

// FitTransform は t を df で学習し、同じデータを変換する
func FitTransform(t FrameTransformer, df *dataframe.Frame) (*dataframe.Frame, error) {
	if err := t.Fit(df); err != nil {
		return nil, err
	}
	return t.Transform(df)
}
