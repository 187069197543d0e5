// Package model は変換器と回帰モデルに共通のインターフェース、
// 学習状態の管理、gobによる永続化を提供します。
package model

import "github.com/YuminosukeSato/bikeshare/dataframe"

// ParameterGetter is the interface for steps that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the step's hyperparameters.
	GetParams() map[string]interface{}
}

// InverseTransformer is implemented by frame steps that can undo their encoding.
type InverseTransformer interface {
	FrameTransformer
	InverseTransform(df *dataframe.Frame) (*dataframe.Frame, error)
}
