package preprocessing

import (
	"sort"

	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// WeathersitImputer は欠損した天候カテゴリを学習データの最頻値で補完する
type WeathersitImputer struct {
	model.BaseEstimator

	// Column は補完対象の列
	Column string

	// FillValue は学習時の最頻カテゴリ
	FillValue string
}

// NewWeathersitImputer は新しいWeathersitImputerを作成する
func NewWeathersitImputer(column string) (*WeathersitImputer, error) {
	if column == "" {
		return nil, errors.NewValidationError("column", "must not be empty", column)
	}
	return &WeathersitImputer{Column: column}, nil
}

// Fit は欠損でない値の最頻値を記録する。同数の場合は辞書順で最小のラベルを採用する。
func (w *WeathersitImputer) Fit(df *dataframe.Frame) error {
	col, err := w.column(df, "WeathersitImputer.Fit")
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for i := 0; i < col.Len(); i++ {
		if !col.IsMissing(i) {
			counts[col.Str(i)]++
		}
	}
	if len(counts) == 0 {
		return errors.NewValidationError(w.Column, "no observed category to learn a mode from", col.Len())
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	best := labels[0]
	for _, label := range labels[1:] {
		if counts[label] > counts[best] {
			best = label
		}
	}

	w.FillValue = best
	w.SetFitted()
	return nil
}

// Transform は欠損セルをすべて FillValue で置き換える
func (w *WeathersitImputer) Transform(df *dataframe.Frame) (*dataframe.Frame, error) {
	if !w.IsFitted() {
		return nil, errors.NewNotFittedError("WeathersitImputer", "Transform")
	}

	out := df.Copy()
	col, err := w.column(out, "WeathersitImputer.Transform")
	if err != nil {
		return nil, err
	}
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			col.SetStr(i, w.FillValue)
		}
	}
	return out, nil
}

func (w *WeathersitImputer) column(df *dataframe.Frame, op string) (*dataframe.Column, error) {
	col, err := df.Column(w.Column)
	if err != nil {
		return nil, errors.NewMissingColumnError(op, w.Column)
	}
	if col.Kind() != dataframe.KindString {
		return nil, errors.NewValidationError(w.Column, "categorical column must be text", col.Kind().String())
	}
	return col, nil
}

// GetParams はパラメータを返す
func (w *WeathersitImputer) GetParams() map[string]interface{} {
	return map[string]interface{}{"column": w.Column}
}
