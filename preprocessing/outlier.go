package preprocessing

import (
	"math"

	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// DefaultIQRMultiplier は境界を決めるIQRの倍率の既定値
const DefaultIQRMultiplier = 1.5

// Bounds は1列分のクリップ範囲
type Bounds struct {
	Lower float64
	Upper float64
}

// OutlierCapper は数値列をIQRに基づく範囲にクリップする。
//
// IQRは学習時に固定するが、Q1とQ3は変換するデータ上で毎回計算し直す:
//
//	lower = Q1(df) - multiplier * IQR(train)
//	upper = Q3(df) + multiplier * IQR(train)
//
// 欠損セルは欠損のまま残す。
type OutlierCapper struct {
	model.BaseEstimator

	// Columns はクリップ対象の数値列
	Columns []string

	// Multiplier はIQRの倍率
	Multiplier float64

	// IQR は学習時の列ごとの四分位範囲
	IQR map[string]float64
}

// NewOutlierCapper は新しいOutlierCapperを作成する。
// multiplier が負またはNaNの場合は ValidationError を返す。
func NewOutlierCapper(columns []string, multiplier float64) (*OutlierCapper, error) {
	if len(columns) == 0 {
		return nil, errors.NewValidationError("columns", "at least one column is required", columns)
	}
	if math.IsNaN(multiplier) || multiplier < 0 {
		return nil, errors.NewValidationError("multiplier", "must be a non-negative number", multiplier)
	}
	return &OutlierCapper{
		Columns:    append([]string(nil), columns...),
		Multiplier: multiplier,
	}, nil
}

// Fit は列ごとのIQRを欠損でない値から計算する
func (o *OutlierCapper) Fit(df *dataframe.Frame) error {
	iqr := make(map[string]float64, len(o.Columns))
	for _, name := range o.Columns {
		col, err := o.column(df, name, "OutlierCapper.Fit")
		if err != nil {
			return err
		}
		values := col.Values()
		if len(values) == 0 {
			return errors.NewValidationError(name, "no observed values to learn the spread from", col.Len())
		}
		q1, q3 := quartiles(values)
		iqr[name] = q3 - q1
	}

	o.IQR = iqr
	o.SetFitted()
	return nil
}

// Bounds は df 上で計算した列ごとのクリップ範囲を返す。
// 欠損しかない列は結果に含まれない。
func (o *OutlierCapper) Bounds(df *dataframe.Frame) (map[string]Bounds, error) {
	if !o.IsFitted() {
		return nil, errors.NewNotFittedError("OutlierCapper", "Bounds")
	}

	out := make(map[string]Bounds, len(o.Columns))
	for _, name := range o.Columns {
		col, err := o.column(df, name, "OutlierCapper.Bounds")
		if err != nil {
			return nil, err
		}
		values := col.Values()
		if len(values) == 0 {
			continue
		}
		q1, q3 := quartiles(values)
		spread := o.Multiplier * o.IQR[name]
		out[name] = Bounds{Lower: q1 - spread, Upper: q3 + spread}
	}
	return out, nil
}

// Transform は欠損でない各値を [lower, upper] にクリップした新しいフレームを返す
func (o *OutlierCapper) Transform(df *dataframe.Frame) (*dataframe.Frame, error) {
	if !o.IsFitted() {
		return nil, errors.NewNotFittedError("OutlierCapper", "Transform")
	}

	bounds, err := o.Bounds(df)
	if err != nil {
		return nil, err
	}

	// 境界は小数になりうるので、int列もfloat列として書き戻す
	out := df.Copy()
	for name, b := range bounds {
		col, _ := out.Column(name)
		values := make([]float64, col.Len())
		missing := make([]bool, col.Len())
		for i := range values {
			if col.IsMissing(i) {
				values[i] = math.NaN()
				missing[i] = true
				continue
			}
			values[i] = errors.ClipValue(col.Float(i), b.Lower, b.Upper)
		}
		if err := out.SetColumn(dataframe.NewFloatColumn(name, values, missing)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (o *OutlierCapper) column(df *dataframe.Frame, name, op string) (*dataframe.Column, error) {
	col, err := df.Column(name)
	if err != nil {
		return nil, errors.NewMissingColumnError(op, name)
	}
	if !col.Kind().Numeric() {
		return nil, errors.NewValidationError(name, "outlier capping requires a numeric column", col.Kind().String())
	}
	return col, nil
}

// GetParams はパラメータを返す
func (o *OutlierCapper) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"columns":    o.Columns,
		"multiplier": o.Multiplier,
	}
}
