package preprocessing

import (
	"slices"

	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// ColumnDropper は以降の処理で不要になった列を削除する
type ColumnDropper struct {
	model.BaseEstimator

	// Columns は削除する列
	Columns []string

	// Optional は存在しなくてもエラーにしない列
	Optional []string
}

// NewColumnDropper は新しいColumnDropperを作成する
func NewColumnDropper(columns []string, optional ...string) *ColumnDropper {
	return &ColumnDropper{
		Columns:  append([]string(nil), columns...),
		Optional: append([]string(nil), optional...),
	}
}

// Fit は学習済みとしてマークするだけ
func (d *ColumnDropper) Fit(_ *dataframe.Frame) error {
	d.SetFitted()
	return nil
}

// Transform は設定された列を除いた新しいフレームを返す。
// Optional にない列が存在しなければ MissingColumnError を返す。
func (d *ColumnDropper) Transform(df *dataframe.Frame) (*dataframe.Frame, error) {
	if !d.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnDropper", "Transform")
	}

	optional := make(map[string]bool, len(d.Optional))
	for _, name := range d.Optional {
		optional[name] = true
	}

	drop := make([]string, 0, len(d.Columns)+len(d.Optional))
	for _, name := range d.Columns {
		if df.Has(name) {
			drop = append(drop, name)
		} else if !optional[name] {
			return nil, errors.NewMissingColumnError("ColumnDropper.Transform", name)
		}
	}
	for _, name := range d.Optional {
		if df.Has(name) && !slices.Contains(drop, name) {
			drop = append(drop, name)
		}
	}

	out := df.Copy()
	if err := out.Drop(drop...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetParams はパラメータを返す
func (d *ColumnDropper) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"columns":  d.Columns,
		"optional": d.Optional,
	}
}
