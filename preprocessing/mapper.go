package preprocessing

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

var _ model.InverseTransformer = (*OrdinalMapper)(nil)

// missingLabel はエラーメッセージ上で欠損値を表すラベル
const missingLabel = "NaN"

// OrdinalMapper はカテゴリ列を明示的な対応表で整数に変換する。
// 対応表にない値（欠損を含む）は LookupError になる。
type OrdinalMapper struct {
	model.BaseEstimator

	// Column は変換対象の列
	Column string

	// Mapping はラベルから整数への対応表
	Mapping map[string]int
}

// NewOrdinalMapper は新しいOrdinalMapperを作成する。
// 列名が空、対応表が空、または対応表が単射でない場合は ValidationError を返す。
func NewOrdinalMapper(column string, mapping map[string]int) (*OrdinalMapper, error) {
	if column == "" {
		return nil, errors.NewValidationError("column", "must not be empty", column)
	}
	if len(mapping) == 0 {
		return nil, errors.NewValidationError("mappings", "must not be empty", column)
	}

	seen := make(map[int]string, len(mapping))
	for _, label := range sortedLabels(mapping) {
		code := mapping[label]
		if prev, dup := seen[code]; dup {
			return nil, errors.NewValidationError("mappings",
				"labels "+prev+" and "+label+" share a code, the table cannot be inverted", code)
		}
		seen[code] = label
	}

	m := make(map[string]int, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	return &OrdinalMapper{Column: column, Mapping: m}, nil
}

// Fit は列の存在だけを確認する
func (m *OrdinalMapper) Fit(df *dataframe.Frame) error {
	if !df.Has(m.Column) {
		return errors.NewMissingColumnError("OrdinalMapper.Fit", m.Column)
	}
	m.SetFitted()
	return nil
}

// Transform は列の各値を対応表の整数に置き換え、int型の列にする。
// 数値列は正規化したテキスト表現（2011）で引く。
func (m *OrdinalMapper) Transform(df *dataframe.Frame) (*dataframe.Frame, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OrdinalMapper", "Transform")
	}

	col, err := df.Column(m.Column)
	if err != nil {
		return nil, errors.NewMissingColumnError("OrdinalMapper.Transform", m.Column)
	}

	codes := make([]int, col.Len())
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			return nil, errors.NewLookupError(m.Column, missingLabel, df.Label(i))
		}
		label := col.Text(i)
		code, ok := m.Mapping[label]
		if !ok {
			return nil, errors.NewLookupError(m.Column, label, df.Label(i))
		}
		codes[i] = code
	}

	out := df.Copy()
	if err := out.SetColumn(dataframe.NewIntColumn(m.Column, codes, nil)); err != nil {
		return nil, err
	}
	return out, nil
}

// InverseTransform は整数を元のラベルに戻し、文字列型の列にする
func (m *OrdinalMapper) InverseTransform(df *dataframe.Frame) (*dataframe.Frame, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OrdinalMapper", "InverseTransform")
	}

	col, err := df.Column(m.Column)
	if err != nil {
		return nil, errors.NewMissingColumnError("OrdinalMapper.InverseTransform", m.Column)
	}
	if !col.Kind().Numeric() {
		return nil, errors.NewValidationError(m.Column, "encoded column must be numeric", col.Kind().String())
	}

	inverse := make(map[int]string, len(m.Mapping))
	for label, code := range m.Mapping {
		inverse[code] = label
	}

	labels := make([]string, col.Len())
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			return nil, errors.NewLookupError(m.Column, missingLabel, df.Label(i))
		}
		v := col.Float(i)
		if v != math.Trunc(v) {
			return nil, errors.NewLookupError(m.Column, col.Text(i), df.Label(i))
		}
		label, ok := inverse[int(v)]
		if !ok {
			return nil, errors.NewLookupError(m.Column, col.Text(i), df.Label(i))
		}
		labels[i] = label
	}

	out := df.Copy()
	if err := out.SetColumn(dataframe.NewStringColumn(m.Column, labels, nil)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetParams はパラメータを返す
func (m *OrdinalMapper) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"column":   m.Column,
		"mappings": len(m.Mapping),
	}
}

func sortedLabels(mapping map[string]int) []string {
	labels := make([]string, 0, len(mapping))
	for label := range mapping {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
