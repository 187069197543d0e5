package preprocessing

import (
	"sort"

	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// UnknownPolicy は学習時に存在しなかったカテゴリの扱い
type UnknownPolicy string

const (
	// UnknownZeroFill はその行のワンホット列をすべて0にし、警告を出す
	UnknownZeroFill UnknownPolicy = "zero_fill"
	// UnknownError は UnknownCategoryError で失敗する
	UnknownError UnknownPolicy = "error"
)

// MissingCategory は学習データの欠損を1つのカテゴリとして扱うときの名前
const MissingCategory = "nan"

// ParseUnknownPolicy は設定値を UnknownPolicy に変換する。空文字は zero_fill。
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch UnknownPolicy(s) {
	case "", UnknownZeroFill:
		return UnknownZeroFill, nil
	case UnknownError:
		return UnknownError, nil
	default:
		return "", errors.NewValidationError("unknown_category_policy", "must be zero_fill or error", s)
	}
}

// WeekdayOneHotEncoder はカテゴリ列をカテゴリごとの0/1列に展開する。
// 元の列は残す。
type WeekdayOneHotEncoder struct {
	model.BaseEstimator

	// Column は展開する列
	Column string

	// Policy は未知カテゴリの扱い
	Policy UnknownPolicy

	// Categories は学習したカテゴリ（ソート済み、欠損があれば末尾に "nan"）
	Categories []string
}

// NewWeekdayOneHotEncoder は新しいWeekdayOneHotEncoderを作成する
func NewWeekdayOneHotEncoder(column string, policy UnknownPolicy) (*WeekdayOneHotEncoder, error) {
	if column == "" {
		return nil, errors.NewValidationError("column", "must not be empty", column)
	}
	p, err := ParseUnknownPolicy(string(policy))
	if err != nil {
		return nil, err
	}
	return &WeekdayOneHotEncoder{Column: column, Policy: p}, nil
}

// Fit は列のカテゴリ一覧を学習する
func (e *WeekdayOneHotEncoder) Fit(df *dataframe.Frame) error {
	col, err := df.Column(e.Column)
	if err != nil {
		return errors.NewMissingColumnError("WeekdayOneHotEncoder.Fit", e.Column)
	}

	seen := make(map[string]struct{})
	hasMissing := false
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			hasMissing = true
			continue
		}
		seen[col.Text(i)] = struct{}{}
	}

	categories := make([]string, 0, len(seen)+1)
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	// 欠損と文字列 "nan" は同じカテゴリになる
	if _, dup := seen[MissingCategory]; hasMissing && !dup {
		categories = append(categories, MissingCategory)
	}
	if len(categories) == 0 {
		return errors.NewModelError("WeekdayOneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	e.Categories = categories
	e.SetFitted()
	return nil
}

// FeatureNames は追加される列名を Categories の順に返す（"weekday_Mon" など）
func (e *WeekdayOneHotEncoder) FeatureNames() []string {
	names := make([]string, len(e.Categories))
	for k, c := range e.Categories {
		names[k] = e.Column + "_" + c
	}
	return names
}

// Transform はカテゴリごとにint列を追加した新しいフレームを返す
func (e *WeekdayOneHotEncoder) Transform(df *dataframe.Frame) (*dataframe.Frame, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("WeekdayOneHotEncoder", "Transform")
	}

	col, err := df.Column(e.Column)
	if err != nil {
		return nil, errors.NewMissingColumnError("WeekdayOneHotEncoder.Transform", e.Column)
	}

	position := make(map[string]int, len(e.Categories))
	for k, c := range e.Categories {
		position[c] = k
	}

	n := col.Len()
	indicators := make([][]int, len(e.Categories))
	for k := range indicators {
		indicators[k] = make([]int, n)
	}

	unknown := make(map[string]struct{})
	unknownRows := 0
	for i := 0; i < n; i++ {
		category := MissingCategory
		if !col.IsMissing(i) {
			category = col.Text(i)
		}
		k, ok := position[category]
		if !ok {
			if e.Policy == UnknownError {
				return nil, errors.NewUnknownCategoryError(e.Column, category, df.Label(i))
			}
			unknown[category] = struct{}{}
			unknownRows++
			continue
		}
		indicators[k][i] = 1
	}

	if unknownRows > 0 {
		cats := make([]string, 0, len(unknown))
		for c := range unknown {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		errors.Warn(errors.NewUnknownCategoryWarning(e.Column, cats, unknownRows))
	}

	out := df.Copy()
	for k, name := range e.FeatureNames() {
		if err := out.SetColumn(dataframe.NewIntColumn(name, indicators[k], nil)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetParams はパラメータを返す
func (e *WeekdayOneHotEncoder) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"column": e.Column,
		"policy": string(e.Policy),
	}
}
