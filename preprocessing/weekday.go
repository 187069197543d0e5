package preprocessing

import (
	"github.com/YuminosukeSato/bikeshare/core/model"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// UnknownWeekday は日付が欠損・解析不能な行に入れる曜日の既定値
const UnknownWeekday = "Unknown"

// WeekdayImputer は欠損した曜日を日付列から補完する。
// 既に値のある行は上書きしない。
type WeekdayImputer struct {
	model.BaseEstimator

	// DateColumn は日付列の名前
	DateColumn string

	// WeekdayColumn は補完対象の曜日列の名前
	WeekdayColumn string

	// FillValue は日付から曜日を導出できない行に入れる値
	FillValue string
}

// NewWeekdayImputer は新しいWeekdayImputerを作成する
//
// パラメータ:
//   - dateColumn: 日付列 (例: "dteday")
//   - weekdayColumn: 曜日列 (例: "weekday")
//
// 戻り値:
//   - *WeekdayImputer: 新しいインスタンス
//   - error: 列名が空の場合のValidationError
func NewWeekdayImputer(dateColumn, weekdayColumn string) (*WeekdayImputer, error) {
	if dateColumn == "" {
		return nil, errors.NewValidationError("date_column", "must not be empty", dateColumn)
	}
	if weekdayColumn == "" {
		return nil, errors.NewValidationError("weekday_column", "must not be empty", weekdayColumn)
	}
	return &WeekdayImputer{DateColumn: dateColumn, WeekdayColumn: weekdayColumn}, nil
}

// Fit は両方の列が存在することを確認し、既定値を記録する
func (w *WeekdayImputer) Fit(df *dataframe.Frame) error {
	if _, err := w.columns(df, "WeekdayImputer.Fit"); err != nil {
		return err
	}
	w.FillValue = UnknownWeekday
	w.SetFitted()
	return nil
}

// Transform は曜日が欠損している行だけについて日付を解析し、
// 英語の曜日名の先頭3文字（"Mon"）を書き込む。日付も欠損・解析不能なら FillValue を入れる。
func (w *WeekdayImputer) Transform(df *dataframe.Frame) (*dataframe.Frame, error) {
	if !w.IsFitted() {
		return nil, errors.NewNotFittedError("WeekdayImputer", "Transform")
	}

	out := df.Copy()
	cols, err := w.columns(out, "WeekdayImputer.Transform")
	if err != nil {
		return nil, err
	}
	dates, weekdays := cols[0], cols[1]

	for i := 0; i < out.Len(); i++ {
		if !weekdays.IsMissing(i) {
			continue
		}
		weekdays.SetStr(i, w.derive(dates, i))
	}
	return out, nil
}

func (w *WeekdayImputer) derive(dates *dataframe.Column, i int) string {
	if dates.IsMissing(i) {
		return w.FillValue
	}
	t, err := dataframe.ParseDate(dates.Text(i))
	if err != nil {
		return w.FillValue
	}
	return dataframe.WeekdayAbbrev(t)
}

func (w *WeekdayImputer) columns(df *dataframe.Frame, op string) ([2]*dataframe.Column, error) {
	var cols [2]*dataframe.Column
	dates, err := df.Column(w.DateColumn)
	if err != nil {
		return cols, errors.NewMissingColumnError(op, w.DateColumn)
	}
	weekdays, err := df.Column(w.WeekdayColumn)
	if err != nil {
		return cols, errors.NewMissingColumnError(op, w.WeekdayColumn)
	}
	if weekdays.Kind() != dataframe.KindString {
		return cols, errors.NewValidationError(w.WeekdayColumn, "weekday column must be text", weekdays.Kind().String())
	}
	cols[0], cols[1] = dates, weekdays
	return cols, nil
}

// GetParams はパラメータを返す
func (w *WeekdayImputer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"date_column":    w.DateColumn,
		"weekday_column": w.WeekdayColumn,
	}
}
