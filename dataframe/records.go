package dataframe

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// FromRecords builds a frame from decoded JSON-like records, one map per row.
// Columns named in numeric become float columns; JSON numbers and numeric
// strings are accepted there. Other columns are text, with numbers rendered in
// their canonical form. nil and missing keys are missing cells. Column order
// is the sorted union of keys unless order lists them.
func FromRecords(records []map[string]interface{}, numeric []string, order ...string) (*Frame, error) {
	if len(records) == 0 {
		return nil, errors.NewModelError("FromRecords", "empty data", errors.ErrEmptyData)
	}

	isNumeric := make(map[string]bool, len(numeric))
	for _, name := range numeric {
		isNumeric[name] = true
	}

	names := recordKeys(records, order)
	frame := New(nil)
	for _, name := range names {
		var col *Column
		if isNumeric[name] {
			values := make([]float64, len(records))
			for i, rec := range records {
				v, err := toFloat(rec[name])
				if err != nil {
					return nil, errors.Wrapf(errors.NewValidationError(name, "not a number", rec[name]), "row %d", i)
				}
				values[i] = v
			}
			col = NewFloatColumn(name, values, nil)
		} else {
			values := make([]string, len(records))
			missing := make([]bool, len(records))
			for i, rec := range records {
				s, ok := toText(rec[name])
				values[i], missing[i] = s, !ok
			}
			col = NewStringColumn(name, values, missing)
		}
		if err := frame.SetColumn(col); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func recordKeys(records []map[string]interface{}, order []string) []string {
	seen := make(map[string]bool)
	names := append([]string(nil), order...)
	for _, name := range order {
		seen[name] = true
	}
	var extra []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case nil:
		return math.NaN(), nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		if IsMissingToken(x) {
			return math.NaN(), nil
		}
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func toText(v interface{}) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		if IsMissingToken(x) {
			return "", false
		}
		return x, true
	case float64:
		if math.IsNaN(x) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	default:
		return fmt.Sprint(x), true
	}
}

// FromColumnMap builds a frame from column-oriented input such as
// {"temp": [6.1, 7.2], "season": ["winter", "fall"]}. All columns must have
// the same length. Cells are interpreted as in FromRecords.
func FromColumnMap(columns map[string][]interface{}, numeric []string, order ...string) (*Frame, error) {
	n := -1
	for name, values := range columns {
		if n == -1 {
			n = len(values)
			continue
		}
		if len(values) != n {
			return nil, errors.NewDimensionError(fmt.Sprintf("FromColumnMap(%s)", name), n, len(values), 0)
		}
	}
	if n <= 0 {
		return nil, errors.NewModelError("FromColumnMap", "empty data", errors.ErrEmptyData)
	}

	records := make([]map[string]interface{}, n)
	for i := range records {
		records[i] = make(map[string]interface{}, len(columns))
	}
	for name, values := range columns {
		for i, v := range values {
			records[i][name] = v
		}
	}
	return FromRecords(records, numeric, order...)
}
