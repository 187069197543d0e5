package processing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/bikeshare/config"
	"github.com/YuminosukeSato/bikeshare/dataframe"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// TableRow marks a ValidationIssue that concerns the whole input rather
// than a single row, such as a missing column.
const TableRow = -1

// ValidationIssue is one problem found in the input.
type ValidationIssue struct {
	Row     int    `json:"row"` // index label, or TableRow
	Column  string `json:"column"`
	Message string `json:"message"`
}

func (v ValidationIssue) String() string {
	if v.Row == TableRow {
		return fmt.Sprintf("column %s: %s", v.Column, v.Message)
	}
	return fmt.Sprintf("row %d, column %s: %s", v.Row, v.Column, v.Message)
}

// ValidationResult holds the rows that passed validation and the issues found.
type ValidationResult struct {
	// Frame holds the prepared rows without errors, with numeric features
	// as float columns and categorical features as text columns. It is nil
	// when a table-level issue makes the input unusable.
	Frame  *dataframe.Frame
	Issues []ValidationIssue
}

// HasTableIssues reports whether the input as a whole was rejected.
func (r *ValidationResult) HasTableIssues() bool {
	for _, issue := range r.Issues {
		if issue.Row == TableRow {
			return true
		}
	}
	return false
}

// Err returns nil when there are no issues and otherwise a ValidationError
// summarising them.
func (r *ValidationResult) Err() error {
	if len(r.Issues) == 0 {
		return nil
	}
	msgs := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		msgs[i] = issue.String()
	}
	return errors.NewValidationError("input", "invalid records", strings.Join(msgs, "; "))
}

// ValidateInputs checks that every raw feature column is present and coerces
// numeric and categorical features to their expected kinds. Every row needs a
// value in each numeric feature and a parsable date, because the year and
// month are derived from it. After PrePipelinePreparation every ordinally
// mapped column must hold a label of its table; only the weather situation
// may be missing, since it is imputed. Rows with a problem are dropped from
// the returned frame and listed as issues, and the frame is reindexed to the
// configured feature order.
func ValidateInputs(df *dataframe.Frame, cfg config.ModelConfig) *ValidationResult {
	result := &ValidationResult{}

	for _, name := range RawInputColumns(cfg) {
		if !df.Has(name) {
			result.Issues = append(result.Issues, ValidationIssue{Row: TableRow, Column: name, Message: "required column is missing"})
		}
	}
	if result.HasTableIssues() {
		return result
	}

	work := df.Copy()
	bad := make(map[int]bool)
	report := func(i int, column, msg string) {
		result.Issues = append(result.Issues, ValidationIssue{Row: work.Label(i), Column: column, Message: msg})
		bad[i] = true
	}

	numeric := make(map[string]bool, len(cfg.NumericalVars))
	for _, name := range cfg.NumericalVars {
		numeric[name] = true
		col, _ := work.Column(name)
		if err := work.SetColumn(toFloatColumn(col, func(i int, msg string) { report(i, name, msg) })); err != nil {
			result.Issues = append(result.Issues, ValidationIssue{Row: TableRow, Column: name, Message: err.Error()})
			return result
		}
	}
	for _, name := range RawInputColumns(cfg) {
		if numeric[name] {
			continue
		}
		col, _ := work.Column(name)
		if col.Kind() != dataframe.KindString {
			errors.Warn(errors.NewDataConversionWarning(col.Kind().String(), "string", "categorical column "+name))
			_ = work.SetColumn(toStringColumn(col))
		}
	}

	dates, _ := work.Column(cfg.DateVar)
	for i := 0; i < dates.Len(); i++ {
		if dates.IsMissing(i) {
			report(i, cfg.DateVar, "missing date")
			continue
		}
		if _, err := dataframe.ParseDate(dates.Str(i)); err != nil {
			report(i, cfg.DateVar, "unparsable date "+strconv.Quote(dates.Str(i)))
		}
	}

	keep := make([]int, 0, work.Len())
	for i := 0; i < work.Len(); i++ {
		if !bad[i] {
			keep = append(keep, i)
		}
	}
	work = work.Rows(keep)

	prepared, err := PrePipelinePreparation(work, cfg)
	if err != nil {
		result.Issues = append(result.Issues, ValidationIssue{Row: TableRow, Column: cfg.DateVar, Message: err.Error()})
		return result
	}
	issues, keep := checkMappings(prepared, cfg)
	result.Issues = append(result.Issues, issues...)
	prepared = prepared.Rows(keep)

	frame, err := prepared.Select(cfg.Features)
	if err != nil {
		result.Issues = append(result.Issues, ValidationIssue{Row: TableRow, Column: "", Message: err.Error()})
		return result
	}
	result.Frame = frame
	return result
}

// checkMappings reports cells the ordinal mappers would reject and returns
// the positions of the rows without such cells.
func checkMappings(df *dataframe.Frame, cfg config.ModelConfig) ([]ValidationIssue, []int) {
	mapped := cfg.MappedColumns()
	cols := make([]*dataframe.Column, len(mapped))
	for k, mc := range mapped {
		cols[k], _ = df.Column(mc.Column)
	}

	var issues []ValidationIssue
	keep := make([]int, 0, df.Len())
	for i := 0; i < df.Len(); i++ {
		ok := true
		for k, mc := range mapped {
			col := cols[k]
			if col == nil {
				continue
			}
			if col.IsMissing(i) {
				if mc.Column == cfg.WeathersitVar {
					continue
				}
				issues = append(issues, ValidationIssue{Row: df.Label(i), Column: mc.Column, Message: "missing value"})
				ok = false
				continue
			}
			if _, found := mc.Mappings[col.Text(i)]; !found {
				issues = append(issues, ValidationIssue{Row: df.Label(i), Column: mc.Column, Message: "no mapping for " + strconv.Quote(col.Text(i))})
				ok = false
			}
		}
		if ok {
			keep = append(keep, i)
		}
	}
	return issues, keep
}

func toFloatColumn(col *dataframe.Column, report func(i int, msg string)) *dataframe.Column {
	values := make([]float64, col.Len())
	for i := range values {
		if col.IsMissing(i) {
			report(i, "missing value")
			values[i] = math.NaN()
			continue
		}
		if col.Kind().Numeric() {
			values[i] = col.Float(i)
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(col.Str(i)), 64)
		if err != nil {
			report(i, "not a number: "+strconv.Quote(col.Str(i)))
			values[i] = math.NaN()
			continue
		}
		values[i] = v
	}
	return dataframe.NewFloatColumn(col.Name(), values, nil)
}

func toStringColumn(col *dataframe.Column) *dataframe.Column {
	values := make([]string, col.Len())
	missing := make([]bool, col.Len())
	for i := range values {
		if col.IsMissing(i) {
			missing[i] = true
			continue
		}
		values[i] = col.Text(i)
	}
	return dataframe.NewStringColumn(col.Name(), values, missing)
}
