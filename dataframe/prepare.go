package dataframe

import (
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// DeriveDateParts returns a copy of f with an int year column and an English
// month-name column derived from dateCol. Rows whose date is missing or
// unparsable get missing year and month cells, which the ordinal mappers
// later reject.
func DeriveDateParts(f *Frame, dateCol, yearCol, monthCol string) (*Frame, error) {
	dates, err := f.Column(dateCol)
	if err != nil {
		return nil, errors.Wrap(err, "DeriveDateParts")
	}
	if dates.Kind() != KindString {
		return nil, errors.NewValidationError(dateCol, "date column must be text", dates.Kind().String())
	}

	n := f.Len()
	years := make([]int, n)
	months := make([]string, n)
	missing := make([]bool, n)
	for i := 0; i < n; i++ {
		if dates.IsMissing(i) {
			missing[i] = true
			continue
		}
		t, err := ParseDate(dates.Str(i))
		if err != nil {
			missing[i] = true
			continue
		}
		years[i] = t.Year()
		months[i] = t.Month().String()
	}

	out := f.Copy()
	if err := out.SetColumn(NewIntColumn(yearCol, years, missing)); err != nil {
		return nil, err
	}
	if err := out.SetColumn(NewStringColumn(monthCol, months, missing)); err != nil {
		return nil, err
	}
	return out, nil
}

// DropIfPresent returns a copy of f without those of names it has.
func DropIfPresent(f *Frame, names ...string) *Frame {
	out := f.Copy()
	present := make([]string, 0, len(names))
	for _, name := range names {
		if out.Has(name) {
			present = append(present, name)
		}
	}
	// every name is present, Drop cannot fail
	_ = out.Drop(present...)
	return out
}
