// Package dataframe provides the in-memory table the feature pipeline works on:
// named, typed columns with a per-cell missing mask and a row index that is
// carried through every transform.
package dataframe

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// Kind is the storage type of a column.
type Kind int

const (
	// KindString holds categorical or date text.
	KindString Kind = iota
	// KindFloat holds continuous numbers.
	KindFloat
	// KindInt holds integer codes produced by ordinal mapping and one-hot encoding.
	KindInt
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	default:
		return "unknown"
	}
}

// Numeric reports whether the kind can be placed in a feature matrix.
func (k Kind) Numeric() bool {
	return k == KindFloat || k == KindInt
}

// Column is a single named column. Strings are kept in str for KindString,
// numbers in num for KindFloat and KindInt. missing[i] marks a missing cell.
type Column struct {
	name    string
	kind    Kind
	str     []string
	num     []float64
	missing []bool
}

// NewStringColumn creates a string column. missing may be nil.
func NewStringColumn(name string, values []string, missing []bool) *Column {
	c := &Column{name: name, kind: KindString, str: append([]string(nil), values...)}
	c.missing = maskOrNew(missing, len(values))
	return c
}

// NewFloatColumn creates a float column. NaN values are also treated as missing.
func NewFloatColumn(name string, values []float64, missing []bool) *Column {
	c := &Column{name: name, kind: KindFloat, num: append([]float64(nil), values...)}
	c.missing = maskOrNew(missing, len(values))
	for i, v := range c.num {
		if math.IsNaN(v) {
			c.missing[i] = true
		}
	}
	return c
}

// NewIntColumn creates an int column. missing may be nil.
func NewIntColumn(name string, values []int, missing []bool) *Column {
	c := &Column{name: name, kind: KindInt, num: make([]float64, len(values))}
	for i, v := range values {
		c.num[i] = float64(v)
	}
	c.missing = maskOrNew(missing, len(values))
	return c
}

// Strings builds a string column where "" marks a missing cell.
func Strings(name string, values ...string) *Column {
	missing := make([]bool, len(values))
	for i, v := range values {
		missing[i] = v == ""
	}
	return NewStringColumn(name, values, missing)
}

// Floats builds a float column where NaN marks a missing cell.
func Floats(name string, values ...float64) *Column {
	return NewFloatColumn(name, values, nil)
}

func maskOrNew(missing []bool, n int) []bool {
	out := make([]bool, n)
	copy(out, missing)
	return out
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the storage type.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.missing) }

// IsMissing reports whether cell i is missing.
func (c *Column) IsMissing(i int) bool { return c.missing[i] }

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.missing {
		if m {
			n++
		}
	}
	return n
}

// Str returns cell i of a string column.
func (c *Column) Str(i int) string { return c.str[i] }

// Float returns cell i of a numeric column.
func (c *Column) Float(i int) float64 { return c.num[i] }

// Int returns cell i of a numeric column truncated to int.
func (c *Column) Int(i int) int { return int(c.num[i]) }

// Text returns the canonical text of cell i regardless of kind: the string
// itself, or the shortest decimal form of a number ("2011", "0.5").
func (c *Column) Text(i int) string {
	if c.kind == KindString {
		return c.str[i]
	}
	return strconv.FormatFloat(c.num[i], 'f', -1, 64)
}

// SetStr sets cell i of a string column and clears its missing flag.
func (c *Column) SetStr(i int, v string) {
	c.str[i] = v
	c.missing[i] = false
}

// SetFloat sets cell i of a numeric column and clears its missing flag.
func (c *Column) SetFloat(i int, v float64) {
	c.num[i] = v
	c.missing[i] = math.IsNaN(v)
}

// Values returns the non-missing numeric values in row order.
func (c *Column) Values() []float64 {
	out := make([]float64, 0, len(c.num))
	for i, v := range c.num {
		if !c.missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// Copy returns a deep copy of the column.
func (c *Column) Copy() *Column {
	return &Column{
		name:    c.name,
		kind:    c.kind,
		str:     append([]string(nil), c.str...),
		num:     append([]float64(nil), c.num...),
		missing: append([]bool(nil), c.missing...),
	}
}

// Frame is a table of equally long columns sharing a row index.
// Column order is kept for output but lookups are by name.
type Frame struct {
	index []int
	order []string
	cols  map[string]*Column
}

// New creates an empty frame with the given row index. A nil index yields
// the default 0..n-1 index once the first column is added.
func New(index []int) *Frame {
	return &Frame{
		index: append([]int(nil), index...),
		cols:  make(map[string]*Column),
	}
}

// FromColumns builds a frame with the default index from columns of equal length.
func FromColumns(cols ...*Column) (*Frame, error) {
	f := New(nil)
	for _, c := range cols {
		if err := f.SetColumn(c); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// MustFromColumns is like FromColumns but panics on error. Intended for tests
// and fixed fixtures.
func MustFromColumns(cols ...*Column) *Frame {
	f, err := FromColumns(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.index) }

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.order) }

// Index returns a copy of the row index.
func (f *Frame) Index() []int { return append([]int(nil), f.index...) }

// Label returns the index label of row i.
func (f *Frame) Label(i int) int { return f.index[i] }

// Names returns the column names in order.
func (f *Frame) Names() []string { return append([]string(nil), f.order...) }

// Has reports whether the frame has the column.
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns the named column or a MissingColumnError. The returned column
// is owned by the frame.
func (f *Frame) Column(name string) (*Column, error) {
	c, ok := f.cols[name]
	if !ok {
		return nil, errors.NewMissingColumnError("Frame.Column", name)
	}
	return c, nil
}

// SetColumn adds the column, or replaces an existing column of the same name
// in place. The column length must match the frame length.
func (f *Frame) SetColumn(c *Column) error {
	if len(f.order) == 0 && len(f.index) == 0 {
		f.index = make([]int, c.Len())
		for i := range f.index {
			f.index[i] = i
		}
	}
	if c.Len() != len(f.index) {
		return errors.NewDimensionError(fmt.Sprintf("Frame.SetColumn(%s)", c.name), len(f.index), c.Len(), 0)
	}
	if _, ok := f.cols[c.name]; !ok {
		f.order = append(f.order, c.name)
	}
	f.cols[c.name] = c
	return nil
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	out := &Frame{
		index: append([]int(nil), f.index...),
		order: append([]string(nil), f.order...),
		cols:  make(map[string]*Column, len(f.cols)),
	}
	for name, c := range f.cols {
		out.cols[name] = c.Copy()
	}
	return out
}

// Drop removes the named columns in place. A name not present is reported as
// a MissingColumnError and nothing is removed.
func (f *Frame) Drop(names ...string) error {
	for _, name := range names {
		if !f.Has(name) {
			return errors.NewMissingColumnError("Frame.Drop", name)
		}
	}
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
		delete(f.cols, name)
	}
	kept := f.order[:0]
	for _, name := range f.order {
		if _, gone := drop[name]; !gone {
			kept = append(kept, name)
		}
	}
	f.order = kept
	return nil
}

// Select returns a new frame holding copies of the named columns in the given
// order (a reindex). Columns not listed are left out; a listed column that is
// absent is a MissingColumnError.
func (f *Frame) Select(names []string) (*Frame, error) {
	out := New(f.index)
	for _, name := range names {
		c, ok := f.cols[name]
		if !ok {
			return nil, errors.NewMissingColumnError("Frame.Select", name)
		}
		out.order = append(out.order, name)
		out.cols[name] = c.Copy()
	}
	return out, nil
}

// Rows returns a new frame with only the given row positions, keeping their
// index labels.
func (f *Frame) Rows(positions []int) *Frame {
	out := New(nil)
	out.index = make([]int, len(positions))
	for k, p := range positions {
		out.index[k] = f.index[p]
	}
	for _, name := range f.order {
		src := f.cols[name]
		c := &Column{
			name:    src.name,
			kind:    src.kind,
			missing: make([]bool, len(positions)),
		}
		if src.kind == KindString {
			c.str = make([]string, len(positions))
		} else {
			c.num = make([]float64, len(positions))
		}
		for k, p := range positions {
			c.missing[k] = src.missing[p]
			if src.kind == KindString {
				c.str[k] = src.str[p]
			} else {
				c.num[k] = src.num[p]
			}
		}
		out.order = append(out.order, name)
		out.cols[name] = c
	}
	return out
}

// ToDense converts the named numeric columns into a rows × len(names) matrix.
// Missing cells become NaN; string columns are rejected.
func (f *Frame) ToDense(names []string) (*mat.Dense, error) {
	if f.Len() == 0 || len(names) == 0 {
		return nil, errors.NewModelError("Frame.ToDense", "empty data", errors.ErrEmptyData)
	}
	out := mat.NewDense(f.Len(), len(names), nil)
	for j, name := range names {
		c, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		if !c.kind.Numeric() {
			return nil, errors.NewValidationError(name, "feature column must be numeric", c.kind.String())
		}
		for i := 0; i < f.Len(); i++ {
			if c.missing[i] {
				out.Set(i, j, math.NaN())
				continue
			}
			out.Set(i, j, c.num[i])
		}
	}
	return out, nil
}
