package dataframe

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// missingTokens are the cell values read as missing, matching the usual
// spreadsheet and dataframe exports of the bike-share data.
var missingTokens = map[string]struct{}{
	"":    {},
	"NA":  {},
	"NaN": {},
	"nan": {},
}

// IsMissingToken reports whether s denotes a missing cell.
func IsMissingToken(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(path string, numeric []string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return ReadCSV(f, numeric)
}

// ReadCSV reads a CSV with a header row. Columns named in numeric are parsed
// as floats; everything else is kept as text. A numeric cell that does not
// parse is a ValidationError naming the column and the row.
func ReadCSV(r io.Reader, numeric []string) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewModelError("ReadCSV", "empty data", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}
	// Excel exports may carry a BOM on the first header.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	isNumeric := make(map[string]bool, len(numeric))
	for _, name := range numeric {
		isNumeric[name] = true
	}

	raw := make([][]string, len(header))
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read csv record")
		}
		for j := range header {
			raw[j] = append(raw[j], rec[j])
		}
	}

	frame := New(nil)
	for j, name := range header {
		var col *Column
		if isNumeric[name] {
			col, err = parseFloatColumn(name, raw[j])
		} else {
			col, err = stringColumn(name, raw[j]), nil
		}
		if err != nil {
			return nil, err
		}
		if err := frame.SetColumn(col); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func stringColumn(name string, cells []string) *Column {
	missing := make([]bool, len(cells))
	values := make([]string, len(cells))
	for i, s := range cells {
		if IsMissingToken(s) {
			missing[i] = true
			continue
		}
		values[i] = strings.TrimSpace(s)
	}
	return NewStringColumn(name, values, missing)
}

func parseFloatColumn(name string, cells []string) (*Column, error) {
	values := make([]float64, len(cells))
	for i, s := range cells {
		if IsMissingToken(s) {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, errors.Wrapf(errors.NewValidationError(name, "not a number", s), "row %d", i)
		}
		values[i] = v
	}
	return NewFloatColumn(name, values, nil), nil
}

// WriteCSV writes the frame with a header row. Missing cells are written empty.
func WriteCSV(w io.Writer, f *Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Names()); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	rec := make([]string, f.Width())
	for i := 0; i < f.Len(); i++ {
		for j, name := range f.order {
			c := f.cols[name]
			if c.missing[i] {
				rec[j] = ""
				continue
			}
			rec[j] = c.Text(i)
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "failed to write csv record")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}
