package dataframe

import (
	"strings"
	"time"

	"github.com/YuminosukeSato/bikeshare/pkg/errors"
)

// DateLayouts are the accepted layouts for date columns, tried in order.
var DateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// ParseDate parses s with the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Newf("unrecognised date %q", s)
}

// WeekdayAbbrev returns the three-letter English weekday name of t ("Mon").
func WeekdayAbbrev(t time.Time) string {
	return t.Weekday().String()[:3]
}
