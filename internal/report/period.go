package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "02.01.2006"

var ErrBadPeriod = errors.New("period must look like ДД.ММ.ГГГГ-ДД.ММ.ГГГГ")

// Period is an inclusive range of whole days.
type Period struct {
	From time.Time
	To   time.Time
}

// ParsePeriod accepts "DD.MM.YYYY-DD.MM.YYYY" or a single "DD.MM.YYYY".
// The end day is included up to its last nanosecond in loc.
func ParsePeriod(s string, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Period{}, ErrBadPeriod
	}

	left, right, found := strings.Cut(s, "-")
	if !found {
		right = left
	}
	from, err := time.ParseInLocation(DateLayout, strings.TrimSpace(left), loc)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrBadPeriod, left)
	}
	to, err := time.ParseInLocation(DateLayout, strings.TrimSpace(right), loc)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrBadPeriod, right)
	}
	if to.Before(from) {
		return Period{}, fmt.Errorf("%w: end is before start", ErrBadPeriod)
	}
	return Period{From: from, To: endOfDay(to)}, nil
}

func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func (p Period) String() string {
	return p.From.Format(DateLayout) + "-" + p.To.Format(DateLayout)
}
