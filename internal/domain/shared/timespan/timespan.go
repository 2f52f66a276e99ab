package timespan

import (
	"errors"
	"time"
)

var (
	ErrEmptySpan = errors.New("timespan: end must be after start")
	ErrZeroTime  = errors.New("timespan: start and end must be set")
)

// Span is a half-open interval [Start, End) of wall-clock time.
type Span struct {
	Start time.Time
	End   time.Time
}

// New validates and builds a span.
func New(start, end time.Time) (Span, error) {
	if start.IsZero() || end.IsZero() {
		return Span{}, ErrZeroTime
	}
	if !end.After(start) {
		return Span{}, ErrEmptySpan
	}
	return Span{Start: start, End: end}, nil
}

// Duration returns the span length.
func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// BilledHours returns the span length in whole hours, rounding any started
// hour up. A 90 minute rental bills as 2 hours.
func (s Span) BilledHours() int64 {
	d := s.Duration()
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}

// CalendarDates returns every local calendar date touched by the span, in
// order, as midnight-truncated times in loc. The end instant itself is
// excluded unless the span extends past its midnight.
func (s Span) CalendarDates(loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.UTC
	}
	start := s.Start.In(loc)
	end := s.End.In(loc)

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	var dates []time.Time
	for day.Before(end) {
		dates = append(dates, day)
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

// Contains reports whether t falls inside the half-open interval.
func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}
