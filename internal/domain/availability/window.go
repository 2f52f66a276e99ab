package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"partnerportal/internal/domain/shared/timespan"
)

var (
	ErrBadClock = errors.New("availability: clock must be HH:MM")
	ErrBadDate  = errors.New("availability: date must be YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" in 24 hour form.
func ParseClock(s string) (Clock, error) {
	var c Clock
	if _, err := fmt.Sscanf(s, "%2d:%2d", &c.Hour, &c.Minute); err != nil {
		return Clock{}, ErrBadClock
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return Clock{}, ErrBadClock
	}
	return c, nil
}

// MustClock parses a clock string and panics on failure; for fixtures.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) minutes() int { return c.Hour*60 + c.Minute }

// Window keeps a listing's recurring daily blackout interval and its
// explicit blackout dates. Dates are compared in the listing's local
// calendar, never shifted through UTC.
type Window struct {
	DailyStart Clock
	DailyEnd   Clock
	// blackoutDates holds YYYY-MM-DD keys in the listing's local calendar.
	blackoutDates map[string]struct{}
}

// NewWindow builds a window from a daily interval and explicit dates.
func NewWindow(dailyStart, dailyEnd Clock, dates []string) (Window, error) {
	w := Window{
		DailyStart:    dailyStart,
		DailyEnd:      dailyEnd,
		blackoutDates: make(map[string]struct{}, len(dates)),
	}
	for _, d := range dates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return Window{}, fmt.Errorf("%w: %q", ErrBadDate, d)
		}
		w.blackoutDates[d] = struct{}{}
	}
	return w, nil
}

// Clone returns an independent copy of the window.
func (w Window) Clone() Window {
	c := Window{
		DailyStart:    w.DailyStart,
		DailyEnd:      w.DailyEnd,
		blackoutDates: make(map[string]struct{}, len(w.blackoutDates)),
	}
	for d := range w.blackoutDates {
		c.blackoutDates[d] = struct{}{}
	}
	return c
}

// Warnings reports ineffective setups that are legal but probably mistakes.
func (w Window) Warnings() []string {
	if w.DailyStart == w.DailyEnd {
		return []string{"daily blackout start equals end; the window is ineffective"}
	}
	return nil
}

// BlackoutDates returns the explicit dates sorted ascending.
func (w Window) BlackoutDates() []string {
	out := make([]string, 0, len(w.blackoutDates))
	for d := range w.blackoutDates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// AddBlackoutDate records a date; malformed dates are rejected.
func (w *Window) AddBlackoutDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	if w.blackoutDates == nil {
		w.blackoutDates = make(map[string]struct{}, 1)
	}
	w.blackoutDates[date] = struct{}{}
	return nil
}

// RemoveBlackoutDate drops a date if present.
func (w *Window) RemoveBlackoutDate(date string) {
	delete(w.blackoutDates, date)
}

// IsAvailable reports whether the instant can be booked. The instant's local
// date decides blackout-date membership; the daily interval is half-open
// [start, end) and wraps across midnight when end < start.
func (w Window) IsAvailable(at time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	local := at.In(loc)
	if _, blocked := w.blackoutDates[local.Format(dateLayout)]; blocked {
		return false
	}
	return !w.inDailyBlackout(local)
}

func (w Window) inDailyBlackout(local time.Time) bool {
	start := w.DailyStart.minutes()
	end := w.DailyEnd.minutes()
	if start == end {
		return false
	}
	now := local.Hour()*60 + local.Minute()
	if start < end {
		return now >= start && now < end
	}
	// Window spans midnight, e.g. 22:00-06:00.
	return now >= start || now < end
}

// FirstConflict scans the span's local calendar and returns the earliest
// blocked instant, if any. Used by the resolver to reject bookings that
// touch a blackout.
func (w Window) FirstConflict(span timespan.Span, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, day := range span.CalendarDates(loc) {
		if _, blocked := w.blackoutDates[day.Format(dateLayout)]; blocked {
			at := day
			if span.Start.After(at) {
				at = span.Start
			}
			return at, true
		}
		if at, ok := w.dailyConflict(day, span); ok {
			return at, true
		}
	}
	return time.Time{}, false
}

func (w Window) dailyConflict(day time.Time, span timespan.Span) (time.Time, bool) {
	start := w.DailyStart.minutes()
	end := w.DailyEnd.minutes()
	if start == end {
		return time.Time{}, false
	}

	if start < end {
		from := day.Add(time.Duration(start) * time.Minute)
		to := day.Add(time.Duration(end) * time.Minute)
		return overlap(from, to, span)
	}

	// The interval wraps midnight, so the day carries two blocked
	// segments: the tail [00:00, end) spilling over from the previous
	// evening, then [start, 24:00). The next day's tail covers the rest.
	tailEnd := day.Add(time.Duration(end) * time.Minute)
	if at, ok := overlap(day, tailEnd, span); ok {
		return at, ok
	}
	from := day.Add(time.Duration(start) * time.Minute)
	return overlap(from, day.AddDate(0, 0, 1), span)
}

func overlap(from, to time.Time, span timespan.Span) (time.Time, bool) {
	if from.Before(span.End) && span.Start.Before(to) {
		at := from
		if span.Start.After(at) {
			at = span.Start
		}
		return at, true
	}
	return time.Time{}, false
}
