package prayer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat is returned when a time string is not "HH:MM AM|PM".
var ErrInvalidTimeFormat = errors.New("invalid time format")

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// ParseTimeOfDay parses a 12-hour clock string such as "05:15 AM".
// 12 AM maps to hour 0, 12 PM stays at 12, any other PM hour adds 12.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	clock, meridiem, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hh, mm, ok := strings.Cut(clock, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	switch strings.ToUpper(meridiem) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// MustParseTimeOfDay is like ParseTimeOfDay but panics on error.
// Only meant for compiled-in defaults.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String renders the time back in the canonical "HH:MM AM|PM" form.
func (t TimeOfDay) String() string {
	period := "AM"
	hour := t.Hour
	if hour >= 12 {
		period = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour, t.Minute, period)
}

// On combines the calendar date of day (in day's location) with t.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}
