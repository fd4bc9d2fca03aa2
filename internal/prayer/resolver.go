package prayer

import (
	"fmt"
	"time"
)

// TimeUpText is shown once the countdown reaches its boundary.
const TimeUpText = "Time's up!"

// Next is the upcoming prayer relative to some instant.
type Next struct {
	Name             Name
	Display          string // time string as entered, unmodified
	Time             TimeOfDay
	At               time.Time
	SecondsRemaining int64
	TimeUp           bool
}

// Resolve returns the first prayer of the rotation strictly after now on now's calendar day,
// or Fajr of the following day once Isha has been reached.
func Resolve(s Schedule, now time.Time) Next {
	for _, e := range s.entries {
		at := e.Time.On(now)
		if at.After(now) {
			return newNext(e, at, now)
		}
	}

	fajr := s.entries[0]
	y, m, d := now.Date()
	tomorrow := time.Date(y, m, d+1, fajr.Time.Hour, fajr.Time.Minute, 0, 0, now.Location())
	return newNext(fajr, tomorrow, now)
}

func newNext(e Entry, at, now time.Time) Next {
	n := Next{
		Name:    e.Name,
		Display: e.Display,
		Time:    e.Time,
		At:      at,
	}
	diff := at.Sub(now)
	if diff <= 0 {
		n.TimeUp = true
		return n
	}
	n.SecondsRemaining = int64(diff / time.Second)
	return n
}

// Remaining formats the countdown as "{h}h {m}m {s}s", or TimeUpText.
func (n Next) Remaining() string {
	if n.TimeUp {
		return TimeUpText
	}
	return FormatRemaining(n.SecondsRemaining)
}

// FormatRemaining formats whole seconds as "{h}h {m}m {s}s".
func FormatRemaining(seconds int64) string {
	if seconds <= 0 {
		return TimeUpText
	}
	return fmt.Sprintf("%dh %dm %ds", seconds/3600, (seconds%3600)/60, seconds%60)
}
