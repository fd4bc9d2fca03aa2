package prayer

import (
	"fmt"
	"strings"
)

// Name identifies an entry of the masjid timetable.
type Name string

const (
	Fajr    Name = "fajr"
	Sunrise Name = "sunrise"
	Dhuhr   Name = "dhuhr"
	Asr     Name = "asr"
	Maghrib Name = "maghrib"
	Isha    Name = "isha"
	Jummah  Name = "jummah"
	Suhoor  Name = "suhoor"
	Iftar   Name = "iftar"
)

// Rotation is the fixed order used to find the next prayer.
var Rotation = [5]Name{Fajr, Dhuhr, Asr, Maghrib, Isha}

// DisplayOrder is the order the full timetable is shown in.
var DisplayOrder = []Name{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha, Jummah, Suhoor, Iftar}

// ParseName accepts any case; it reports false for unknown names.
func ParseName(s string) (Name, bool) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DisplayOrder {
		if n == known {
			return n, true
		}
	}
	return "", false
}

// Title returns the capitalized form, e.g. "Maghrib".
func (n Name) Title() string {
	if n == "" {
		return ""
	}
	return strings.ToUpper(string(n[:1])) + string(n[1:])
}

func (n Name) InRotation() bool {
	for _, r := range Rotation {
		if n == r {
			return true
		}
	}
	return false
}

// RamadanOnly reports whether the entry is shown only while Ramadan mode is on.
func (n Name) RamadanOnly() bool {
	return n == Suhoor || n == Iftar
}

// Entry is one prayer of the rotation: the display string as entered plus its parsed value.
type Entry struct {
	Name    Name
	Display string
	Time    TimeOfDay
}

// Schedule is an immutable snapshot of the five daily prayers in rotation order.
type Schedule struct {
	entries [5]Entry
}

// Entries returns the prayers in rotation order.
func (s Schedule) Entries() [5]Entry {
	return s.entries
}

// Entry returns the rotation entry for name.
func (s Schedule) Entry(name Name) (Entry, bool) {
	for _, e := range s.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Timetable holds the raw display strings for every named entry, rotation or not.
type Timetable map[Name]string

// DefaultTimetable is the timetable a fresh install starts with.
func DefaultTimetable() Timetable {
	return Timetable{
		Fajr:    "05:15 AM",
		Sunrise: "06:30 AM",
		Dhuhr:   "01:15 PM",
		Asr:     "04:30 PM",
		Maghrib: "06:45 PM",
		Isha:    "08:15 PM",
		Jummah:  "01:30 PM",
		Suhoor:  "04:45 AM",
		Iftar:   "06:45 PM",
	}
}

func (t Timetable) Clone() Timetable {
	out := make(Timetable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Validate checks that every present entry parses and that the rotation is complete.
func (t Timetable) Validate() error {
	for name, raw := range t {
		if _, err := ParseTimeOfDay(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	for _, name := range Rotation {
		if _, ok := t[name]; !ok {
			return fmt.Errorf("%s: %w: missing", name, ErrInvalidTimeFormat)
		}
	}
	return nil
}

// Schedule builds the rotation snapshot. Malformed or missing rotation entries are rejected.
func (t Timetable) Schedule() (Schedule, error) {
	var s Schedule
	for i, name := range Rotation {
		raw, ok := t[name]
		if !ok {
			return Schedule{}, fmt.Errorf("%s: %w: missing", name, ErrInvalidTimeFormat)
		}
		tod, err := ParseTimeOfDay(raw)
		if err != nil {
			return Schedule{}, fmt.Errorf("%s: %w", name, err)
		}
		s.entries[i] = Entry{Name: name, Display: raw, Time: tod}
	}
	return s, nil
}
