package model

import (
	"time"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

type Prayer struct {
	Name        string `json:"name"`         // "Fajr", "Dhuhr", ...
	Key         string `json:"key"`          // "fajr"
	Time        string `json:"time"`         // "05:15 AM"
	DisplayOnly bool   `json:"display_only"` // sunrise, jummah, suhoor, iftar
}

type AthanPageData struct {
	Masjid      string
	City        string
	Date        string // "Friday, March 1, 2024"
	Prayers     []Prayer
	Next        NextPrayer
	RamadanMode bool
}

// NextPrayer is the display form of a resolved next prayer.
type NextPrayer struct {
	Name             string    `json:"name"`
	Time             string    `json:"time"`
	At               time.Time `json:"at"`
	SecondsRemaining int64     `json:"seconds_remaining"`
	Remaining        string    `json:"remaining"`
	TimeUp           bool      `json:"time_up"`
}

func NewNextPrayer(n prayer.Next) NextPrayer {
	return NextPrayer{
		Name:             n.Name.Title(),
		Time:             n.Display,
		At:               n.At,
		SecondsRemaining: n.SecondsRemaining,
		Remaining:        n.Remaining(),
		TimeUp:           n.TimeUp,
	}
}

// Timetable lists the entries in display order. Suhoor and Iftar are left out
// unless ramadan is set.
func Timetable(tt prayer.Timetable, ramadan bool) []Prayer {
	out := make([]Prayer, 0, len(prayer.DisplayOrder))
	for _, name := range prayer.DisplayOrder {
		raw, ok := tt[name]
		if !ok {
			continue
		}
		if name.RamadanOnly() && !ramadan {
			continue
		}
		out = append(out, Prayer{
			Name:        name.Title(),
			Key:         string(name),
			Time:        raw,
			DisplayOnly: !name.InRotation(),
		})
	}
	return out
}
