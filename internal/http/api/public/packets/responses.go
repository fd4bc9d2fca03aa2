package packets

import "github.com/Nixie-Tech-LLC/baitulaman/internal/model"

// returned by GET /api/public/prayer-times
type PrayerTimesResponse struct {
	Masjid      string         `json:"masjid"`
	City        string         `json:"city"`
	Date        string         `json:"date"`
	RamadanMode bool           `json:"ramadan_mode"`
	Prayers     []model.Prayer `json:"prayers"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
