package packets

import (
	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

type PrayerTimesResponse struct {
	Times       prayer.Timetable `json:"times"`
	RamadanMode bool             `json:"ramadan_mode"`
}

type SyncResponse struct {
	Date  string           `json:"date"`
	Times prayer.Timetable `json:"times"`
}

type PendingQuestionsResponse struct {
	Pending   int              `json:"pending"`
	Questions []model.Question `json:"questions"`
}
