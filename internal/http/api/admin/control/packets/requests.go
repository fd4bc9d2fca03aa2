package packets

// body for PUT /api/admin/prayer-times; keys are prayer names in any case
type UpdatePrayerTimesRequest struct {
	Times map[string]string `json:"times" binding:"required"`
}

type RamadanModeRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type AnswerQuestionRequest struct {
	Answer string `json:"answer" binding:"required"`
}
