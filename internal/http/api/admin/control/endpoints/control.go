package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/aladhan"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/db"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/security"
)

// TimingsSource is where calculated prayer times come from. *aladhan.Client satisfies it.
type TimingsSource interface {
	Timings(ctx context.Context, date time.Time, lat, lon float64) (aladhan.Timings, error)
}

type ControlPanel struct {
	store     db.Store
	now       func() time.Time
	sanitizer *security.TextSanitizer
	timings   TimingsSource
	latitude  float64
	longitude float64
}

type ControlOptions struct {
	Store     db.Store
	Now       func() time.Time // masjid-local clock
	Sanitizer *security.TextSanitizer
	Timings   TimingsSource // nil disables /prayer-times/sync
	Latitude  float64
	Longitude float64
}

func NewControlPanel(opts ControlOptions) *ControlPanel {
	return &ControlPanel{
		store:     opts.Store,
		now:       opts.Now,
		sanitizer: opts.Sanitizer,
		timings:   opts.Timings,
		latitude:  opts.Latitude,
		longitude: opts.Longitude,
	}
}

// PrayerTimesModule mounts the authenticated timetable endpoints.
func PrayerTimesModule(p *ControlPanel) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayer-times", p.getPrayerTimes)
		c.PUT("/prayer-times", p.updatePrayerTimes)
		c.PUT("/prayer-times/ramadan", p.setRamadanMode)
		if p.timings != nil {
			c.POST("/prayer-times/sync", p.syncPrayerTimes)
		}
	})
}

func AnnouncementModule(p *ControlPanel) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/announcements", p.createAnnouncement)
		c.DELETE("/announcements/:id", p.deleteAnnouncement)
	})
}

func QuestionModule(p *ControlPanel) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/questions", p.listPendingQuestions)
		c.PUT("/questions/:id/answer", p.answerQuestion)
		c.DELETE("/questions/:id", p.deleteQuestion)
	})
}

func storeError(err error, what string) *api.APIError {
	if errors.Is(err, db.ErrNotFound) {
		return api.NewError(http.StatusNotFound, what+" not found")
	}
	return api.NewError(http.StatusInternalServerError, err.Error())
}

func deleted(what string) gin.H {
	return gin.H{"success": what + " deleted"}
}
