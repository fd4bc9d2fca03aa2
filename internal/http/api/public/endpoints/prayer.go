package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/broadcast"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/db"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api/public/packets"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

const dateLayout = "Monday, January 2, 2006"

// PrayerTimes serves the timetable, the resolved next prayer and the signage views.
type PrayerTimes struct {
	store  db.Store
	now    func() time.Time
	masjid string
	city   string
	hub    *broadcast.Hub
}

// NewPrayerTimes builds the controller. now must return the time in the masjid's
// timezone. hub may be nil, in which case the countdown websocket is not mounted.
func NewPrayerTimes(store db.Store, now func() time.Time, masjid, city string, hub *broadcast.Hub) *PrayerTimes {
	return &PrayerTimes{store: store, now: now, masjid: masjid, city: city, hub: hub}
}

// PrayerModule mounts the public timetable endpoints.
func PrayerModule(p *PrayerTimes) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/prayer-times", p.listPrayerTimes)
		c.PUBLIC_GET("/prayer-times/next", p.nextPrayer)
		if p.hub != nil {
			c.RAW(http.MethodGet, "/countdown/ws", p.hub.ServeWS)
		}
	})
}

// AthanPageModule mounts the HTML signage page. The engine must have the
// athan.html template loaded.
func AthanPageModule(p *PrayerTimes) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.RAW(http.MethodGet, "/athan", p.athanPage)
	})
}

// GET /api/public/prayer-times
func (p *PrayerTimes) listPrayerTimes(ctx *gin.Context) (any, *api.APIError) {
	ramadan := p.store.GetRamadanMode()
	return packets.PrayerTimesResponse{
		Masjid:      p.masjid,
		City:        p.city,
		Date:        p.now().Format(dateLayout),
		RamadanMode: ramadan,
		Prayers:     model.Timetable(p.store.GetTimetable(), ramadan),
	}, nil
}

// GET /api/public/prayer-times/next
func (p *PrayerTimes) nextPrayer(ctx *gin.Context) (any, *api.APIError) {
	return p.resolve(), nil
}

// GET /athan
func (p *PrayerTimes) athanPage(ctx *gin.Context) {
	ramadan := p.store.GetRamadanMode()
	ctx.HTML(http.StatusOK, "athan.html", model.AthanPageData{
		Masjid:      p.masjid,
		City:        p.city,
		Date:        p.now().Format(dateLayout),
		Prayers:     model.Timetable(p.store.GetTimetable(), ramadan),
		Next:        p.resolve(),
		RamadanMode: ramadan,
	})
}

func (p *PrayerTimes) resolve() model.NextPrayer {
	return model.NewNextPrayer(prayer.Resolve(p.store.GetSchedule(), p.now()))
}
