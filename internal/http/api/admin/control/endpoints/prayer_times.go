package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
)

// GET /api/admin/prayer-times
func (p *ControlPanel) getPrayerTimes(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	return packets.PrayerTimesResponse{
		Times:       p.store.GetTimetable(),
		RamadanMode: p.store.GetRamadanMode(),
	}, nil
}

// PUT /api/admin/prayer-times
func (p *ControlPanel) updatePrayerTimes(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	var request packets.UpdatePrayerTimesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}
	if len(request.Times) == 0 {
		return nil, api.NewError(http.StatusBadRequest, "no prayer times given")
	}

	changes := make(prayer.Timetable, len(request.Times))
	for raw, value := range request.Times {
		name, ok := prayer.ParseName(raw)
		if !ok {
			return nil, api.NewError(http.StatusBadRequest, "unknown prayer "+raw)
		}
		changes[name] = value
	}

	updated, err := p.store.UpdateTimetable(changes)
	if errors.Is(err, prayer.ErrInvalidTimeFormat) {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return nil, api.NewError(http.StatusInternalServerError, err.Error())
	}

	return packets.PrayerTimesResponse{Times: updated, RamadanMode: p.store.GetRamadanMode()}, nil
}

// PUT /api/admin/prayer-times/ramadan
func (p *ControlPanel) setRamadanMode(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	var request packets.RamadanModeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	p.store.SetRamadanMode(*request.Enabled)
	return packets.PrayerTimesResponse{
		Times:       p.store.GetTimetable(),
		RamadanMode: *request.Enabled,
	}, nil
}

// POST /api/admin/prayer-times/sync
func (p *ControlPanel) syncPrayerTimes(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	today := p.now()
	timings, err := p.timings.Timings(ctx.Request.Context(), today, p.latitude, p.longitude)
	if err != nil {
		log.Error().Err(err).Msg("prayer time sync failed")
		return nil, api.NewError(http.StatusBadGateway, "could not fetch prayer times")
	}

	changes, err := timings.Timetable()
	if err != nil {
		log.Error().Err(err).Msg("prayer time sync returned unusable timings")
		return nil, api.NewError(http.StatusBadGateway, err.Error())
	}

	updated, err := p.store.UpdateTimetable(changes)
	if err != nil {
		return nil, api.NewError(http.StatusBadGateway, err.Error())
	}

	log.Info().Str("date", today.Format(time.DateOnly)).Msg("prayer times synced")
	return packets.SyncResponse{Date: today.Format(time.DateOnly), Times: updated}, nil
}
