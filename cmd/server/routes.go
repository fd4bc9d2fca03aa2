package main

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/broadcast"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/chat"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/config"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/db"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/baitulaman/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/Nixie-Tech-LLC/baitulaman/internal/http/api/admin/control/endpoints"
	publicapi "github.com/Nixie-Tech-LLC/baitulaman/internal/http/api/public/endpoints"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/metrics"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/security"
)

type routerDeps struct {
	cfg       *config.Config
	store     db.Store
	metrics   *metrics.Collector
	registry  *prometheus.Registry
	hub       *broadcast.Hub
	timings   adminapi.TimingsSource
	templates *template.Template
	limits    *limits
}

// newRouter sets up all application routes
func newRouter(d routerDeps) *gin.Engine {
	if d.cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), d.metrics.Middleware())
	r.SetHTMLTemplate(d.templates)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: false,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler(d.registry)))

	sanitizer := security.NewTextSanitizer()
	prayers := publicapi.NewPrayerTimes(d.store, d.cfg.Now, d.cfg.MasjidName, d.cfg.City, d.hub)
	accounts := authapi.NewAccountManager(d.cfg.JWTSecret, d.cfg.AdminPasswordHash, d.cfg.JWTTTL, d.metrics)
	panel := adminapi.NewControlPanel(adminapi.ControlOptions{
		Store:     d.store,
		Now:       d.cfg.Now,
		Sanitizer: sanitizer,
		Timings:   d.timings,
		Latitude:  d.cfg.Latitude,
		Longitude: d.cfg.Longitude,
	})
	responder := chat.NewResponder(chat.DefaultRules(d.cfg.City))

	api.MountGroup(r, api.GroupConfig{}, publicapi.AthanPageModule(prayers))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/public",
		RouteMiddleware: map[string][]gin.HandlerFunc{
			api.Route(http.MethodPost, "/questions"): {d.limits.question.Middleware()},
			api.Route(http.MethodPost, "/chat"):      {d.limits.chat.Middleware()},
		},
	},
		publicapi.PrayerModule(prayers),
		publicapi.CommunityModule(publicapi.NewCommunity(d.store, sanitizer)),
		publicapi.ChatModule(publicapi.NewChat(d.store, responder, sanitizer, d.metrics)),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
		RouteMiddleware: map[string][]gin.HandlerFunc{
			api.Route(http.MethodPost, "/auth/login"): {d.limits.login.Middleware()},
		},
	},
		authapi.AuthPublicModule(accounts),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: d.cfg.JWTSecret,
	},
		authapi.AuthSessionModule(accounts),
		adminapi.PrayerTimesModule(panel),
		adminapi.AnnouncementModule(panel),
		adminapi.QuestionModule(panel),
	)

	return r
}
