package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/middleware"
)

// Module is a pluggable feature that attaches its endpoints to a Controller (a gin group).
type Module interface {
	Mount(c *Controller)
}

// ModuleFunc lets you define a Module with a simple function.
type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// GroupConfig tells the api package how to mount a group.
type GroupConfig struct {
	Prefix     string
	Auth       bool
	SecretKey  string            // required if Auth == true
	Middleware []gin.HandlerFunc // runs for every route in the group

	// RouteMiddleware runs only for the matching route, keyed by Route(method, path)
	// with path relative to Prefix. Used for per-endpoint rate limits.
	RouteMiddleware map[string][]gin.HandlerFunc
}

// Route builds a RouteMiddleware key.
func Route(method, path string) string {
	return method + " " + path
}

// MountGroup mounts one or more Modules under a prefix with optional auth and
// returns the group so callers can attach plain gin routes.
func MountGroup(parent gin.IRouter, cfg GroupConfig, modules ...Module) *gin.RouterGroup {
	if cfg.Auth && cfg.SecretKey == "" {
		panic("api.MountGroup: Auth enabled for " + cfg.Prefix + " but SecretKey is empty")
	}

	grp := parent.Group(cfg.Prefix, cfg.Middleware...)
	if cfg.Auth {
		grp.Use(middleware.JWTMiddleware(cfg.SecretKey))
	}

	controller := &Controller{Group: grp, routeMiddleware: cfg.RouteMiddleware}
	for _, m := range modules {
		m.Mount(controller)
	}

	for key := range cfg.RouteMiddleware {
		if !controller.mounted[key] {
			log.Warn().Str("route", key).Str("prefix", cfg.Prefix).Msg("route middleware configured for a route no module mounted")
		}
	}
	return grp
}
