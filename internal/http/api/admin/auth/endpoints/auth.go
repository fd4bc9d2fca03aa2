package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api/admin/auth/packets"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/metrics"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
)

type AccountManager struct {
	jwtSecret    string
	passwordHash string
	ttl          time.Duration
	metrics      *metrics.Collector
}

func NewAccountManager(secret, passwordHash string, ttl time.Duration, m *metrics.Collector) *AccountManager {
	return &AccountManager{jwtSecret: secret, passwordHash: passwordHash, ttl: ttl, metrics: m}
}

// AuthPublicModule mounts the login endpoint.
func AuthPublicModule(a *AccountManager) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", a.login)
	})
}

// AuthSessionModule mounts session endpoints (JWT required)
func AuthSessionModule(a *AccountManager) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/session", a.session)
	})
}

// POST /api/admin/auth/login
func (a *AccountManager) login(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	ok := middleware.CheckPassword(a.passwordHash, request.Password)
	if a.metrics != nil {
		a.metrics.RecordLogin(ok)
	}
	if !ok {
		log.Warn().Str("client_ip", ctx.ClientIP()).Msg("admin login failed")
		return nil, api.NewError(http.StatusUnauthorized, middleware.ErrInvalidCredentials.Error())
	}

	token, expires, err := middleware.GenerateJWT(a.jwtSecret, a.ttl)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign admin token")
		return nil, api.NewError(http.StatusInternalServerError, "could not generate token")
	}

	log.Info().Str("client_ip", ctx.ClientIP()).Msg("admin logged in")
	return packets.LoginResponse{Token: token, ExpiresAt: expires}, nil
}

// GET /api/admin/auth/session
func (a *AccountManager) session(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	return packets.SessionResponse{
		Subject:   admin.Subject,
		IssuedAt:  admin.IssuedAt,
		ExpiresAt: admin.ExpiresAt,
	}, nil
}
