package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
)

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMountGroup_RouteMiddlewareOnlyWrapsItsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	blocked := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }

	r := gin.New()
	MountGroup(r, GroupConfig{
		Prefix:          "/api/public",
		RouteMiddleware: map[string][]gin.HandlerFunc{Route(http.MethodPost, "/chat"): {blocked}},
	}, ModuleFunc(func(c *Controller) {
		c.PUBLIC_GET("/chat", func(*gin.Context) (any, *APIError) { return gin.H{"ok": true}, nil })
		c.PUBLIC_POST("/chat", func(*gin.Context) (any, *APIError) { return gin.H{"ok": true}, nil })
		c.PUBLIC_POST("/questions", func(*gin.Context) (any, *APIError) { return Created(gin.H{}), nil })
	}))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/public/chat", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/api/public/chat", "").Code)
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/public/questions", "").Code)
}

func TestMountGroup_AuthGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "mount-secret"

	r := gin.New()
	MountGroup(r, GroupConfig{Prefix: "/api/admin", Auth: true, SecretKey: secret},
		ModuleFunc(func(c *Controller) {
			c.GET("/whoami", func(_ *gin.Context, admin *model.Admin) (any, *APIError) {
				return gin.H{"sub": admin.Subject}, nil
			})
			c.DELETE("/things/:id", func(ctx *gin.Context, _ *model.Admin) (any, *APIError) {
				return nil, NewError(http.StatusNotFound, "thing "+ctx.Param("id")+" not found")
			})
		}))

	token, _, err := middleware.GenerateJWT(secret, time.Minute)
	assert.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/admin/whoami", "").Code)
	w := serve(r, http.MethodGet, "/api/admin/whoami", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sub":"admin"}`, w.Body.String())

	w = serve(r, http.MethodDelete, "/api/admin/things/7", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"thing 7 not found"}`, w.Body.String())
}

func TestMountGroup_AuthWithoutSecretPanics(t *testing.T) {
	assert.Panics(t, func() {
		MountGroup(gin.New(), GroupConfig{Prefix: "/api/admin", Auth: true})
	})
}
