package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Controller is the route group a Module mounts its endpoints on. The plain verbs
// require an authenticated admin; the PUBLIC_ variants do not.
type Controller struct {
	Group *gin.RouterGroup

	routeMiddleware map[string][]gin.HandlerFunc
	mounted         map[string]bool
}

// handle registers h behind any route middleware configured for method and path.
func (c *Controller) handle(method, path string, h gin.HandlerFunc) {
	key := Route(method, path)
	if c.mounted == nil {
		c.mounted = make(map[string]bool)
	}
	c.mounted[key] = true

	chain := make([]gin.HandlerFunc, 0, len(c.routeMiddleware[key])+1)
	chain = append(chain, c.routeMiddleware[key]...)
	c.Group.Handle(method, path, append(chain, h)...)
}

func (c *Controller) GET(path string, h HandlerFuncWithAuth) {
	c.handle(http.MethodGet, path, ResolveEndpointWithAuth(h))
}

func (c *Controller) POST(path string, h HandlerFuncWithAuth) {
	c.handle(http.MethodPost, path, ResolveEndpointWithAuth(h))
}

func (c *Controller) PUT(path string, h HandlerFuncWithAuth) {
	c.handle(http.MethodPut, path, ResolveEndpointWithAuth(h))
}

func (c *Controller) DELETE(path string, h HandlerFuncWithAuth) {
	c.handle(http.MethodDelete, path, ResolveEndpointWithAuth(h))
}

func (c *Controller) PUBLIC_GET(path string, h HandlerFunc) {
	c.handle(http.MethodGet, path, ResolveEndpoint(h))
}

func (c *Controller) PUBLIC_POST(path string, h HandlerFunc) {
	c.handle(http.MethodPost, path, ResolveEndpoint(h))
}

// RAW mounts a plain gin handler, for endpoints that do not answer with JSON
// (HTML pages, websocket upgrades).
func (c *Controller) RAW(method, path string, h gin.HandlerFunc) {
	c.handle(method, path, h)
}
