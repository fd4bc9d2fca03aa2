// Package metrics collects Prometheus metrics for the HTTP service and the countdown broadcaster.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the service exports.
type Collector struct {
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	logins        *prometheus.CounterVec
	chatReplies   *prometheus.CounterVec
	broadcasts    *prometheus.CounterVec
	secondsToNext prometheus.Gauge
	sockets       prometheus.Gauge
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "baitulaman_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "baitulaman_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "baitulaman_admin_logins_total",
			Help: "Admin login attempts by result.",
		}, []string{"result"}),
		chatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "baitulaman_chat_replies_total",
			Help: "Chat replies by matched rule.",
		}, []string{"rule"}),
		broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "baitulaman_broadcasts_total",
			Help: "Next-prayer publishes by sink and result.",
		}, []string{"sink", "result"}),
		secondsToNext: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "baitulaman_next_prayer_seconds",
			Help: "Seconds until the next prayer at the last tick.",
		}),
		sockets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "baitulaman_countdown_websockets",
			Help: "Open countdown websocket connections.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.logins,
		c.chatReplies,
		c.broadcasts,
		c.secondsToNext,
		c.sockets,
	)
	return c
}

func (c *Collector) RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

func (c *Collector) RecordChatReply(rule string) {
	c.chatReplies.WithLabelValues(rule).Inc()
}

func (c *Collector) RecordBroadcast(sink string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	c.broadcasts.WithLabelValues(sink, result).Inc()
}

func (c *Collector) SetSecondsToNext(seconds int64) {
	c.secondsToNext.Set(float64(seconds))
}

func (c *Collector) SocketOpened() { c.sockets.Inc() }
func (c *Collector) SocketClosed() { c.sockets.Dec() }

// Middleware records request count and latency per matched route.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.httpRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
