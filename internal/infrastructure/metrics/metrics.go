package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SocketConnects counts accepted gateway connections.
	SocketConnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instare_socket_connects_total",
		Help: "Authenticated websocket connections accepted by the gateway.",
	})

	// SocketRejects counts gateway handshakes refused for auth reasons.
	SocketRejects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instare_socket_rejects_total",
		Help: "Websocket handshakes rejected before a session was bound.",
	})

	// ActiveSessions tracks currently bound live sockets.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "instare_active_sessions",
		Help: "Live socket sessions currently bound in the registry.",
	})

	// FanoutDelivered counts events pushed to a live socket.
	FanoutDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instare_fanout_delivered_total",
		Help: "Events delivered to a live socket.",
	})

	// FanoutDropped counts events dropped because the target had no live socket.
	FanoutDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "instare_fanout_dropped_total",
		Help: "Events dropped because the target user was offline.",
	})
)

// Handler exposes the prometheus registry as a gin handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
