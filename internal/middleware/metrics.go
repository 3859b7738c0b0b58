package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveWebSockets is the gauge of currently open notification websockets.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "monkmode_active_websockets",
		Help: "Number of currently connected notification websockets",
	})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monkmode_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// WebSocketDrops counts messages dropped instead of delivered, by reason.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monkmode_websocket_drops_total",
		Help: "Total number of websocket messages dropped",
	}, []string{"reason"})

	// FriendshipTransitions counts successful friendship lifecycle transitions.
	FriendshipTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monkmode_friendship_transitions_total",
		Help: "Total number of friendship lifecycle transitions by kind",
	}, []string{"transition"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wires the fiberprometheus collector into the request path.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
