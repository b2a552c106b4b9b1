// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "courtside"

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ticketsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_created_total",
			Help:      "Ticket requests created per section type",
		},
		[]string{"section_type"},
	)

	ticketTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_status_transitions_total",
			Help:      "Ticket status changes applied by admins",
		},
		[]string{"from", "to"},
	)

	versionConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_version_conflicts_total",
			Help:      "Ticket updates rejected because of a stale version",
		},
	)

	quotedTotal = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ticket_total_price_dollars",
			Help:      "Total price of created tickets",
			Buckets:   prometheus.ExponentialBuckets(50, 2, 10),
		},
		[]string{"section_type"},
	)

	sportsFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sports_fallbacks_total",
			Help:      "Sports responses served from local fallback data",
		},
		[]string{"resource"},
	)
)

// TicketCreated records a new ticket request and its price
func TicketCreated(sectionType string, totalPrice float64) {
	ticketsCreated.WithLabelValues(sectionType).Inc()
	quotedTotal.WithLabelValues(sectionType).Observe(totalPrice)
}

// StatusTransition records an applied status change
func StatusTransition(from, to string) {
	ticketTransitions.WithLabelValues(from, to).Inc()
}

// VersionConflict records a rejected stale update
func VersionConflict() {
	versionConflicts.Inc()
}

// SportsFallback records a response built from local data
func SportsFallback(resource string) {
	sportsFallbacks.WithLabelValues(resource).Inc()
}

// Middleware observes request count and latency per route template
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
