package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heatgate_api_requests_total",
			Help: "Total number of API requests by route and status code",
		},
		[]string{"route", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "heatgate_api_request_duration_seconds",
			Help:    "Time spent serving API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	heatmapPoints = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "heatgate_heatmap_points",
			Help: "Number of grid points in the most recent heatmap, for the configured project or other",
		},
		[]string{"project"},
	)
)

// otherProject labels heatmaps requested for any project but the configured one.
const otherProject = "other"

// projectLabel keeps the project label bounded to the server's configured project.
func projectLabel(configured, requested string) string {
	if requested != "" && requested == configured {
		return requested
	}
	return otherProject
}

// instrument counts and times every call of next under the route label.
func instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		requestCounter.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}
