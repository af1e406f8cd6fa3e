package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "videotube"

var (
	// Labels: method, route, status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total http requests",
	}, []string{"method", "route", "status"})

	// Labels: method, route
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Http request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Labels: target (video, comment, tweet, channel), state (on, off)
	TogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toggles_total",
		Help:      "Like and subscription toggles",
	}, []string{"target", "state"})

	// Labels: folder, result (ok, error)
	MediaUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "media",
		Name:      "uploads_total",
		Help:      "Media host uploads",
	}, []string{"folder", "result"})

	// Labels: table
	ReconciledRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconcile",
		Name:      "rows_total",
		Help:      "Rows removed by the comment cascade",
	}, []string{"table"})
)

// ToggleState on表示切换后处于已点赞/已订阅状态
func ToggleState(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
