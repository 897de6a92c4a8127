package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Resolutions    *prometheus.CounterVec
	AdapterErrors  *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	ActiveFanout   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Resolutions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "resolver_requests_total",
			Help: "Total number of resolution requests by mode and outcome.",
		}, []string{"mode", "status"}),
		AdapterErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "resolver_adapter_errors_total",
			Help: "Total number of errors received from geocoding provider APIs.",
		}, []string{"provider"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resolver_adapter_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveFanout: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "resolver_active_fanout",
			Help: "Current number of in-flight candidate-mode adapter calls.",
		}),
	}
}
