package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline and transport instrumentation. Everything registers on the
// default registry at init so handlers and services just increment.
var (
	UsageRecordsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fatigue",
		Name:      "usage_records_ingested_total",
		Help:      "Raw usage records accepted for storage, by device class.",
	}, []string{"device_class"})

	RecordsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fatigue",
		Name:      "records_dropped_total",
		Help:      "Records dropped during normalization for unparsable timestamps.",
	})

	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fatigue",
		Name:      "predictions_total",
		Help:      "Completed predictions, by resulting fatigue level.",
	}, []string{"fatigue_level"})

	PredictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fatigue",
		Name:      "prediction_duration_seconds",
		Help:      "End-to-end prediction latency including storage reads.",
		Buckets:   prometheus.DefBuckets,
	})

	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fatigue",
		Name:      "feature_extraction_duration_seconds",
		Help:      "Latency of normalization plus feature extraction.",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fatigue",
		Name:      "events_published_total",
		Help:      "Bus events observed by the event logger.",
	}, []string{"type", "severity"})

	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fatigue",
		Name:      "websocket_connections",
		Help:      "Currently connected websocket clients.",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fatigue",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
