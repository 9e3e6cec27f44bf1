package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "answer_search"

var (
	clientRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "client_request_duration_seconds",
			Help:      "Search client call duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"op"},
	)

	clientRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_requests_total",
			Help:      "Search client calls by outcome",
		},
		[]string{"op", "outcome"},
	)

	probeResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probe_results_total",
			Help:      "Connectivity probe results per target",
		},
		[]string{"target", "reachable"},
	)

	targetUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "target_up",
			Help:      "1 when the last probe of the target succeeded",
		},
		[]string{"target"},
	)
)

func init() {
	prometheus.MustRegister(clientRequestDuration)
	prometheus.MustRegister(clientRequestsTotal)
	prometheus.MustRegister(probeResultsTotal)
	prometheus.MustRegister(targetUp)
}

// ClientRecorder feeds search client observations into Prometheus.
type ClientRecorder struct{}

// ObserveRequest records one client call.
func (ClientRecorder) ObserveRequest(op, outcome string, elapsed time.Duration) {
	clientRequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	clientRequestsTotal.WithLabelValues(op, outcome).Inc()
}

// ObserveProbe records a connectivity probe result.
func ObserveProbe(target string, reachable bool) {
	probeResultsTotal.WithLabelValues(target, strconv.FormatBool(reachable)).Inc()
	up := 0.0
	if reachable {
		up = 1
	}
	targetUp.WithLabelValues(target).Set(up)
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
