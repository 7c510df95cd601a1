package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

// instrumentedRoundTripper counts and times outbound HTTP calls, labeled by
// the target API (outage feed, moonraker).
func instrumentedRoundTripper(application string, registry prometheus.Registerer) http.RoundTripper {
	requestCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "sentry",
		Name:        "http_requests_total",
		Help:        "total number of http requests",
		ConstLabels: map[string]string{"application": application},
	},
		[]string{"code", "method"},
	)
	requestDuration := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:   "sentry",
		Name:        "http_request_duration_seconds",
		Help:        "duration of http requests",
		ConstLabels: map[string]string{"application": application},
	},
		[]string{"code", "method"},
	)
	if registry != nil {
		registry.MustRegister(requestCounter, requestDuration)
	}

	return promhttp.InstrumentRoundTripperCounter(requestCounter,
		promhttp.InstrumentRoundTripperDuration(requestDuration,
			http.DefaultTransport,
		),
	)
}
