package guard

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts guard transitions and failed printer commands.
type Metrics struct {
	pausesTotal   prometheus.Counter
	resumesTotal  prometheus.Counter
	commandErrors *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		pausesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName("sentry", "guard", "pauses_total"),
			Help: "Number of times the print was paused for an outage window",
		}),
		resumesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName("sentry", "guard", "resumes_total"),
			Help: "Number of times the print was resumed after an outage window",
		}),
		commandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prometheus.BuildFQName("sentry", "guard", "command_errors_total"),
			Help: "Number of failed printer commands",
		},
			[]string{"command"},
		),
	}
}

var _ prometheus.Collector = &Metrics{}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.pausesTotal.Describe(ch)
	m.resumesTotal.Describe(ch)
	m.commandErrors.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.pausesTotal.Collect(ch)
	m.resumesTotal.Collect(ch)
	m.commandErrors.Collect(ch)
}

func (m *Metrics) paused() {
	if m != nil {
		m.pausesTotal.Inc()
	}
}

func (m *Metrics) resumed() {
	if m != nil {
		m.resumesTotal.Inc()
	}
}

func (m *Metrics) commandFailed(command string) {
	if m != nil {
		m.commandErrors.WithLabelValues(command).Inc()
	}
}
