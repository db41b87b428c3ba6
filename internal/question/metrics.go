package question

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the Prometheus collectors for ingest and delivery.
type Metrics struct {
	Uploads       *prometheus.CounterVec
	Ingested      prometheus.Counter
	CacheRequests *prometheus.CounterVec
	WSConnections prometheus.Gauge
}

// NewMetrics registers collectors on reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_uploads_total",
			Help: "Question file uploads by result.",
		}, []string{"result"}),
		Ingested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_questions_ingested_total",
			Help: "Questions stored from uploaded files.",
		}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_cache_requests_total",
			Help: "Quiz payload cache lookups by result.",
		}, []string{"result"}),
		WSConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quiz_ws_connections",
			Help: "Open websocket connections receiving quiz updates.",
		}),
	}
	reg.MustRegister(m.Uploads, m.Ingested, m.CacheRequests, m.WSConnections)
	return m
}

func (m *Metrics) upload(result string) {
	if m != nil {
		m.Uploads.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) ingested(n int) {
	if m != nil {
		m.Ingested.Add(float64(n))
	}
}

func (m *Metrics) cache(result string) {
	if m != nil {
		m.CacheRequests.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) connOpened() {
	if m != nil {
		m.WSConnections.Inc()
	}
}

func (m *Metrics) connClosed() {
	if m != nil {
		m.WSConnections.Dec()
	}
}
