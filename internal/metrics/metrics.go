package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"support-widget/internal/domain"
)

const namespace = "support_widget"

// WidgetMetrics exposes counters and histograms for chat, lead and HTTP
// traffic. A nil *WidgetMetrics is a valid no-op.
type WidgetMetrics struct {
	replies            *prometheus.CounterVec
	generationLatency  prometheus.Histogram
	generationFailures prometheus.Counter
	leads              *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpLatency        *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *WidgetMetrics {
	m := &WidgetMetrics{
		replies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "replies_total",
			Help:      "Chat replies by kind",
		}, []string{"kind"}),
		generationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "generation_seconds",
			Help:      "Latency of text generation calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		}),
		generationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "generation_failures_total",
			Help:      "Generation calls that failed, timed out or returned nothing",
		}),
		leads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leads",
			Name:      "submitted_total",
			Help:      "Leads stored, by whether the business was emailed",
		}, []string{"emailed"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.replies, m.generationLatency, m.generationFailures, m.leads, m.httpRequests, m.httpLatency)
	return m
}

func (m *WidgetMetrics) ObserveReply(kind domain.ReplyKind) {
	if m == nil {
		return
	}
	m.replies.WithLabelValues(kind.String()).Inc()
}

func (m *WidgetMetrics) ObserveGeneration(elapsed time.Duration, ok bool) {
	if m == nil {
		return
	}
	m.generationLatency.Observe(elapsed.Seconds())
	if !ok {
		m.generationFailures.Inc()
	}
}

func (m *WidgetMetrics) ObserveLead(emailed bool) {
	if m == nil {
		return
	}
	m.leads.WithLabelValues(strconv.FormatBool(emailed)).Inc()
}

func (m *WidgetMetrics) ObserveHTTP(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}
