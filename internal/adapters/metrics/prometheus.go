// Package metrics exposes messaging counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/barter/internal/ports/secondary"
)

const namespace = "barter"

// PrometheusRecorder implements secondary.MetricsRecorder on its own registry.
type PrometheusRecorder struct {
	registry      *prometheus.Registry
	sent          *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	read          prometheus.Counter
	deleted       prometheus.Counter
	cleared       prometheus.Counter
	clearedMsgs   prometheus.Counter
	storeFailures *prometheus.CounterVec
}

// NewPrometheusRecorder creates a recorder with process and Go runtime collectors attached.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Messages appended to the store.",
		}, []string{"offer"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sends_rejected_total",
			Help:      "Send requests refused, by reason.",
		}, []string{"reason"}),
		read: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_marked_read_total",
			Help:      "Messages flipped from unread to read.",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_deleted_total",
			Help:      "Messages deleted by their sender.",
		}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversations_cleared_total",
			Help:      "Conversation clear operations.",
		}),
		clearedMsgs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversation_messages_cleared_total",
			Help:      "Messages removed by conversation clears.",
		}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Failed message store operations, by operation.",
		}, []string{"op"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.sent, r.rejected, r.read, r.deleted, r.cleared, r.clearedMsgs, r.storeFailures,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *PrometheusRecorder) MessageSent(withOffer bool) {
	r.sent.WithLabelValues(strconv.FormatBool(withOffer)).Inc()
}

func (r *PrometheusRecorder) SendRejected(reason string) {
	r.rejected.WithLabelValues(reason).Inc()
}

func (r *PrometheusRecorder) MessagesRead(count int) {
	if count > 0 {
		r.read.Add(float64(count))
	}
}

func (r *PrometheusRecorder) MessageDeleted() {
	r.deleted.Inc()
}

func (r *PrometheusRecorder) ConversationCleared(removed int) {
	r.cleared.Inc()
	if removed > 0 {
		r.clearedMsgs.Add(float64(removed))
	}
}

func (r *PrometheusRecorder) StoreFailure(op string) {
	r.storeFailures.WithLabelValues(op).Inc()
}

var _ secondary.MetricsRecorder = (*PrometheusRecorder)(nil)
