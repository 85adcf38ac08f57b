package notify

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the notification engine.
// A nil *Metrics is valid everywhere and records nothing.
type Metrics struct {
	shown            *prometheus.CounterVec
	closed           *prometheus.CounterVec
	actionsExecuted  *prometheus.CounterVec
	duplicateActions prometheus.Counter
	active           prometheus.Gauge
}

// NewMetrics registers the notification metrics with registry and returns
// them. Pass prometheus.DefaultRegisterer, or a fresh registry in tests.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		shown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notify",
			Name:      "notifications_shown_total",
			Help:      "Total notifications mounted and shown",
		}, []string{"type"}),

		closed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notify",
			Name:      "notifications_closed_total",
			Help:      "Total notifications closed, by close reason",
		}, []string{"reason"}),

		actionsExecuted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notify",
			Name:      "actions_executed_total",
			Help:      "Total action activations, by outcome",
		}, []string{"outcome"}),

		duplicateActions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "notify",
			Name:      "duplicate_action_labels_total",
			Help:      "Action descriptors dropped because their label was already taken",
		}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "notify",
			Name:      "active_notifications",
			Help:      "Notifications currently visible",
		}),
	}
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the process-wide Metrics registered with the
// default Prometheus registerer, creating them on first call.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

func (m *Metrics) notifyShown(t Type) {
	if m == nil {
		return
	}
	label := string(t)
	if label == "" {
		label = "none"
	}
	m.shown.WithLabelValues(label).Inc()
	m.active.Inc()
}

func (m *Metrics) notifyClosed(reason string) {
	if m == nil {
		return
	}
	m.closed.WithLabelValues(reason).Inc()
	m.active.Dec()
}

func (m *Metrics) actionExecuted(outcome string) {
	if m == nil {
		return
	}
	m.actionsExecuted.WithLabelValues(outcome).Inc()
}

func (m *Metrics) duplicateAction() {
	if m == nil {
		return
	}
	m.duplicateActions.Inc()
}
