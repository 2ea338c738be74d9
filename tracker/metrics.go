package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons recorded in frames_dropped_total.
const (
	dropSize    = "size"
	dropCommand = "command"
)

// Metrics are the client's prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	framesReceived   prometheus.Counter
	framesDropped    *prometheus.CounterVec
	commandsSent     *prometheus.CounterVec
	sendErrors       *prometheus.CounterVec
	subscriberPanics prometheus.Counter
	dataFactor       prometheus.Gauge
	active           prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	const ns, sub = "xrinput", "tracker"
	return &Metrics{
		framesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "frames_received_total",
			Help:      "Pose reports decoded and published.",
		}),
		framesDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "frames_dropped_total",
			Help:      "Inbound frames dropped, by reason.",
		}, []string{"reason"}),
		commandsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "commands_sent_total",
			Help:      "Commands handed to the transport, by type.",
		}, []string{"type"}),
		sendErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "send_errors_total",
			Help:      "Commands the transport refused, by type.",
		}, []string{"type"}),
		subscriberPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "subscriber_panics_total",
			Help:      "Panics recovered from pose subscribers.",
		}),
		dataFactor: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "data_factor",
			Help:      "Current scale applied to tracked positions.",
		}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "active",
			Help:      "1 while the client holds an open transport.",
		}),
	}
}

func (m *Metrics) received() {
	if m != nil {
		m.framesReceived.Inc()
	}
}

func (m *Metrics) dropped(reason string) {
	if m != nil {
		m.framesDropped.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) sent(typ string) {
	if m != nil {
		m.commandsSent.WithLabelValues(typ).Inc()
	}
}

func (m *Metrics) sendFailed(typ string) {
	if m != nil {
		m.sendErrors.WithLabelValues(typ).Inc()
	}
}

func (m *Metrics) subscriberPanic() {
	if m != nil {
		m.subscriberPanics.Inc()
	}
}

func (m *Metrics) setFactor(f float64) {
	if m != nil {
		m.dataFactor.Set(f)
	}
}

func (m *Metrics) setActive(on bool) {
	if m == nil {
		return
	}
	if on {
		m.active.Set(1)
	} else {
		m.active.Set(0)
	}
}
