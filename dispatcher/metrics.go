package dispatcher

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wastemanagement/push-agent/domain"
)

type metrics struct {
	messages             atomic.Uint64
	presented            atomic.Uint64
	presentFailures      atomic.Uint64
	rotations            atomic.Uint64
	registrationFailures atomic.Uint64
	classified           *prometheus.CounterVec
	duration             *prometheus.SummaryVec
}

func (m *metrics) observeClassified(t domain.DataMessageType) {
	if m.classified != nil {
		m.classified.WithLabelValues(t.Kind.String()).Inc()
	}
}

func (m *metrics) observeDuration(event string, dur time.Duration) {
	if m.duration != nil {
		m.duration.WithLabelValues(event).Observe(dur.Seconds())
	}
}

func registerMetrics(reg *prometheus.Registry, d *dispatcher) {
	gauge := func(name, help string, v *atomic.Uint64) {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "push",
			Subsystem: "dispatcher",
			Name:      name,
			Help:      help,
		}, func() float64 {
			return float64(v.Load())
		}))
	}
	gauge("messages", "total count of inbound messages", &d.metrics.messages)
	gauge("presented", "total count of presented notifications", &d.metrics.presented)
	gauge("present_failures", "total count of failed presentations", &d.metrics.presentFailures)
	gauge("rotations", "total count of token rotations", &d.metrics.rotations)
	gauge("registration_failures", "total count of failed token registrations", &d.metrics.registrationFailures)

	d.metrics.classified = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "push",
		Subsystem: "dispatcher",
		Name:      "classified_total",
		Help:      "data messages by classified type",
	}, []string{"type"})
	reg.MustRegister(d.metrics.classified)

	d.metrics.duration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "push",
		Subsystem: "dispatcher",
		Name:      "duration_seconds",
		Objectives: map[float64]float64{
			0.5:  0.5,
			0.85: 0.01,
			0.95: 0.0005,
			0.99: 0.0001,
		},
	}, []string{"event"})
	reg.MustRegister(d.metrics.duration)
}
