package venue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	methodCalls      *prometheus.CounterVec
	registeredVenues prometheus.Gauge
	rejectedVenues   prometheus.Counter
}

func initMetrics() metrics {
	const ns, sub = "pinpoint", "venue"
	return metrics{
		methodCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "method_calls_total",
			Help:      "Total number of method calls",
		}, []string{"method"}),
		registeredVenues: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "registered_total",
			Help:      "Total number of venues registered",
		}),
		rejectedVenues: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "rejected_total",
			Help:      "Total number of venues rejected by validation",
		}),
	}
}

func (m metrics) incMethodCalls(method string) {
	m.methodCalls.With(prometheus.Labels{"method": method}).Inc()
}
