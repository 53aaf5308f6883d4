package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts controller outcomes per surface (api|view), resource and
// action. Each app gets its own registry.
type Metrics struct {
	Registry *prometheus.Registry
	outcomes *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return &Metrics{
		Registry: reg,
		outcomes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_outcomes_total",
			Help: "Controller outcomes by surface, resource, action and outcome kind.",
		}, []string{"surface", "resource", "action", "outcome"}),
	}
}

func (m *Metrics) observe(surface, resource, action, outcome string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(surface, resource, action, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
