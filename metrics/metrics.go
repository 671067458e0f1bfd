// Package metrics exposes controller counters and gauges to Prometheus.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "boomrig"

// Controller groups the collectors updated by the controller systems. A nil
// *Controller is valid and records nothing.
type Controller struct {
	ticks       prometheus.Counter
	impulses    prometheus.Counter
	transitions *prometheus.CounterVec
	grounded    prometheus.Gauge
	airborne    prometheus.Gauge
	backlog     *prometheus.GaugeVec
	bodies      prometheus.Gauge
}

// NewController registers the collectors on reg.
func NewController(reg prometheus.Registerer) (*Controller, error) {
	c := &Controller{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks run.",
		}),
		impulses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jump_impulses_total",
			Help:      "Jump impulses applied to the avatar.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "motion_state_transitions_total",
			Help:      "Grounded/airborne transitions by target state.",
		}, []string{"state"}),
		grounded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "avatar_grounded",
			Help:      "1 while the avatar is grounded.",
		}),
		airborne: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "avatar_airborne_timer",
			Help:      "Normalised airborne timer in [0,1].",
		}),
		backlog: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "event_backlog",
			Help:      "Unread input events per reader.",
		}, []string{"reader"}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "physics_bodies",
			Help:      "Bodies in the physics world.",
		}),
	}
	for _, col := range []prometheus.Collector{c.ticks, c.impulses, c.transitions, c.grounded, c.airborne, c.backlog, c.bodies} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return c, nil
}

// Handler serves the gatherer in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (c *Controller) Tick() {
	if c == nil {
		return
	}
	c.ticks.Inc()
}

func (c *Controller) Impulse() {
	if c == nil {
		return
	}
	c.impulses.Inc()
}

func (c *Controller) Transition(state string) {
	if c == nil {
		return
	}
	c.transitions.WithLabelValues(state).Inc()
}

func (c *Controller) Grounded(grounded bool) {
	if c == nil {
		return
	}
	if grounded {
		c.grounded.Set(1)
		return
	}
	c.grounded.Set(0)
}

func (c *Controller) AirborneTimer(v float64) {
	if c == nil {
		return
	}
	c.airborne.Set(v)
}

func (c *Controller) Backlog(reader string, n int) {
	if c == nil {
		return
	}
	c.backlog.WithLabelValues(reader).Set(float64(n))
}

func (c *Controller) Bodies(n int) {
	if c == nil {
		return
	}
	c.bodies.Set(float64(n))
}
