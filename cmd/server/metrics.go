package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"mazebots.ai/internal/sim/world"
)

// newMetricsRegistry exposes the world's metrics snapshot (and the index
// writer's backlog, when indexing is on). Values are read at scrape time.
func newMetricsRegistry(w *world.World, idx runtimeIndex) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	level := prometheus.Labels{"level": w.ID()}
	gauge := func(name, help string, labels prometheus.Labels, fn func(m world.WorldMetrics) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "mazebots",
			Subsystem:   "world",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, func() float64 { return fn(w.Metrics()) })
	}
	counter := func(name, help string, fn func(m world.WorldMetrics) float64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "mazebots",
			Subsystem:   "world",
			Name:        name,
			Help:        help,
			ConstLabels: level,
		}, func() float64 { return fn(w.Metrics()) })
	}
	queue := func(name string) prometheus.Labels {
		return prometheus.Labels{"level": w.ID(), "queue": name}
	}

	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "mazebots",
			Subsystem:   "world",
			Name:        "tick",
			Help:        "Current world tick.",
			ConstLabels: level,
		}, func() float64 { return float64(w.CurrentTick()) }),
		gauge("bots", "Current number of bots.", level, func(m world.WorldMetrics) float64 { return float64(m.Bots) }),
		gauge("bots_moving", "Bots travelling between cells.", level, func(m world.WorldMetrics) float64 { return float64(m.Moving) }),
		gauge("observers", "Connected observers.", level, func(m world.WorldMetrics) float64 { return float64(m.Observers) }),
		gauge("step_ms", "Last tick step duration in milliseconds.", level, func(m world.WorldMetrics) float64 { return m.StepMS }),
		gauge("queue_depth", "Channel backlog depth.", queue("observer_join"), func(m world.WorldMetrics) float64 { return float64(m.QueueDepths.ObserverJoin) }),
		gauge("queue_depth", "Channel backlog depth.", queue("observer_leave"), func(m world.WorldMetrics) float64 { return float64(m.QueueDepths.ObserverLeave) }),
		gauge("queue_depth", "Channel backlog depth.", queue("admin"), func(m world.WorldMetrics) float64 { return float64(m.QueueDepths.Admin) }),
		counter("spawned_total", "Bots spawned.", func(m world.WorldMetrics) float64 { return float64(m.Spawned) }),
		counter("arrivals_total", "Cell-to-cell moves completed.", func(m world.WorldMetrics) float64 { return float64(m.Arrivals) }),
	)

	if idx == nil {
		return reg
	}
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "mazebots",
			Subsystem:   "index",
			Name:        "queue_depth",
			Help:        "Index writer backlog.",
			ConstLabels: level,
		}, func() float64 { return float64(idx.Stats().QueueDepth) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "mazebots",
			Subsystem:   "index",
			Name:        "dropped_total",
			Help:        "Index writes dropped under backpressure.",
			ConstLabels: prometheus.Labels{"level": w.ID(), "kind": "tick"},
		}, func() float64 { return float64(idx.Stats().DropTickTotal) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "mazebots",
			Subsystem:   "index",
			Name:        "dropped_total",
			Help:        "Index writes dropped under backpressure.",
			ConstLabels: prometheus.Labels{"level": w.ID(), "kind": "snapshot"},
		}, func() float64 { return float64(idx.Stats().DropSnapshotTotal) }),
	)
	return reg
}
