package world

// WorldMetrics is a thread-safe read-only view of key world runtime signals.
// It is updated from the world loop goroutine and read from HTTP handlers/tests.
type WorldMetrics struct {
	Tick uint64 `json:"tick"`

	Bots      int    `json:"bots"`
	Moving    int    `json:"moving"`
	Observers int    `json:"observers"`
	Spawned   uint64 `json:"spawned"`
	Arrivals  uint64 `json:"arrivals"`

	QueueDepths QueueDepths `json:"queue_depths"`
	StepMS      float64     `json:"step_ms"`
}

type QueueDepths struct {
	ObserverJoin  int `json:"observer_join"`
	ObserverLeave int `json:"observer_leave"`
	Admin         int `json:"admin"`
}

func (w *World) Metrics() WorldMetrics {
	if w == nil {
		return WorldMetrics{}
	}
	m, _ := w.metrics.Load().(WorldMetrics)
	return m
}
