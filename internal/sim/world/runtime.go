package world

import (
	"context"
	"time"
)

func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pendingAdmin []adminSnapshotReq

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.observerJoin:
			w.handleObserverJoin(req)
		case id := <-w.observerLeave:
			w.handleObserverLeave(id)
		case req := <-w.admin:
			pendingAdmin = append(pendingAdmin, req)
		case <-ticker.C:
			w.stepInternal()
			w.handleAdminSnapshotRequests(pendingAdmin)
			pendingAdmin = pendingAdmin[:0]
		}
	}
}

func (w *World) Stop() { close(w.stop) }

// StepOnce advances the world by a single tick using the same ordering semantics as the server.
// It is primarily intended for deterministic replays/tests.
func (w *World) StepOnce() (tick uint64, digest string) {
	tick = w.tick.Load()
	w.stepInternal()
	return tick, w.stateDigest(tick)
}

func (w *World) stepInternal() {
	stepStart := time.Now()
	nowTick := w.tick.Load()
	dt := 1 / float64(w.cfg.TickRateHz)

	var spawns []RecordedSpawn
	if b := w.maybeSpawn(nowTick); b != nil {
		c := b.Cell()
		spawns = append(spawns, RecordedSpawn{
			BotID:  b.ID,
			Cell:   c.AsIVec3().Array(),
			Facing: b.Facing.String(),
		})
	}

	arrivals := 0
	for _, b := range w.bots {
		if w.stepBot(b, dt) {
			arrivals++
		}
	}
	w.arrivals += uint64(arrivals)

	digest := w.stateDigest(nowTick)

	// Observer stream (read-only).
	w.stepObservers(nowTick, digest, spawns)

	if w.tickLogger != nil {
		if err := w.tickLogger.WriteTick(TickLogEntry{Tick: nowTick, Spawns: spawns, Arrivals: arrivals, Digest: digest}); err != nil {
			w.log.Printf("tick log: %v", err)
		}
	}

	// Snapshot every N ticks, starting after tick 0.
	if w.snapshotSink != nil && nowTick != 0 && w.cfg.SnapshotEveryTicks > 0 {
		if nowTick%uint64(w.cfg.SnapshotEveryTicks) == 0 {
			select {
			case w.snapshotSink <- w.ExportSnapshot(nowTick):
			default:
				// Drop snapshot if sink is backed up.
			}
		}
	}

	stepMS := float64(time.Since(stepStart).Microseconds()) / 1000.0
	nextTick := w.tick.Add(1)

	moving := 0
	for _, b := range w.bots {
		if b.HasTarget {
			moving++
		}
	}
	w.metrics.Store(WorldMetrics{
		Tick:      nextTick,
		Bots:      len(w.bots),
		Moving:    moving,
		Observers: len(w.observers),
		Spawned:   w.spawned,
		Arrivals:  w.arrivals,
		QueueDepths: QueueDepths{
			ObserverJoin:  len(w.observerJoin),
			ObserverLeave: len(w.observerLeave),
			Admin:         len(w.admin),
		},
		StepMS: stepMS,
	})
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
