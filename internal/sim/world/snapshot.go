package world

import (
	"context"
	"errors"
	"fmt"
	"log"

	"mazebots.ai/internal/persistence/snapshot"
	"mazebots.ai/internal/sim/cells"
	simenc "mazebots.ai/internal/sim/encoding"
	"mazebots.ai/internal/sim/mathx"
	"mazebots.ai/internal/sim/nav"
)

func (w *World) ExportSnapshot(nowTick uint64) snapshot.SnapshotV1 {
	levelRows, rowLengths, flat := w.grid.Layout()
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version: snapshot.Version,
			LevelID: w.cfg.LevelID,
			Tick:    nowTick,
		},
		Seed:               w.cfg.Seed,
		TickRate:           w.cfg.TickRateHz,
		SnapshotEveryTicks: w.cfg.SnapshotEveryTicks,
		Bots: snapshot.BotTuningV1{
			SpawnEveryTicks: w.cfg.SpawnEveryTicks,
			MaxBots:         w.cfg.MaxBots,
		},
		Mover: snapshot.MoverV1{
			Acceleration:   w.cfg.Mover.Acceleration,
			Friction:       w.cfg.Mover.Friction,
			Mass:           w.cfg.Mover.Mass,
			ArriveDistance: w.cfg.Mover.ArriveDistance,
		},
		Level: snapshot.LevelV1{
			Size:       w.grid.Size().Array(),
			BoundsMin:  w.bounds.Min.Array(),
			BoundsMax:  w.bounds.Max.Array(),
			LevelRows:  levelRows,
			RowLengths: rowLengths,
			Cells:      simenc.EncodeCells(flat),
		},
		Counters: snapshot.CountersV1{
			NextBot:  w.nextBotNum.Load(),
			Spawned:  w.spawned,
			Arrivals: w.arrivals,
		},
	}
	for _, b := range w.bots {
		snap.Agents = append(snap.Agents, snapshot.BotV1{
			ID:        b.ID,
			Pos:       b.Pos.Array(),
			Velocity:  b.Mover.Velocity.Array(),
			Facing:    uint8(b.Facing),
			HasTarget: b.HasTarget,
			Target:    b.Target.Array(),
			SpawnTick: b.SpawnTick,
			Steps:     b.Steps,
		})
	}
	return snap
}

// ConfigFromSnapshot recovers the config a snapshot was taken with.
func ConfigFromSnapshot(snap snapshot.SnapshotV1) WorldConfig {
	return WorldConfig{
		LevelID:            snap.Header.LevelID,
		TickRateHz:         snap.TickRate,
		Seed:               snap.Seed,
		SnapshotEveryTicks: snap.SnapshotEveryTicks,
		SpawnEveryTicks:    snap.Bots.SpawnEveryTicks,
		MaxBots:            snap.Bots.MaxBots,
		Mover: MoverConfig{
			Acceleration:   snap.Mover.Acceleration,
			Friction:       snap.Mover.Friction,
			Mass:           snap.Mover.Mass,
			ArriveDistance: snap.Mover.ArriveDistance,
		},
	}
}

// CellsFromSnapshot rebuilds the level grid stored in snap.
func CellsFromSnapshot(snap snapshot.SnapshotV1) (*cells.Cells, error) {
	flat, err := simenc.DecodeCells(snap.Level.Cells)
	if err != nil {
		return nil, fmt.Errorf("decode cells: %w", err)
	}
	grid, err := cells.FromLayout(snap.Level.LevelRows, snap.Level.RowLengths, flat)
	if err != nil {
		return nil, err
	}
	if grid.Size().Array() != snap.Level.Size {
		return nil, fmt.Errorf("level size mismatch: got %v want %v", grid.Size().Array(), snap.Level.Size)
	}
	return grid, nil
}

// ImportSnapshot replaces the bot state. The world must have been built from
// the same level; resuming continues at the tick after the snapshot.
func (w *World) ImportSnapshot(snap snapshot.SnapshotV1) error {
	if snap.Header.Version != snapshot.Version {
		return fmt.Errorf("unsupported snapshot version: %d", snap.Header.Version)
	}
	if snap.Header.LevelID != w.cfg.LevelID {
		return fmt.Errorf("snapshot level %q does not match world %q", snap.Header.LevelID, w.cfg.LevelID)
	}
	if mathx.IVec3FromArray(snap.Level.BoundsMin) != w.bounds.Min || mathx.IVec3FromArray(snap.Level.BoundsMax) != w.bounds.Max {
		return fmt.Errorf("snapshot bounds do not match level")
	}

	bots := make([]*Bot, 0, len(snap.Agents))
	for _, a := range snap.Agents {
		d := nav.Direction(a.Facing)
		if !d.Valid() {
			return fmt.Errorf("bot %s: bad facing %d", a.ID, a.Facing)
		}
		m := newLinearMover(w.cfg.Mover)
		m.Velocity = mathx.Vec3FromArray(a.Velocity)
		bots = append(bots, &Bot{
			ID:        a.ID,
			Pos:       mathx.Vec3FromArray(a.Pos),
			Facing:    d,
			Mover:     m,
			HasTarget: a.HasTarget,
			Target:    mathx.Vec3FromArray(a.Target),
			SpawnTick: a.SpawnTick,
			Steps:     a.Steps,
		})
	}

	w.bots = bots
	w.spawned = snap.Counters.Spawned
	w.arrivals = snap.Counters.Arrivals
	w.nextBotNum.Store(snap.Counters.NextBot)
	w.tick.Store(snap.Header.Tick + 1)
	return nil
}

// NewFromSnapshot builds a world and restores it from snap.
func NewFromSnapshot(snap snapshot.SnapshotV1, logger *log.Logger) (*World, error) {
	grid, err := CellsFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	w, err := New(ConfigFromSnapshot(snap), grid, logger)
	if err != nil {
		return nil, err
	}
	if err := w.ImportSnapshot(snap); err != nil {
		return nil, err
	}
	return w, nil
}

type adminSnapshotReq struct {
	Resp chan adminSnapshotResp
}

type adminSnapshotResp struct {
	Tick uint64
	Err  string
}

// RequestSnapshot asks the world loop goroutine to enqueue a snapshot.
// It is safe to call from other goroutines (e.g. HTTP handlers).
func (w *World) RequestSnapshot(ctx context.Context) (tick uint64, err error) {
	if w == nil || w.admin == nil {
		return 0, errors.New("snapshot not available")
	}
	resp := make(chan adminSnapshotResp, 1)

	select {
	case w.admin <- adminSnapshotReq{Resp: resp}:
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	select {
	case r := <-resp:
		if r.Err != "" {
			return r.Tick, errors.New(r.Err)
		}
		return r.Tick, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (w *World) handleAdminSnapshotRequests(reqs []adminSnapshotReq) {
	if len(reqs) == 0 {
		return
	}
	cur := w.tick.Load()
	snapTick := uint64(0)
	if cur > 0 {
		snapTick = cur - 1
	}

	errStr := ""
	if w.snapshotSink == nil {
		errStr = "snapshot sink not configured"
	} else {
		select {
		case w.snapshotSink <- w.ExportSnapshot(snapTick):
		default:
			errStr = "snapshot sink backpressure"
		}
	}

	resp := adminSnapshotResp{Tick: snapTick, Err: errStr}
	for _, r := range reqs {
		if r.Resp == nil {
			continue
		}
		select {
		case r.Resp <- resp:
		default:
			// Client timed out; don't block the sim loop.
		}
	}
}
