package world

import (
	"encoding/json"

	"mazebots.ai/internal/observerproto"
	simenc "mazebots.ai/internal/sim/encoding"
)

type ObserverJoinRequest struct {
	SessionID string
	TickOut   chan []byte
}

type observerClient struct {
	id      string
	tickOut chan []byte
}

func (w *World) ObserverJoin() chan<- ObserverJoinRequest { return w.observerJoin }

func (w *World) ObserverLeave() chan<- string { return w.observerLeave }

func (w *World) handleObserverJoin(req ObserverJoinRequest) {
	if req.SessionID == "" || req.TickOut == nil {
		return
	}
	// Replace existing session id if any.
	if old := w.observers[req.SessionID]; old != nil {
		close(old.tickOut)
	}
	w.observers[req.SessionID] = &observerClient{id: req.SessionID, tickOut: req.TickOut}
}

func (w *World) handleObserverLeave(sessionID string) {
	c := w.observers[sessionID]
	if c == nil {
		return
	}
	delete(w.observers, sessionID)
	close(c.tickOut)
}

func (w *World) stepObservers(nowTick uint64, digest string, spawns []RecordedSpawn) {
	if len(w.observers) == 0 {
		return
	}
	msg := w.tickMessage(nowTick, digest, spawns)
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for _, c := range w.observers {
		sendLatest(c.tickOut, b)
	}
}

func (w *World) tickMessage(nowTick uint64, digest string, spawns []RecordedSpawn) observerproto.TickMsg {
	msg := observerproto.TickMsg{
		Type:            observerproto.TypeTick,
		ProtocolVersion: observerproto.Version,
		Tick:            nowTick,
		Digest:          digest,
		Bots:            make([]observerproto.BotState, 0, len(w.bots)),
	}
	for _, b := range w.bots {
		c := b.Cell()
		msg.Bots = append(msg.Bots, observerproto.BotState{
			ID:     b.ID,
			Pos:    b.Pos.Array(),
			Cell:   c.AsIVec3().Array(),
			Facing: b.Facing.String(),
			Moving: b.HasTarget,
		})
	}
	for _, s := range spawns {
		msg.Spawns = append(msg.Spawns, s.BotID)
	}
	return msg
}

// LevelMessage describes the level grid for observers. It only reads
// immutable state and is safe to call from any goroutine.
func (w *World) LevelMessage() observerproto.LevelMsg {
	levelRows, rowLengths, flat := w.grid.Layout()
	return observerproto.LevelMsg{
		Type:            observerproto.TypeLevel,
		ProtocolVersion: observerproto.Version,
		LevelID:         w.cfg.LevelID,
		Size:            w.grid.Size().Array(),
		Bounds: observerproto.Bounds{
			Min: w.bounds.Min.Array(),
			Max: w.bounds.Max.Array(),
		},
		LevelRows:  levelRows,
		RowLengths: rowLengths,
		Encoding:   observerproto.CellsEncoding,
		Data:       simenc.EncodeCells(flat),
	}
}
