package world

import (
	"fmt"

	"mazebots.ai/internal/sim/coords"
	"mazebots.ai/internal/sim/mathx"
	"mazebots.ai/internal/sim/nav"
)

type Bot struct {
	ID     string
	Pos    mathx.Vec3
	Facing nav.Direction
	Mover  LinearMover

	HasTarget bool
	Target    mathx.Vec3

	SpawnTick uint64
	Steps     uint64
}

// Cell is the cell containing the bot, in cell coordinates.
func (b *Bot) Cell() coords.CellCoords {
	return coords.CellCoordsFromGameCoordinates(b.Pos)
}

var spawnFacings = [4]nav.Direction{nav.PosX, nav.PosY, nav.NegX, nav.NegY}

// cellCenter is the game position of the middle of the cell at idx.
func (w *World) cellCenter(idx mathx.IVec3) mathx.Vec3 {
	c := coords.CellCoordsFromCellIndices(coords.CellIndicesFromIVec3(idx), w.bounds)
	return c.AsGameCoordinates().Add(mathx.SplatVec3(coords.CellSize / 2))
}

func (w *World) newBotID() string {
	n := w.nextBotNum.Add(1)
	return fmt.Sprintf("B%06d", n)
}

// maybeSpawn adds a bot every SpawnEveryTicks ticks (not at tick 0) until
// MaxBots is reached. Cell and facing are drawn from the seeded hash of the
// tick so replays spawn identically.
func (w *World) maybeSpawn(nowTick uint64) *Bot {
	every := uint64(w.cfg.SpawnEveryTicks)
	if nowTick == 0 || nowTick%every != 0 {
		return nil
	}
	if len(w.bots) >= w.cfg.MaxBots || len(w.spawnable) == 0 {
		return nil
	}
	idx := w.spawnable[mathx.Hash2(w.cfg.Seed, nowTick, 0)%uint64(len(w.spawnable))]
	facing := spawnFacings[mathx.Hash2(w.cfg.Seed, nowTick, 1)%uint64(len(spawnFacings))]

	b := &Bot{
		ID:        w.newBotID(),
		Pos:       w.cellCenter(idx),
		Facing:    facing,
		Mover:     newLinearMover(w.cfg.Mover),
		SpawnTick: nowTick,
	}
	w.bots = append(w.bots, b)
	w.spawned++
	return b
}

// inLevel vetoes destinations that are not authored cells, so bots never walk
// off the map even though missing cells count as open.
func (w *World) inLevel(dst coords.CellCoords) bool {
	_, ok := w.grid.Get(dst.AsIVec3().Sub(w.bounds.Min))
	return ok
}

// chooseStep tries the in-plane priority order first and only then the
// vertical shafts.
func (w *World) chooseStep(b *Bot) (nav.Direction, bool) {
	if d, ok := nav.ChooseMove(b.Pos, b.Facing, w.grid, w.bounds, w.inLevel); ok {
		return d, true
	}
	here := b.Cell()
	for _, d := range [2]nav.Direction{nav.PosZ, nav.NegZ} {
		if d == b.Facing {
			continue
		}
		if nav.CanMoveDir(b.Pos, d, w.grid, w.bounds) && w.inLevel(here.Add(coords.CellCoordsFromIVec3(d.Vector()))) {
			return d, true
		}
	}
	return b.Facing, false
}

// stepBot advances one bot by a tick and reports whether it reached its
// target cell.
func (w *World) stepBot(b *Bot, dt float64) bool {
	if !b.HasTarget {
		d, ok := w.chooseStep(b)
		if !ok {
			b.Facing = b.Facing.Right()
			return false
		}
		b.Facing = d
		b.Target = b.Pos.Add(d.Vector().AsVec3().Scale(coords.CellSize))
		b.HasTarget = true
	}

	pos, arrived := b.Mover.Step(b.Pos, b.Target, dt)
	b.Pos = pos
	if arrived {
		b.HasTarget = false
		b.Steps++
	}
	return arrived
}
