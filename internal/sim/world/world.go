package world

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"mazebots.ai/internal/persistence/snapshot"
	"mazebots.ai/internal/sim/bounds"
	"mazebots.ai/internal/sim/cell"
	"mazebots.ai/internal/sim/cells"
	"mazebots.ai/internal/sim/mathx"
	"mazebots.ai/internal/sim/scene"
)

type WorldConfig struct {
	LevelID            string
	TickRateHz         int
	Seed               int64
	SnapshotEveryTicks int
	SpawnEveryTicks    int
	MaxBots            int
	Mover              MoverConfig
}

type MoverConfig struct {
	Acceleration   float64
	Friction       float64
	Mass           float64
	ArriveDistance float64
}

type RecordedSpawn struct {
	BotID  string `json:"bot_id"`
	Cell   [3]int `json:"cell"`
	Facing string `json:"facing"`
}

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

type TickLogEntry struct {
	Tick     uint64          `json:"tick"`
	Spawns   []RecordedSpawn `json:"spawns,omitempty"`
	Arrivals int             `json:"arrivals,omitempty"`
	Digest   string          `json:"digest"`
}

// World is a single-threaded authoritative simulation of bots walking one
// level. All mutable state must be accessed only from the world loop
// goroutine; the level itself never changes after New.
type World struct {
	cfg WorldConfig
	log *log.Logger

	grid        *cells.Cells
	bounds      bounds.IBounds3
	placements  []scene.Placement
	spawnable   []mathx.IVec3
	levelDigest string

	tick atomic.Uint64

	bots     []*Bot
	spawned  uint64
	arrivals uint64

	nextBotNum atomic.Uint64

	observers     map[string]*observerClient
	observerJoin  chan ObserverJoinRequest
	observerLeave chan string
	admin         chan adminSnapshotReq
	stop          chan struct{}

	tickLogger   TickLogger
	snapshotSink chan<- snapshot.SnapshotV1

	metrics atomic.Value // WorldMetrics
}

func New(cfg WorldConfig, grid *cells.Cells, logger *log.Logger) (*World, error) {
	if grid == nil || grid.Count() == 0 {
		return nil, fmt.Errorf("level %s: no cells", cfg.LevelID)
	}
	if cfg.TickRateHz <= 0 {
		return nil, fmt.Errorf("tick rate must be > 0")
	}
	if cfg.SpawnEveryTicks <= 0 {
		return nil, fmt.Errorf("spawn interval must be > 0")
	}
	if cfg.Mover.Mass <= 0 {
		cfg.Mover.Mass = 1
	}
	if cfg.Mover.ArriveDistance <= 0 {
		cfg.Mover.ArriveDistance = 0.1
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	b := scene.LevelBounds(grid)
	w := &World{
		cfg:           cfg,
		log:           logger,
		grid:          grid,
		bounds:        b,
		placements:    scene.Build(grid, b),
		observers:     map[string]*observerClient{},
		observerJoin:  make(chan ObserverJoinRequest, 64),
		observerLeave: make(chan string, 64),
		admin:         make(chan adminSnapshotReq, 16),
		stop:          make(chan struct{}),
	}
	grid.Each(func(p mathx.IVec3, t cell.Type) {
		if !t.IsEmpty() {
			w.spawnable = append(w.spawnable, p)
		}
	})
	if len(w.spawnable) == 0 {
		logger.Printf("level %s has no open cells; bots will not spawn", cfg.LevelID)
	}
	sum := sha256.Sum256([]byte(grid.String()))
	w.levelDigest = hex.EncodeToString(sum[:])
	w.metrics.Store(WorldMetrics{})
	return w, nil
}

func (w *World) SetTickLogger(l TickLogger) { w.tickLogger = l }

func (w *World) SetSnapshotSink(ch chan<- snapshot.SnapshotV1) { w.snapshotSink = ch }

func (w *World) Config() WorldConfig {
	if w == nil {
		return WorldConfig{}
	}
	return w.cfg
}

func (w *World) ID() string {
	if w == nil {
		return ""
	}
	return w.cfg.LevelID
}

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

// Cells, Bounds and Placements describe the level and are safe to read from
// any goroutine.
func (w *World) Cells() *cells.Cells { return w.grid }

func (w *World) Bounds() bounds.IBounds3 { return w.bounds }

func (w *World) Placements() []scene.Placement {
	out := make([]scene.Placement, len(w.placements))
	copy(out, w.placements)
	return out
}

func (w *World) LevelDigest() string { return w.levelDigest }
