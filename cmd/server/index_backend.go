package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mazebots.ai/internal/persistence/indexdb"
	"mazebots.ai/internal/persistence/snapshot"
	"mazebots.ai/internal/sim/tuning"
	"mazebots.ai/internal/sim/world"
)

type runtimeIndex interface {
	world.TickLogger
	Close() error
	UpsertLevel(w *world.World, tune tuning.Tuning) error
	SetMeta(key, value string) error
	RecordSnapshot(path string, snap snapshot.SnapshotV1)
	Stats() indexdb.Stats
}

// openRuntimeIndex opens the read-model index selected by MB_INDEX_BACKEND
// (sqlite by default). It returns nil when indexing is disabled.
func openRuntimeIndex(levelDir string, disableDB bool) (runtimeIndex, error) {
	if disableDB {
		return nil, nil
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("MB_INDEX_BACKEND")))
	if backend == "" {
		backend = "sqlite"
	}

	switch backend {
	case "none", "off", "disabled":
		return nil, nil
	case "sqlite":
		dbPath := filepath.Join(levelDir, "index", "level.sqlite")
		return indexdb.OpenSQLite(dbPath)
	default:
		return nil, fmt.Errorf("unsupported MB_INDEX_BACKEND: %s", backend)
	}
}
