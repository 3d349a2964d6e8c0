package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	persistlog "mazebots.ai/internal/persistence/log"
	"mazebots.ai/internal/persistence/snapshot"
	"mazebots.ai/internal/sim/levels"
	"mazebots.ai/internal/sim/tuning"
	"mazebots.ai/internal/sim/world"
	"mazebots.ai/internal/transport/observer"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		levelID    = flag.String("level", "", "level id (default: default_level_id from levels.yaml)")
		seed       = flag.Int64("seed", 1337, "spawn seed (used only when starting a fresh world)")
		configDir  = flag.String("configs", "./configs", "config directory")
		levelsPath = flag.String("levels", "", "path to levels.yaml (default: <configs>/levels.yaml, built-in demo level if missing)")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		disableDB  = flag.Bool("disable_db", false, "disable indexing (ticks + level + snapshot metadata)")

		snapPath   = flag.String("snapshot", "", "path to snapshot to load (optional)")
		loadLatest = flag.Bool("load_latest_snapshot", true, "load latest snapshot from data dir if present (when -snapshot is empty)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)
	runID := uuid.NewString()

	lp := strings.TrimSpace(*levelsPath)
	if lp == "" {
		lp = filepath.Join(*configDir, "levels.yaml")
		if _, err := os.Stat(lp); err != nil {
			logger.Printf("levels not found (%s); using built-in demo level", lp)
			lp = ""
		}
	}
	lcfg, err := levels.Load(lp)
	if err != nil {
		logger.Fatalf("load levels: %v", err)
	}
	id := strings.TrimSpace(*levelID)
	if id == "" {
		id = lcfg.DefaultLevelID
	}
	spec, ok := lcfg.LevelByID(id)
	if !ok {
		logger.Fatalf("unknown level %q", id)
	}

	levelDir := filepath.Join(*dataDir, "levels", spec.ID)
	_ = os.MkdirAll(levelDir, 0o755)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}

	snapshotToLoad := strings.TrimSpace(*snapPath)
	if snapshotToLoad == "" && *loadLatest {
		snapshotToLoad = latestSnapshot(levelDir)
	}

	// Load tuning (required for fresh world; optional for snapshot resumes).
	tune, tuneErr := tuning.Load(tp)
	if tuneErr != nil {
		if os.IsNotExist(tuneErr) {
			logger.Printf("tuning not found (%s); using defaults", tp)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", tuneErr)
		}
	}

	// Optional: read-model index backend (does not affect sim determinism).
	idx, err := openRuntimeIndex(levelDir, *disableDB)
	if err != nil {
		logger.Fatalf("open index backend: %v", err)
	}
	if idx != nil {
		defer idx.Close()
	}

	w, err := buildWorld(spec, tune, *seed, snapshotToLoad, logger)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}
	if idx != nil {
		if err := idx.UpsertLevel(w, tune); err != nil {
			logger.Printf("index backend: upsert level: %v", err)
		}
		if err := idx.SetMeta("last_run_id", runID); err != nil {
			logger.Printf("index backend: set run id: %v", err)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	tickLog := persistlog.NewTickLogger(levelDir)
	defer tickLog.Close()
	if idx != nil {
		w.SetTickLogger(multiTickLogger{a: tickLog, b: idx})
	} else {
		w.SetTickLogger(tickLog)
	}

	// Snapshot writer.
	snapCh := make(chan snapshot.SnapshotV1, 2)
	w.SetSnapshotSink(snapCh)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-snapCh:
				path := filepath.Join(levelDir, "snapshots", fmt.Sprintf("%d.snap.zst", snap.Header.Tick))
				if err := snapshot.WriteSnapshot(path, snap); err != nil {
					logger.Printf("snapshot write: %v", err)
					continue
				}
				logger.Printf("snapshot tick=%d bots=%d", snap.Header.Tick, len(snap.Agents))
				if idx != nil {
					idx.RecordSnapshot(path, snap)
				}
			}
		}
	}()

	go func() {
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("world stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(newMetricsRegistry(w, idx), promhttp.HandlerOpts{}))

	obsSrv := observer.NewServer(w, logger)
	obsSrv.AllowRemote = envBool("MB_OBSERVER_ALLOW_REMOTE", false)
	mux.HandleFunc("/v1/observer/bootstrap", obsSrv.BootstrapHandler())
	mux.HandleFunc("/v1/observer/ws", obsSrv.WSHandler())

	if envBool("MB_ENABLE_ADMIN_HTTP", defaultEnableAdminHTTP()) {
		// Local-only admin endpoints (do not affect simulation determinism).
		mux.HandleFunc("/admin/v1/state", adminStateHandler(w, runID))
		mux.HandleFunc("/admin/v1/snapshot", adminSnapshotHandler(w))
	} else {
		logger.Printf("admin endpoints disabled (MB_ENABLE_ADMIN_HTTP=false)")
	}
	if envBool("MB_ENABLE_PPROF_HTTP", false) {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("run=%s level=%s size=%v tick=%d listening on %s", runID, w.ID(), w.Cells().Size().Array(), w.CurrentTick(), *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

// buildWorld creates a fresh world for spec or resumes one from snapshotPath.
// Snapshots carry their own grid and tuning.
func buildWorld(spec levels.LevelSpec, tune tuning.Tuning, seed int64, snapshotPath string, logger *log.Logger) (*world.World, error) {
	if snapshotPath != "" {
		snap, err := snapshot.ReadSnapshot(snapshotPath)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		if snap.Header.LevelID != "" && snap.Header.LevelID != spec.ID {
			return nil, fmt.Errorf("snapshot level id mismatch: flag=%s snap=%s", spec.ID, snap.Header.LevelID)
		}
		w, err := world.NewFromSnapshot(snap, logger)
		if err != nil {
			return nil, err
		}
		logger.Printf("resumed from snapshot=%s tick=%d", filepath.Base(snapshotPath), w.CurrentTick())
		return w, nil
	}

	grid, err := spec.Cells()
	if err != nil {
		return nil, err
	}
	return world.New(world.WorldConfig{
		LevelID:            spec.ID,
		TickRateHz:         tune.TickRateHz,
		Seed:               seed + spec.SeedOffset,
		SnapshotEveryTicks: tune.SnapshotEveryTicks,
		SpawnEveryTicks:    tune.Bots.SpawnEveryTicks,
		MaxBots:            tune.Bots.MaxBots,
		Mover: world.MoverConfig{
			Acceleration:   tune.Mover.Acceleration,
			Friction:       tune.Mover.Friction,
			Mass:           tune.Mover.Mass,
			ArriveDistance: tune.Mover.ArriveDistance,
		},
	}, grid, logger)
}

func adminStateHandler(w *world.World, runID string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		resp := struct {
			RunID       string             `json:"run_id"`
			LevelID     string             `json:"level_id"`
			Tick        uint64             `json:"tick"`
			LevelDigest string             `json:"level_digest"`
			Metrics     world.WorldMetrics `json:"metrics"`
		}{
			RunID:       runID,
			LevelID:     w.ID(),
			Tick:        w.CurrentTick(),
			LevelDigest: w.LevelDigest(),
			Metrics:     w.Metrics(),
		}
		_ = json.NewEncoder(rw).Encode(resp)
	}
}

func adminSnapshotHandler(w *world.World) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		ctx2, cancel2 := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel2()
		tick, err := w.RequestSnapshot(ctx2)
		rw.Header().Set("Content-Type", "application/json")
		if err != nil {
			rw.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(rw).Encode(map[string]any{"ok": false, "tick": tick, "error": err.Error()})
			return
		}
		_ = json.NewEncoder(rw).Encode(map[string]any{"ok": true, "tick": tick})
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func latestSnapshot(levelDir string) string {
	dir := filepath.Join(levelDir, "snapshots")
	ents, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var best string
	var bestTick uint64
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".snap.zst") {
			continue
		}
		base := strings.TrimSuffix(name, ".snap.zst")
		tick, err := strconv.ParseUint(base, 10, 64)
		if err != nil {
			continue
		}
		if best == "" || tick > bestTick {
			bestTick = tick
			best = filepath.Join(dir, name)
		}
	}
	return best
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func defaultEnableAdminHTTP() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DEPLOY_ENV"))) {
	case "staging", "production":
		return false
	default:
		return true
	}
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

type multiTickLogger struct {
	a world.TickLogger
	b world.TickLogger
}

func (m multiTickLogger) WriteTick(entry world.TickLogEntry) error {
	if m.a != nil {
		_ = m.a.WriteTick(entry)
	}
	if m.b != nil {
		_ = m.b.WriteTick(entry)
	}
	return nil
}
