package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mazebots.ai/internal/sim/world"
)

func TestJSONLZstdWriter_RotatesHourly(t *testing.T) {
	dir := t.TempDir()
	w := NewJSONLZstdWriter(dir, "events")
	now := time.Date(2026, 1, 2, 3, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	if err := w.Write(map[string]int{"n": 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if err := w.Write(map[string]int{"n": 2}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	for _, name := range []string{"events-2026-01-02-03.jsonl.zst", "events-2026-01-02-04.jsonl.zst"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestTickLogger_ReadTicksRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	l := NewTickLogger(dataDir)
	hour := time.Date(2026, 5, 6, 7, 0, 0, 0, time.UTC)
	l.w.now = func() time.Time { return hour }

	want := []world.TickLogEntry{
		{Tick: 0, Digest: "a"},
		{Tick: 1, Digest: "b", Spawns: []world.RecordedSpawn{{BotID: "B000001", Cell: [3]int{1, -2, 0}, Facing: "+X"}}},
		{Tick: 2, Digest: "c", Arrivals: 1},
	}
	for i, e := range want {
		if i == 2 {
			hour = hour.Add(time.Hour)
		}
		if err := l.WriteTick(e); err != nil {
			t.Fatalf("WriteTick: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var got []world.TickLogEntry
	if err := ReadTicks(EventsDir(dataDir), func(e world.TickLogEntry) error {
		got = append(got, e)
		return nil
	}); err != nil {
		t.Fatalf("ReadTicks: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("entries=%d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Tick != want[i].Tick || got[i].Digest != want[i].Digest || got[i].Arrivals != want[i].Arrivals {
			t.Fatalf("entry %d: got %+v want %+v", i, got[i], want[i])
		}
	}
	if len(got[1].Spawns) != 1 || got[1].Spawns[0].Cell != [3]int{1, -2, 0} {
		t.Fatalf("spawns not preserved: %+v", got[1].Spawns)
	}
}

func TestReadTicks_MissingDir(t *testing.T) {
	if err := ReadTicks(filepath.Join(t.TempDir(), "nope"), func(world.TickLogEntry) error { return nil }); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
