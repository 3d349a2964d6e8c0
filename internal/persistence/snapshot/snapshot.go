package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

const Version = 1

type Header struct {
	Version int    `json:"version"`
	LevelID string `json:"level_id"`
	Tick    uint64 `json:"tick"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed               int64 `json:"seed"`
	TickRate           int   `json:"tick_rate_hz"`
	SnapshotEveryTicks int   `json:"snapshot_every_ticks,omitempty"`

	Bots  BotTuningV1 `json:"bot_tuning"`
	Mover MoverV1     `json:"mover"`

	Level LevelV1 `json:"level"`

	Agents   []BotV1    `json:"bots"`
	Counters CountersV1 `json:"counters"`
}

type BotTuningV1 struct {
	SpawnEveryTicks int `json:"spawn_every_ticks"`
	MaxBots         int `json:"max_bots"`
}

type MoverV1 struct {
	Acceleration   float64 `json:"acceleration"`
	Friction       float64 `json:"friction"`
	Mass           float64 `json:"mass"`
	ArriveDistance float64 `json:"arrive_distance"`
}

// LevelV1 stores the grid as RLE flags in z, y, x order. RowLengths holds one
// entry per row of every level so ragged maps survive; LevelRows splits it.
type LevelV1 struct {
	Size       [3]int `json:"size"`
	BoundsMin  [3]int `json:"bounds_min"`
	BoundsMax  [3]int `json:"bounds_max"`
	LevelRows  []int  `json:"level_rows"`
	RowLengths []int  `json:"row_lengths"`
	Cells      string `json:"cells"`
}

type BotV1 struct {
	ID        string     `json:"id"`
	Pos       [3]float64 `json:"pos"`
	Velocity  [3]float64 `json:"velocity"`
	Facing    uint8      `json:"facing"`
	HasTarget bool       `json:"has_target"`
	Target    [3]float64 `json:"target"`
	SpawnTick uint64     `json:"spawn_tick"`
	Steps     uint64     `json:"steps"`
}

type CountersV1 struct {
	NextBot  uint64 `json:"next_bot"`
	Spawned  uint64 `json:"spawned"`
	Arrivals uint64 `json:"arrivals"`
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		_ = enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		_ = enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// ReadHeader decodes only the JSON header line.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return h, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("decode header: %w", err)
	}
	return h, nil
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// The gob body repeats the header.
	if _, err := br.ReadBytes('\n'); err != nil {
		return snap, fmt.Errorf("read header: %w", err)
	}

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	if snap.Header.Version != Version {
		return snap, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	return snap, nil
}
