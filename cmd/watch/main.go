package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"

	"mazebots.ai/internal/observerproto"
	"mazebots.ai/internal/sim/cells"
	simenc "mazebots.ai/internal/sim/encoding"
)

func main() {
	var (
		url       = flag.String("url", "ws://localhost:8080/v1/observer/ws", "observer ws url")
		every     = flag.Uint64("every", 10, "log bot positions every N ticks")
		omitLevel = flag.Bool("omit_level", false, "do not request the LEVEL message")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[watch] ", log.LstdFlags|log.Lmicroseconds)
	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	sub := observerproto.SubscribeMsg{
		Type:            observerproto.TypeSubscribe,
		ProtocolVersion: observerproto.Version,
		OmitLevel:       *omitLevel,
	}
	if err := conn.WriteJSON(sub); err != nil {
		logger.Fatalf("send SUBSCRIBE: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	go func() {
		<-stop
		_ = conn.Close()
	}()

	wt := &watcher{log: logger, every: *every}
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := wt.handle(msg); err != nil {
			logger.Fatalf("%v", err)
		}
	}
}

type watcher struct {
	log   *log.Logger
	every uint64

	grid  *cells.Cells
	known map[string]bool
}

func (wt *watcher) handle(msg []byte) error {
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &base); err != nil {
		return nil
	}
	switch base.Type {
	case observerproto.TypeLevel:
		var lm observerproto.LevelMsg
		if err := json.Unmarshal(msg, &lm); err != nil {
			return fmt.Errorf("decode LEVEL: %w", err)
		}
		grid, err := decodeLevel(lm)
		if err != nil {
			return err
		}
		wt.grid = grid
		wt.log.Printf("LEVEL %s size=%v bounds=%v..%v\n%s", lm.LevelID, lm.Size, lm.Bounds.Min, lm.Bounds.Max, strings.TrimRight(grid.String(), "\n"))

	case observerproto.TypeTick:
		var tm observerproto.TickMsg
		if err := json.Unmarshal(msg, &tm); err != nil {
			return fmt.Errorf("decode TICK: %w", err)
		}
		if wt.known == nil {
			wt.known = map[string]bool{}
		}
		for _, id := range tm.Spawns {
			wt.known[id] = true
			wt.log.Printf("tick=%d spawn %s", tm.Tick, id)
		}
		if wt.every == 0 || tm.Tick%wt.every != 0 {
			return nil
		}
		moving := 0
		for _, b := range tm.Bots {
			if b.Moving {
				moving++
			}
		}
		wt.log.Printf("tick=%d bots=%d moving=%d digest=%.12s", tm.Tick, len(tm.Bots), moving, tm.Digest)
		for _, b := range tm.Bots {
			wt.log.Printf("  %s cell=%v facing=%s pos=(%.2f,%.2f,%.2f)", b.ID, b.Cell, b.Facing, b.Pos[0], b.Pos[1], b.Pos[2])
		}

	case observerproto.TypeError:
		var em observerproto.ErrorMsg
		_ = json.Unmarshal(msg, &em)
		return fmt.Errorf("server error %s: %s", em.Code, em.Message)
	}
	return nil
}

func decodeLevel(lm observerproto.LevelMsg) (*cells.Cells, error) {
	if lm.Encoding != observerproto.CellsEncoding {
		return nil, fmt.Errorf("unsupported cells encoding %q", lm.Encoding)
	}
	flat, err := simenc.DecodeCells(lm.Data)
	if err != nil {
		return nil, fmt.Errorf("decode cells: %w", err)
	}
	return cells.FromLayout(lm.LevelRows, lm.RowLengths, flat)
}
