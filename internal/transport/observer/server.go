package observer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"mazebots.ai/internal/observerproto"
	"mazebots.ai/internal/sim/scene"
	"mazebots.ai/internal/sim/world"
)

type Server struct {
	world *world.World
	log   *log.Logger

	// AllowRemote disables the loopback-only check.
	AllowRemote bool

	upgrader websocket.Upgrader
	nextID   atomic.Uint64
}

func NewServer(w *world.World, logger *log.Logger) *Server {
	return &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) BootstrapHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !s.allowed(r) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		cfg := s.world.Config()
		b := s.world.Bounds()
		resp := observerproto.BootstrapResponse{
			ProtocolVersion: observerproto.Version,
			LevelID:         cfg.LevelID,
			Tick:            s.world.CurrentTick(),
			TickRateHz:      cfg.TickRateHz,
			Size:            s.world.Cells().Size().Array(),
			Bounds:          observerproto.Bounds{Min: b.Min.Array(), Max: b.Max.Array()},
			Placements:      placements(s.world.Placements()),
		}

		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(resp)
	}
}

func placements(ps []scene.Placement) []observerproto.Placement {
	out := make([]observerproto.Placement, 0, len(ps))
	for _, p := range ps {
		op := observerproto.Placement{
			Kind: string(p.Kind),
			Cell: p.Cell.AsIVec3().Array(),
			Pos:  p.Transform.Translation.Array(),
			Rot:  p.Transform.Rotation.Array(),
		}
		if p.Kind == scene.KindWall {
			op.Face = p.Face.String()
		}
		out = append(out, op)
	}
	return out
}

func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !s.allowed(r) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Handshake: must send SUBSCRIBE first.
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var sub observerproto.SubscribeMsg
		if err := json.Unmarshal(msg, &sub); err != nil {
			reject(conn, observerproto.ErrBadRequest, "bad subscribe", websocket.ClosePolicyViolation)
			return
		}
		if sub.Type != observerproto.TypeSubscribe {
			reject(conn, observerproto.ErrBadRequest, "expected SUBSCRIBE", websocket.ClosePolicyViolation)
			return
		}
		if sub.ProtocolVersion != observerproto.Version {
			reject(conn, observerproto.ErrProtocol, fmt.Sprintf("unsupported protocol_version %q", sub.ProtocolVersion), websocket.ClosePolicyViolation)
			return
		}

		if !sub.OmitLevel {
			b, err := json.Marshal(s.world.LevelMessage())
			if err != nil {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		}

		sid := fmt.Sprintf("O%d", s.nextID.Add(1))
		tickOut := make(chan []byte, 8)

		select {
		case s.world.ObserverJoin() <- world.ObserverJoinRequest{SessionID: sid, TickOut: tickOut}:
		default:
			reject(conn, observerproto.ErrBusy, "server busy", websocket.CloseTryAgainLater)
			return
		}
		if s.log != nil {
			s.log.Printf("observer %s joined from %s", sid, r.RemoteAddr)
		}
		defer func() {
			select {
			case s.world.ObserverLeave() <- sid:
			default:
				// World loop is stopping; nothing else to do.
			}
		}()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		writeErr := make(chan error, 1)
		go func() {
			for {
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case b, ok := <-tickOut:
					if !ok {
						writeErr <- nil
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						writeErr <- err
						return
					}
				}
			}
		}()

		// Reader loop: observers are read-only, so only drain until close.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		cancel()
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

		// Best-effort wait for the writer to stop so it doesn't outlive conn.
		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
		if s.log != nil {
			s.log.Printf("observer %s left", sid)
		}
	}
}

func reject(conn *websocket.Conn, code, message string, closeCode int) {
	b, _ := json.Marshal(observerproto.ErrorMsg{
		Type:            observerproto.TypeError,
		ProtocolVersion: observerproto.Version,
		Code:            code,
		Message:         message,
	})
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = conn.WriteMessage(websocket.TextMessage, b)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(closeCode, message), time.Now().Add(time.Second))
}

func (s *Server) allowed(r *http.Request) bool {
	return s.AllowRemote || isLoopbackRemote(r.RemoteAddr)
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
