package stream

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/san-kum/neuralgrid/internal/sim"
)

//go:embed static
var staticFiles embed.FS

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMessage = 512

	// input backlog shared by all clients
	eventQueue = 64
)

type Server struct {
	sim      *sim.Simulator
	fps      int
	hub      *Hub
	events   chan sim.Event
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewServer(s *sim.Simulator, fps int, logger *log.Logger) *Server {
	return &Server{
		sim:    s,
		fps:    fps,
		hub:    NewHub(DefaultQueue),
		events: make(chan sim.Event, eventQueue),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) Handler() http.Handler {
	static, _ := fs.Sub(staticFiles, "static")
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// Run drives the simulator until ctx is done, broadcasting every frame.
// It is the only goroutine that touches the simulator.
func (s *Server) Run(ctx context.Context) error {
	defer s.hub.Close()
	err := s.sim.RunLive(ctx, s.fps, s.events, func(sm *sim.Simulator) {
		if s.hub.Len() == 0 {
			return
		}
		data, err := Encode(sm)
		if err != nil {
			s.logger.Error("encode frame", "frame", sm.Frame(), "err", err)
			return
		}
		if n := s.hub.Broadcast(data); n > 0 {
			s.logger.Debug("slow clients dropped frame", "frame", sm.Frame(), "clients", n)
		}
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// ListenAndServe serves HTTP on addr and runs the frame loop until ctx is
// cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	loop := make(chan error, 1)
	go func() { loop <- s.Run(ctx) }()

	httpErr := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", addr, "fps", s.fps)
		httpErr <- srv.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-httpErr:
	case err = <-loop:
	}
	cancel()

	shutdown, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if serr := srv.Shutdown(shutdown); serr != nil && err == nil {
		err = serr
	}
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return err
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := s.hub.register()
	s.logger.Info("client connected", "remote", r.RemoteAddr, "clients", s.hub.Len())

	go s.writePump(conn, c)
	s.readPump(conn)

	s.hub.unregister(c)
	s.logger.Info("client disconnected", "remote", r.RemoteAddr, "dropped", c.dropped.Load())
}

func (s *Server) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessage)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("read", "err", err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Debug("bad message", "err", err)
			continue
		}
		e, err := msg.Event()
		if err != nil {
			s.logger.Debug("bad message", "err", err)
			continue
		}
		select {
		case s.events <- e:
		default:
			s.logger.Debug("input backlog full, event dropped", "kind", e.Kind)
		}
	}
}

// writePump owns all writes to conn. It exits when the hub closes the
// client queue or a write fails.
func (s *Server) writePump(conn *websocket.Conn, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
