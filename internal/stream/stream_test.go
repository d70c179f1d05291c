package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/san-kum/neuralgrid/internal/field"
	"github.com/san-kum/neuralgrid/internal/sim"
)

func newSim(w, h float64, seed int64) *sim.Simulator {
	rng := rand.New(rand.NewSource(seed))
	return sim.New(field.New(w, h, rng), rng)
}

func TestSnapshot(t *testing.T) {
	s := newSim(600, 400, 1)
	s.Apply(sim.Event{Kind: sim.Burst, X: 10, Y: 10})
	s.Step()

	fr := Snapshot(s)
	f := s.Field()
	if len(fr.P) != f.Len() || fr.Width != 600 || fr.Height != 400 || fr.Frame != 1 {
		t.Fatalf("frame %d %vx%v with %d particles", fr.Frame, fr.Width, fr.Height, len(fr.P))
	}
	if len(fr.L) != f.LinkCount() {
		t.Errorf("links = %d, want %d", len(fr.L), f.LinkCount())
	}
	if len(fr.B) != field.BurstSparks {
		t.Errorf("sparks = %d", len(fr.B))
	}
	if math.Abs(fr.P[0][0]-f.Particles[0].X) > 0.05 {
		t.Errorf("x = %v, want about %v", fr.P[0][0], f.Particles[0].X)
	}
	for _, l := range fr.L {
		if l[0] >= l[1] || l[2] < 0 || l[2] > field.DefaultLinkOpacity {
			t.Fatalf("bad link %v", l)
		}
	}
}

func TestEncodeEmptyFieldUsesArrays(t *testing.T) {
	data, err := Encode(newSim(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"p":[]`) || !strings.Contains(string(data), `"l":[]`) {
		t.Errorf("empty field encoded as %s", data)
	}
}

func TestClientMessageEvent(t *testing.T) {
	tests := []struct {
		msg  ClientMessage
		want sim.Event
		err  bool
	}{
		{ClientMessage{"pointer", 1, 2}, sim.Event{Kind: sim.PointerMove, X: 1, Y: 2}, false},
		{ClientMessage{"burst", 5, 6}, sim.Event{Kind: sim.Burst, X: 5, Y: 6}, false},
		{ClientMessage{"resize", 800, 600}, sim.Event{Kind: sim.Resize, X: 800, Y: 600}, false},
		{ClientMessage{"resize", 0, 600}, sim.Event{}, true},
		{ClientMessage{"resize", 1e9, 600}, sim.Event{}, true},
		{ClientMessage{"pointer", math.NaN(), 0}, sim.Event{}, true},
		{ClientMessage{"teleport", 0, 0}, sim.Event{}, true},
	}
	for _, tt := range tests {
		got, err := tt.msg.Event()
		if tt.err {
			if !errors.Is(err, ErrBadMessage) {
				t.Errorf("%+v: err = %v, want ErrBadMessage", tt.msg, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%+v: got %+v, %v", tt.msg, got, err)
		}
	}
}

func TestBurstFloodKeepsFramesBounded(t *testing.T) {
	s := newSim(800, 600, 3)
	for i := 0; i < 5000; i++ {
		e, err := ClientMessage{Type: "burst", X: float64(i % 800), Y: 300}.Event()
		if err != nil {
			t.Fatal(err)
		}
		s.Apply(e)
	}
	s.Step()

	fr := Snapshot(s)
	if len(fr.B) != field.DefaultMaxSparks {
		t.Errorf("sparks = %d, want %d", len(fr.B), field.DefaultMaxSparks)
	}
	data, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) > 64<<10 {
		t.Errorf("frame is %d bytes after a burst flood", len(data))
	}
}

func TestHubDropsForSlowClients(t *testing.T) {
	h := NewHub(2)
	fast, slow := h.register(), h.register()

	for i := 0; i < 3; i++ {
		h.Broadcast([]byte{byte(i)})
		<-fast.send
	}
	if slow.dropped.Load() != 1 || fast.dropped.Load() != 0 {
		t.Errorf("dropped fast=%d slow=%d", fast.dropped.Load(), slow.dropped.Load())
	}
	if got := <-slow.send; got[0] != 0 {
		t.Errorf("slow client got frame %d first, want 0", got[0])
	}

	h.unregister(slow)
	h.unregister(slow)
	if h.Len() != 1 {
		t.Errorf("Len = %d", h.Len())
	}
	h.Close()
	if _, ok := <-fast.send; ok {
		t.Error("Close left queue open")
	}
}

func TestServerStreamsAndAcceptsInput(t *testing.T) {
	s := newSim(800, 600, 2)
	srv := NewServer(s, 120, log.New(io.Discard))

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(ClientMessage{Type: "burst", X: 400, Y: 300}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(ClientMessage{Type: "resize", X: 1000, Y: 700}); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var fr Frame
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("no frame with the burst and resize applied: %v", err)
		}
		if err := json.Unmarshal(data, &fr); err != nil {
			t.Fatal(err)
		}
		if len(fr.B) > 0 && fr.Width == 1000 {
			break
		}
	}
	if len(fr.P) != 53 {
		t.Errorf("particles = %d, want floor(800/15)", len(fr.P))
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run = %v", err)
	}
}

func TestServerServesPage(t *testing.T) {
	srv := NewServer(newSim(100, 100, 1), 30, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<canvas") {
		t.Errorf("status %d body %.80q", resp.StatusCode, body)
	}
}
