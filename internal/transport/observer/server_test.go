package observer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"starhold.gg/internal/campaign"
	"starhold.gg/internal/catalog"
	"starhold.gg/internal/protocol"
	"starhold.gg/internal/session"
)

func newTestServer(t *testing.T) (*Server, *session.Session) {
	t.Helper()
	cats := &catalog.Catalogs{
		Items:      catalog.MakeItems(nil),
		Traits:     catalog.MakeTraits(nil),
		Chassis:    catalog.MakeChassis([]catalog.ChassisDef{{ID: "vagrant", Name: "Vagrant", MaxHull: 40, Cargo: 100}}),
		Factions:   catalog.MakeFactions(nil),
		Encounters: catalog.MakeEncounters(nil),
	}
	c, err := campaign.New(campaign.Config{
		Seed:         1,
		StartingCrew: []campaign.StarterCrew{{Name: "Vex", Role: "soldier"}},
	}, cats, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sess := session.New(c, nil)
	sess.Start()
	t.Cleanup(sess.Close)
	return NewServer(sess, nil, nil), sess
}

func TestStateHandler(t *testing.T) {
	srv, sess := newTestServer(t)
	sess.DoSync(func(c *campaign.Campaign) { c.AdvanceClock(2) })

	ts := httptest.NewServer(srv.StateHandler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var msg protocol.StateMsg
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != protocol.TypeState || msg.Summary.Day != 2 {
		t.Fatalf("state = %+v", msg)
	}
}

func TestStateHandlerRejectsNonGet(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.StateHandler())
	defer ts.Close()

	resp, err := http.Post(ts.URL, "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestSavesHandlerEmptyWithoutIndex(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.SavesHandler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var recs []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("records = %d, want 0", len(recs))
	}
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestWSHandshakeAndEventFeed(t *testing.T) {
	srv, sess := newTestServer(t)
	ts := httptest.NewServer(srv.WSHandler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	if err := conn.WriteJSON(protocol.SubscribeMsg{Type: protocol.TypeSubscribe, ProtocolVersion: protocol.Version}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	var state protocol.StateMsg
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("read state: %v", err)
	}
	if state.Type != protocol.TypeState || len(state.Summary.Crew) != 1 {
		t.Fatalf("state = %+v", state)
	}

	sess.DoSync(func(c *campaign.Campaign) { c.AdvanceClock(1) })

	var ev struct {
		Type string             `json:"type"`
		Kind campaign.EventKind `json:"kind"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != protocol.TypeEvent || ev.Kind != campaign.KindDayAdvanced {
		t.Fatalf("event = %+v", ev)
	}
}

func TestWSRejectsBadHandshake(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.WSHandler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	if err := conn.WriteJSON(protocol.SubscribeMsg{Type: "HELLO", ProtocolVersion: protocol.Version}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("connection survived bad handshake")
	}
}

func TestIsLoopbackRemote(t *testing.T) {
	for addr, want := range map[string]bool{
		"127.0.0.1:5500": true,
		"[::1]:5500":     true,
		"10.0.0.4:5500":  false,
		"example.com:80": false,
	} {
		if got := isLoopbackRemote(addr); got != want {
			t.Fatalf("isLoopbackRemote(%q) = %v, want %v", addr, got, want)
		}
	}
}
