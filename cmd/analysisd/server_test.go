package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	gm "github.com/Aprax14/bitchess/chessmg"
	"github.com/Aprax14/bitchess/engine"
)

const (
	mateInOneFEN = "7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1"
	italianFEN   = "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	app := NewApplication(Config{MaxDepth: 3, MaxQDepth: 2, Workers: 2}, zerolog.Nop())
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyzeFindsMate(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/analyze?depth=2&qdepth=1&fen=" + url.QueryEscape(mateInOneFEN))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var a Analysis
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		t.Fatal(err)
	}
	if a.Score != engine.MateScore || a.ScoreText != "mate white" {
		t.Fatalf("score %d (%s)", a.Score, a.ScoreText)
	}
	if a.BestMove != "g6e8" && a.BestMove != "g6g7" {
		t.Fatalf("bestmove %s", a.BestMove)
	}
	if len(a.PV) == 0 || a.PV[0] != a.BestMove || !strings.HasSuffix(a.SAN, "#") {
		t.Fatalf("pv %v san %q", a.PV, a.SAN)
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)
	for _, q := range []string{
		"fen=" + url.QueryEscape("8/8/8 w - - 0 1"),
		"depth=9",
		"depth=abc",
		"qdepth=-1",
	} {
		resp, err := http.Get(srv.URL + "/analyze?" + q)
		if err != nil {
			t.Fatal(err)
		}
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest || body["error"] == "" {
			t.Fatalf("%s: status %d body %v", q, resp.StatusCode, body)
		}
	}
}

func TestBoardSVG(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/board.svg?move=e2e4")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp2, err := http.Get(srv.URL + "/board.svg?move=e2e5")
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Fatalf("illegal move accepted: %d", resp2.StatusCode)
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestWebsocketStreamsRootResults(t *testing.T) {
	srv := newTestServer(t)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(AnalyzeRequest{FEN: italianFEN, Depth: 1}); err != nil {
		t.Fatal(err)
	}
	roots := map[string]bool{}
	var final *Analysis
	for final == nil {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatal(err)
		}
		switch msg.Type {
		case "root":
			roots[msg.Move] = true
		case "result":
			final = msg.Result
		default:
			t.Fatalf("unexpected message %+v", msg)
		}
	}
	b := gm.MustParseFEN(italianFEN)
	if len(roots) != len(b.LegalMoves()) {
		t.Fatalf("streamed %d root moves want %d", len(roots), len(b.LegalMoves()))
	}
	if !roots[final.BestMove] {
		t.Fatalf("best move %s was never streamed", final.BestMove)
	}

	// A bad request on the same connection gets an error frame.
	if err := conn.WriteJSON(AnalyzeRequest{FEN: "bad"}); err != nil {
		t.Fatal(err)
	}
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "error" || msg.Error == "" {
		t.Fatalf("got %+v", msg)
	}
}
