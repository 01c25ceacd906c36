package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Aprax14/bitchess/annotate"
	gm "github.com/Aprax14/bitchess/chessmg"
	"github.com/Aprax14/bitchess/engine"
	"github.com/Aprax14/bitchess/render"
)

var errBadRequest = errors.New("bad request")

// Config bounds what a client may ask for.
type Config struct {
	MaxDepth  int
	MaxQDepth int
	Workers   int
	// AccessLog receives one line per request; nil disables it.
	AccessLog io.Writer
}

// AnalyzeRequest is the /ws request message; /analyze takes the same fields
// as query parameters.
type AnalyzeRequest struct {
	FEN    string `json:"fen"`
	Depth  int    `json:"depth"`
	QDepth int    `json:"qdepth"`
}

// Analysis is the final result of one search.
type Analysis struct {
	FEN       string   `json:"fen"`
	BestMove  string   `json:"bestmove"`
	Score     int32    `json:"score"`
	ScoreText string   `json:"score_text"`
	PV        []string `json:"pv"`
	SAN       string   `json:"san"`
	Nodes     uint64   `json:"nodes"`
}

// wsMessage is one frame on the /ws stream.
type wsMessage struct {
	Type   string    `json:"type"` // "root", "result" or "error"
	Move   string    `json:"move,omitempty"`
	Score  int32     `json:"score,omitempty"`
	PV     []string  `json:"pv,omitempty"`
	Index  int       `json:"index,omitempty"`
	Exact  bool      `json:"exact,omitempty"`
	Result *Analysis `json:"result,omitempty"`
	Error  string    `json:"error,omitempty"`
}

type Application struct {
	router   *mux.Router
	upgrader websocket.Upgrader
	cfg      Config
	log      zerolog.Logger
}

func NewApplication(cfg Config, log zerolog.Logger) *Application {
	app := &Application{
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		cfg: cfg,
		log: log.With().Str("component", "analysisd").Logger(),
	}
	if cfg.AccessLog != nil {
		app.router.Use(func(next http.Handler) http.Handler {
			return handlers.LoggingHandler(cfg.AccessLog, next)
		})
	}
	app.router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	app.router.HandleFunc("/analyze", app.analyzeHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/board.svg", app.boardHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/ws", app.wsHandler)
	return app
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// prepare validates a request and builds its searcher.
func (app *Application) prepare(req AnalyzeRequest) (gm.Board, *engine.Searcher, error) {
	if req.FEN == "" {
		req.FEN = gm.StartFEN
	}
	b, err := gm.ParseFEN(req.FEN)
	if err != nil {
		return gm.Board{}, nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if req.Depth == 0 {
		req.Depth = min(engine.DefaultDepth, app.cfg.MaxDepth)
	}
	if req.Depth < 1 || req.Depth > app.cfg.MaxDepth {
		return gm.Board{}, nil, fmt.Errorf("%w: depth %d outside 1..%d", errBadRequest, req.Depth, app.cfg.MaxDepth)
	}
	if req.QDepth < 0 || req.QDepth > app.cfg.MaxQDepth {
		return gm.Board{}, nil, fmt.Errorf("%w: qdepth %d outside 0..%d", errBadRequest, req.QDepth, app.cfg.MaxQDepth)
	}
	s := engine.NewSearcher(
		engine.WithDepth(req.Depth),
		engine.WithQuiescenceDepth(req.QDepth),
		engine.WithWorkers(max(app.cfg.Workers, 1)),
		engine.WithLogger(app.log),
	)
	return b, s, nil
}

func (app *Application) analysis(b gm.Board, res engine.Result) *Analysis {
	a := &Analysis{
		FEN:       b.FEN(),
		Score:     res.Score,
		ScoreText: engine.FormatScore(res.Score),
		PV:        moveStrings(res.PV),
		Nodes:     res.Stats.Nodes + res.Stats.QuiescenceNodes,
	}
	if !res.Move.IsZero() {
		a.BestMove = res.Move.String()
	}
	san, err := annotate.Line(b, res.PV)
	if err != nil {
		app.log.Warn().Err(err).Str("fen", a.FEN).Msg("annotating principal variation")
	}
	a.SAN = san
	return a
}

func moveStrings(moves []gm.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", errBadRequest, key, v)
	}
	return n, nil
}

func (app *Application) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	req := AnalyzeRequest{FEN: r.URL.Query().Get("fen")}
	var err error
	if req.Depth, err = queryInt(r, "depth"); err == nil {
		req.QDepth, err = queryInt(r, "qdepth")
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, s, err := app.prepare(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	res, err := s.SearchParallel(r.Context(), b)
	if err != nil {
		app.log.Error().Err(err).Str("fen", b.FEN()).Msg("search failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, app.analysis(b, res))
}

func (app *Application) boardHandler(w http.ResponseWriter, r *http.Request) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		fen = gm.StartFEN
	}
	b, err := gm.ParseFEN(fen)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts := render.Options{Flip: r.URL.Query().Get("flip") == "1"}
	if s := r.URL.Query().Get("move"); s != "" {
		m, err := b.ParseMove(s)
		if err != nil || !b.IsLegal(m) {
			http.Error(w, fmt.Sprintf("move %q is not legal here", s), http.StatusBadRequest)
			return
		}
		opts.Highlight = m
		b = b.Apply(m)
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	render.Board(w, b, opts)
}

// wsHandler serves analysis requests on one connection, streaming every root
// result as it completes and then the final analysis.
func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()
	log := app.log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	log.Debug().Msg("websocket connected")

	for {
		var req AnalyzeRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("websocket read")
			}
			return
		}
		if err := app.stream(r, conn, req); err != nil {
			log.Debug().Err(err).Msg("websocket write")
			return
		}
	}
}

func (app *Application) stream(r *http.Request, conn *websocket.Conn, req AnalyzeRequest) error {
	b, s, err := app.prepare(req)
	if err != nil {
		return conn.WriteJSON(wsMessage{Type: "error", Error: err.Error()})
	}
	results, wait := s.Stream(r.Context(), b)
	var writeErr error
	for rr := range results {
		if writeErr != nil {
			continue
		}
		writeErr = conn.WriteJSON(wsMessage{
			Type:  "root",
			Move:  rr.Move.String(),
			Score: rr.Score,
			PV:    moveStrings(rr.PV),
			Index: rr.Index,
			Exact: rr.Exact,
		})
	}
	res, err := wait()
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		return conn.WriteJSON(wsMessage{Type: "error", Error: err.Error()})
	}
	return conn.WriteJSON(wsMessage{Type: "result", Result: app.analysis(b, res)})
}
