// Package web serves the rhythmia status page, its JSON twin, the play
// history and a websocket live feed.
package web

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sweeney/rhythmia/internal/logic"
	"github.com/sweeney/rhythmia/internal/mqtt"
	"github.com/sweeney/rhythmia/internal/status"
)

// History limits for /history.json.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// History is the persisted event log, as provided by store.Store.
type History interface {
	Recent(limit int) ([]logic.Event, error)
	TrackPlays() (map[string]int, error)
}

// Server is the HTTP front of the daemon.
type Server struct {
	tracker *status.Tracker
	feed    *Feed
	history History
	srv     *http.Server
}

// New creates a Server reading from tracker. Live clients get a fresh
// snapshot every statusInterval (DefaultStatusInterval if <= 0).
func New(addr string, tracker *status.Tracker, statusInterval time.Duration) *Server {
	s := &Server{
		tracker: tracker,
		feed:    newFeed(tracker, statusInterval),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.html", s.handleIndex)
	mux.HandleFunc("/index.json", s.handleJSON)
	mux.HandleFunc("/history.json", s.handleHistory)
	mux.Handle("/ws", s.feed)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// SetHistory enables /history.json. Call before serving.
func (s *Server) SetHistory(h History) {
	s.history = h
}

// Feed is the live feed the main loop records player events to.
func (s *Server) Feed() *Feed {
	return s.feed
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	return s.srv.Serve(ln)
}

// Shutdown drops live clients, then stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.feed.Close()
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, s.tracker.Snapshot())
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(s.tracker.Snapshot()))
}

// historyJSON is the /history.json body.
type historyJSON struct {
	Events     []mqtt.PlayerPayload `json:"events"`
	TrackPlays map[string]int       `json:"track_plays"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}

	limit := DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = min(n, MaxHistoryLimit)
	}

	events, err := s.history.Recent(limit)
	if err != nil {
		log.Printf("web: history: %v", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	plays, err := s.history.TrackPlays()
	if err != nil {
		log.Printf("web: track plays: %v", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}

	body := historyJSON{
		Events:     make([]mqtt.PlayerPayload, 0, len(events)),
		TrackPlays: plays,
	}
	for _, e := range events {
		body.Events = append(body.Events, mqtt.NewPlayerPayload(e))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("web: write history: %v", err)
	}
}
