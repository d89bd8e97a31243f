// Package admin exposes the playback controller over HTTP: frame seeks
// return PNGs, navigation posts move the cursor, status reports the
// timeline.
package admin

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"strconv"
	"time"

	"roboreplay/internal/media"
	"roboreplay/internal/playback"
)

// Server serves playback control endpoints.
type Server struct {
	Controller *playback.Controller
	mux        *http.ServeMux
}

// NewServer builds the route table around a controller.
func NewServer(c *playback.Controller) *Server {
	s := &Server{Controller: c, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /frame", s.handleFrame)
	s.mux.HandleFunc("POST /next", s.handleNav(s.Controller.Next))
	s.mux.HandleFunc("POST /prev", s.handleNav(s.Controller.Prev))
	s.mux.HandleFunc("POST /begin", s.handleNav(s.Controller.Begin))
	s.mux.HandleFunc("POST /end", s.handleNav(s.Controller.End))
	s.mux.HandleFunc("POST /toggle-play", s.handleTogglePlay)
	s.mux.HandleFunc("GET /status", s.handleStatus)
}

// Handler returns the route table, usable directly in tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return srv.ListenAndServe()
}

func (s *Server) writeFrame(w http.ResponseWriter, frame image.Image) {
	data, err := media.EncodePNG(frame)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	t := 0.0
	if raw := r.URL.Query().Get("t"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "invalid t", http.StatusBadRequest)
			return
		}
		t = parsed
	}
	s.writeFrame(w, s.Controller.Goto(t))
}

func (s *Server) handleNav(nav func() image.Image) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeFrame(w, nav())
	}
}

func (s *Server) handleTogglePlay(w http.ResponseWriter, r *http.Request) {
	playing := s.Controller.TogglePlay()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"playing": playing})
}

// Status summarizes the playback timeline.
type Status struct {
	Cursor   int     `json:"cursor"`
	Time     float64 `json:"time"`
	Steps    int     `json:"steps"`
	Duration float64 `json:"duration"`
	Playing  bool    `json:"playing"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	log := s.Controller.Scrubber().Log()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Status{
		Cursor:   s.Controller.Cursor(),
		Time:     s.Controller.Time(),
		Steps:    log.Len(),
		Duration: log.Duration(),
		Playing:  s.Controller.Playing(),
	})
}
