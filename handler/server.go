package handler

import (
	"net/http"
	"time"

	"ewintr.nl/tubesum/client"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type ServerConfig struct {
	Transcriber    client.Transcriber
	Summarizer     client.Summarizer
	AllowedOrigins string
	Version        string
	Logger         *slog.Logger
}

type Server struct {
	router    *chi.Mux
	logger    *slog.Logger
	startTime time.Time
}

func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    cfg.Logger,
		startTime: time.Now(),
	}

	s.router.Use(RequestIDMiddleware())
	s.router.Use(RecoveryMiddleware(cfg.Logger))
	s.router.Use(LoggingMiddleware(cfg.Logger))

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		Error(w, http.StatusNotFound, "Not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	s.router.Get("/health", s.health(cfg.Version))

	s.router.Route("/api", func(r chi.Router) {
		r.Use(CORSMiddleware(cfg.AllowedOrigins))
		r.Method(http.MethodPost, "/transcript", NewTranscriptAPI(cfg.Transcriber, cfg.Logger))
		r.Method(http.MethodPost, "/summarize", NewSummarizeAPI(cfg.Summarizer, cfg.Logger))
	})

	page := NewPageAPI(cfg.Transcriber, cfg.Summarizer, cfg.Logger)
	s.router.Get("/", page.Form)
	s.router.Post("/", page.Submit)
	s.router.Post("/download", page.Download)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, struct {
			Status  string `json:"status"`
			Version string `json:"version"`
			UptimeS int64  `json:"uptime_s"`
		}{
			Status:  "ok",
			Version: version,
			UptimeS: int64(time.Since(s.startTime).Seconds()),
		})
	}
}
