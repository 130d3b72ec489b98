// Package battleapi serves the battle turn resolver over HTTP.
package battleapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/studybuddy/internal/battle"
)

// MessageMissingData is the error body for incomplete resolve-turn requests.
const MessageMissingData = "Missing required data"

// Options configures a Server.
type Options struct {
	// CORSOrigins lists allowed origins. "*" allows any.
	CORSOrigins    []string
	RequestTimeout time.Duration
	Logger         *slog.Logger
	// Registry receives the server's metrics and backs /metrics. A fresh
	// registry is used when nil.
	Registry *prometheus.Registry
}

// Server is the battle HTTP API.
type Server struct {
	opts    Options
	logger  *slog.Logger
	metrics *Metrics
	reg     *prometheus.Registry
}

// NewServer creates a Server.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	return &Server{
		opts:    opts,
		logger:  opts.Logger,
		metrics: NewMetrics(opts.Registry),
		reg:     opts.Registry,
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(s.cors)
	r.Use(s.observe)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	r.Post(battle.ResolveTurnPath, s.handleResolveTurn)

	return r
}

// resolveTurnBody uses pointers so absent keys can be told apart from
// zero values.
type resolveTurnBody struct {
	WasAnswerCorrect *bool `json:"wasAnswerCorrect"`
	PlayerHealth     *int  `json:"playerHealth"`
	BossHealth       *int  `json:"bossHealth"`
}

func (s *Server) handleResolveTurn(w http.ResponseWriter, r *http.Request) {
	var body resolveTurnBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
		body.WasAnswerCorrect == nil || body.PlayerHealth == nil || body.BossHealth == nil {
		s.metrics.BadRequests.Inc()
		s.logger.Warn("rejected resolve-turn request",
			"request_id", middleware.GetReqID(r.Context()), "error", err)
		writeError(w, http.StatusBadRequest, MessageMissingData)
		return
	}

	resp := battle.ApplyRules(battle.ResolveRequest{
		WasAnswerCorrect: *body.WasAnswerCorrect,
		PlayerHealth:     *body.PlayerHealth,
		BossHealth:       *body.BossHealth,
	})
	s.metrics.TurnsResolved.WithLabelValues(resp.Target).Inc()
	s.logger.Debug("turn resolved",
		"request_id", middleware.GetReqID(r.Context()),
		"target", resp.Target,
		"player_health", resp.NewPlayerHealth,
		"boss_health", resp.NewBossHealth,
	)
	writeJSON(w, http.StatusOK, resp)
}

// observe records request duration against the matched route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.RequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

// cors allows browser clients from the configured origins.
func (s *Server) cors(next http.Handler) http.Handler {
	anyOrigin := slices.Contains(s.opts.CORSOrigins, "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case anyOrigin:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.opts.CORSOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
