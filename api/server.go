// Package api provides the HTTP REST API server for StockPulse.
//
// It exposes the news aggregation endpoints (general and portfolio) and
// the sentiment analysis endpoint consumed by the dashboard.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sharadvm/stockpulse/internal/analyst"
	"github.com/sharadvm/stockpulse/internal/config"
	"github.com/sharadvm/stockpulse/internal/llm"
	"github.com/sharadvm/stockpulse/internal/pipeline"
	"github.com/sharadvm/stockpulse/internal/sources"
	"github.com/sharadvm/stockpulse/pkg/models"
	"github.com/sharadvm/stockpulse/pkg/utils"
)

// Version is stamped at build time via ldflags.
var Version = "dev"

// Server is the HTTP API server.
type Server struct {
	router    chi.Router
	cfg       *config.Config
	general   *pipeline.General
	portfolio *pipeline.Portfolio
	analyzer  *analyst.Analyzer
	llmRouter *llm.Router // nil when no oracle credentials are configured
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) (*Server, error) {
	fetcher := sources.NewFetcher(cfg.Fetch)

	srv := &Server{
		cfg:       cfg,
		general:   pipeline.NewGeneral(fetcher, cfg.General),
		portfolio: pipeline.NewPortfolio(fetcher, cfg.Portfolio),
	}

	// The oracle is optional: without credentials the analyzer runs but
	// every call fails over to the local heuristic path.
	lr, err := llm.NewRouterFromConfig(cfg)
	if err != nil {
		log.Printf("api: no LLM providers configured, analysis will use local fallbacks: %v", err)
		srv.analyzer = analyst.New(unavailableOracle{}, cfg.LLM, cfg.Analyst)
	} else {
		srv.llmRouter = lr
		srv.analyzer = analyst.New(lr, cfg.LLM, cfg.Analyst)
	}

	srv.router = srv.buildRouter()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// News endpoints. These return the exact payload shapes the dashboard
	// consumes at the top level, not the APIResponse envelope.
	r.Route("/api", func(r chi.Router) {
		r.Get("/news", s.handleNews)
		r.Post("/portfolio-news", s.handlePortfolioNews)
		r.Post("/analyze", s.handleAnalyze)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope for auxiliary endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorMessage is the body of a 4xx/5xx from the news endpoints.
type ErrorMessage struct {
	Message         string `json:"message"`
	Error           string `json:"error,omitempty"`
	FallbackMessage string `json:"fallbackMessage,omitempty"`
}

// PortfolioNewsRequest is the body for POST /api/portfolio-news.
type PortfolioNewsRequest struct {
	Portfolio models.Portfolio `json:"portfolio"`
}

// AnalyzeRequest is the body for POST /api/analyze.
type AnalyzeRequest struct {
	News      []models.Article `json:"news"`
	Portfolio models.Portfolio `json:"portfolio"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	providers := []string{}
	if s.llmRouter != nil {
		providers = s.llmRouter.ProviderNames()
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "ok",
			"version":   Version,
			"time_ist":  utils.NowIST().Format("02/01/2006 15:04:05"),
			"providers": providers,
		},
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	result := s.general.Run(ctx)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePortfolioNews(w http.ResponseWriter, r *http.Request) {
	var req PortfolioNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Portfolio data required")
		return
	}
	if len(req.Portfolio) == 0 {
		writeMessage(w, http.StatusBadRequest, "Portfolio data required")
		return
	}
	if err := req.Portfolio.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("invalid portfolio: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	result := s.portfolio.Run(ctx, req.Portfolio)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing news or portfolio data")
		return
	}
	// Absent fields are rejected; present-but-empty arrays are a valid
	// request and analyze to an empty batch.
	if req.News == nil || req.Portfolio == nil {
		writeMessage(w, http.StatusBadRequest, "Missing news or portfolio data")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	result, err := s.analyzer.Run(ctx, req.News)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorMessage{
			Message:         "Error analyzing news",
			Error:           err.Error(),
			FallbackMessage: "Analysis service temporarily unavailable. Please try again later.",
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorMessage{Message: msg})
}

// unavailableOracle stands in when no LLM credentials are configured, so
// every analysis degrades to the placeholder/heuristic path instead of the
// server refusing to start.
type unavailableOracle struct{}

func (unavailableOracle) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Response, error) {
	return nil, llm.ErrNoProviders
}
