package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"

	"finance-insights/database/insights"
	"finance-insights/database/investments"
)

// Server handles HTTP API requests over the investments and insights tables
type Server struct {
	investments *investments.Repository
	insights    *insights.Repository
}

// NewServer creates a new API server instance.
// Decimal amounts are rendered as JSON numbers.
func NewServer(investmentsRepo *investments.Repository, insightsRepo *insights.Repository) *Server {
	decimal.MarshalJSONWithoutQuotes = true

	return &Server{
		investments: investmentsRepo,
		insights:    insightsRepo,
	}
}

// Router builds the route table with logging, recovery, request ids and CORS
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/investments", func(r chi.Router) {
		r.Get("/", s.handleGetInvestments)
		r.Post("/", s.handleCreateInvestment)
	})

	r.Route("/investment-status", func(r chi.Router) {
		r.Get("/", s.handleGetInvestmentStatuses)
		r.Post("/", s.handleCreateInvestmentStatus)
	})

	r.Get("/insights", s.handleGetInsights)

	return r
}

// Start serves on the given port until ctx is cancelled
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 API Server starting on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("🛑 Shutdown signal received, stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		log.Println("✅ API server stopped")
		return nil
	}
}
