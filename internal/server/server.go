// Package server provides the HTTP REST API for the creator studio.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/creator-studio/internal/config"
	"github.com/jonathan/creator-studio/internal/db"
	"github.com/jonathan/creator-studio/internal/server/middleware"
	"github.com/jonathan/creator-studio/internal/server/ratelimit"
	"github.com/jonathan/creator-studio/internal/stats"
	"github.com/jonathan/creator-studio/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	stats       *stats.Aggregator
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	pageSize    int
}

// Config holds server configuration
type Config struct {
	Port              int
	DatabaseURL       string
	RedisURL          string // empty disables the stats snapshot cache
	JWTSecret         string // empty falls back to JWT_SECRET
	PageSize          int
	StatsCacheTTLSecs int
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var statsOpts []stats.Option
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		ttl := time.Duration(cfg.StatsCacheTTLSecs) * time.Second
		statsOpts = append(statsOpts, stats.WithCache(stats.NewRedisCache(redis.NewClient(opts), ttl)))
	}

	jwtConfig, err := config.NewJWTConfig(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		db:          database,
		stats:       stats.NewAggregator(database, statsOpts...),
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		jwtService:  NewJWTService(jwtConfig),
		pageSize:    cfg.PageSize,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // CSV imports can be large
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router. Split out so tests can exercise the
// routing table without listening on a socket.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	authed := middleware.Auth(s.jwtService.AsTokenValidator())
	api := http.NewServeMux()

	// Creator registry
	api.HandleFunc("POST /creators", s.handleCreateCreator)
	api.HandleFunc("GET /creators", s.handleListCreators)
	api.HandleFunc("GET /creators/{id}", s.handleGetCreator)
	api.HandleFunc("PUT /creators/{id}", s.handleUpdateCreator)
	api.HandleFunc("POST /creators/{id}/active", s.handleSetCreatorActive)
	api.HandleFunc("DELETE /creators/{id}", s.handleDeleteCreator)

	// Style profile
	api.HandleFunc("GET /creators/{id}/style-profile", s.handleGetStyleProfile)
	api.HandleFunc("PUT /creators/{id}/style-profile", s.handleUpdateStyleProfile)
	api.HandleFunc("POST /creators/{id}/style-profile/emojis", s.handleAddEmoji)
	api.HandleFunc("DELETE /creators/{id}/style-profile/emojis", s.handleRemoveEmoji)
	api.HandleFunc("POST /creators/{id}/style-profile/separators", s.handleAddSeparator)
	api.HandleFunc("DELETE /creators/{id}/style-profile/separators", s.handleRemoveSeparator)
	api.HandleFunc("PUT /creators/{id}/style-profile/replacements", s.handleSetReplacement)
	api.HandleFunc("DELETE /creators/{id}/style-profile/replacements", s.handleRemoveReplacement)
	api.HandleFunc("PUT /creators/{id}/style-profile/abbreviations", s.handleSetAbbreviation)
	api.HandleFunc("DELETE /creators/{id}/style-profile/abbreviations", s.handleRemoveAbbreviation)
	api.HandleFunc("PUT /creators/{id}/style-profile/document", s.handleImportProfileDocument)
	api.HandleFunc("POST /style-profile/validate-document", s.handleValidateProfileDocument)

	// Style example corpus
	api.HandleFunc("POST /creators/{id}/style-examples", s.handleCreateStyleExample)
	api.HandleFunc("GET /creators/{id}/style-examples", s.handleListStyleExamples)
	api.HandleFunc("GET /style-examples/{id}", s.handleGetStyleExample)
	api.HandleFunc("PUT /style-examples/{id}", s.handleUpdateStyleExample)
	api.HandleFunc("DELETE /style-examples/{id}", s.handleDeleteStyleExample)
	api.HandleFunc("POST /creators/{id}/style-examples/import", s.handleImportStyleExamples)
	api.HandleFunc("GET /creators/{id}/style-examples/export", s.handleExportStyleExamples)

	// Response example corpus
	api.HandleFunc("POST /creators/{id}/response-examples", s.handleCreateResponseExample)
	api.HandleFunc("GET /creators/{id}/response-examples", s.handleListResponseExamples)
	api.HandleFunc("GET /response-examples/{id}", s.handleGetResponseExample)
	api.HandleFunc("PUT /response-examples/{id}", s.handleUpdateResponseExample)
	api.HandleFunc("DELETE /response-examples/{id}", s.handleDeleteResponseExample)
	api.HandleFunc("POST /creators/{id}/response-examples/import", s.handleImportResponseExamples)
	api.HandleFunc("GET /creators/{id}/response-examples/export", s.handleExportResponseExamples)

	// Statistics
	api.HandleFunc("GET /creators/{id}/stats", s.handleCreatorStats)
	api.HandleFunc("POST /stats/bulk", s.handleBulkStats)

	mux.Handle("/", authed(api))
	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status. With a database wired we ping
// it, so load balancers see a 503 while the backend is unreachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.respondError(w, &types.ErrUnavailable{Op: "database", Cause: err})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// validationResponse writes a 400 carrying the per-field violations so
// clients can surface every correction at once.
func (s *Server) validationResponse(w http.ResponseWriter, verr *types.ValidationError) {
	s.jsonResponse(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": verr.Fields,
	})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
