package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/chop-n-shop/pantry/internal/config"
	dbRedis "github.com/chop-n-shop/pantry/internal/db/redis"
	"github.com/chop-n-shop/pantry/internal/db/sqlite"
	"github.com/chop-n-shop/pantry/internal/domain"
	"github.com/chop-n-shop/pantry/internal/domain/eligibility"
	"github.com/chop-n-shop/pantry/internal/index"
	logpkg "github.com/chop-n-shop/pantry/internal/logger"
	"github.com/chop-n-shop/pantry/internal/metrics"
	catalogrepo "github.com/chop-n-shop/pantry/internal/repository/catalog"
	"github.com/chop-n-shop/pantry/internal/repository/embcache"
	groclistrepo "github.com/chop-n-shop/pantry/internal/repository/groclist"
	reciperepo "github.com/chop-n-shop/pantry/internal/repository/recipe"
	userrepo "github.com/chop-n-shop/pantry/internal/repository/user"
	"github.com/chop-n-shop/pantry/internal/transport/httpapi"
	openaiEmb "github.com/chop-n-shop/pantry/internal/transport/openai"
	groclistuc "github.com/chop-n-shop/pantry/internal/usecase/groclist"
	healthuc "github.com/chop-n-shop/pantry/internal/usecase/health"
	recipeuc "github.com/chop-n-shop/pantry/internal/usecase/recipe"
	rerankuc "github.com/chop-n-shop/pantry/internal/usecase/rerank"
	selectionuc "github.com/chop-n-shop/pantry/internal/usecase/selection"
	useruc "github.com/chop-n-shop/pantry/internal/usecase/user"
	"github.com/chop-n-shop/pantry/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting pantry API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_path", cfg.Database.Path),
	)

	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = store.Close() }()
	logger.Info("Connected to database")

	ctx := context.Background()

	// Optional redis-backed embedding cache
	var cache *dbRedis.Store
	if len(cfg.Cache.Addrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()

		if err := cache.WaitForReady(ctx, 30*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSelectionMetrics()

	embedder := buildEmbedder(cfg.Embedding, cache, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	catalogRepo := catalogrepo.New(store.DB())

	idx := loadOrBuildIndex(ctx, cfg.Index.ArtifactPath, catalogRepo, embedder, logger)
	metrics.IndexSize.Set(float64(idx.Len()))

	userRepo := userrepo.New(store.DB())
	recipeRepo := reciperepo.New(store.DB())
	listRepo := groclistrepo.New(store.DB())

	// Use case services
	userSvc := useruc.New(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)
	var reranker selectionuc.Reranker
	if cfg.Selection.Rerank {
		reranker = rerankuc.New(catalogRepo)
	}
	selSvc := selectionuc.New(
		idx, catalogRepo, recipeRepo, listRepo,
		eligibility.New(matchPolicy(cfg.Selection.MatchPolicy)),
		reranker, cfg.Index.TopK, logger,
	)
	recipeSvc := recipeuc.New(recipeRepo, selSvc, listRepo)
	listSvc := groclistuc.New(listRepo)

	// Pass nil interface (not typed nil pointer!) if the cache is not configured.
	var cachePinger healthuc.CachePinger
	if cache != nil {
		cachePinger = cache
	}
	healthSvc := healthuc.New(store, cachePinger, newEmbeddingHealthChecker(embedder), idx)

	server := httpapi.NewServer(userSvc, recipeSvc, listSvc, selSvc, catalogRepo, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(httpapi.JWTAuthMiddleware(userSvc))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached.
func buildEmbedder(cfg config.EmbeddingConfig, cache *dbRedis.Store, logger *zap.Logger) domain.Embedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Logger:     logger,
	})

	if cache == nil {
		return base
	}
	return embcache.New(base, cache, metrics.EmbeddingCacheTotal, logger)
}

// loadOrBuildIndex restores the catalog index from its artifact, falling
// back to a full rebuild from the catalog's stored embeddings. A rebuilt
// index is re-saved; a save failure costs only the next startup's rebuild.
func loadOrBuildIndex(
	ctx context.Context,
	artifactPath string,
	catalog *catalogrepo.Repo,
	embedder domain.Embedder,
	logger *zap.Logger,
) *index.Index {
	if _, statErr := os.Stat(artifactPath); statErr == nil {
		idx, err := index.Load(artifactPath, embedder, logger)
		if err == nil {
			logger.Info("Catalog index loaded from artifact",
				zap.String("path", artifactPath), zap.Int("items", idx.Len()))
			return idx
		}
		logger.Warn("Index artifact unusable, rebuilding from catalog",
			zap.String("path", artifactPath), zap.Error(err))
	}

	embedded, err := catalog.EmbeddedItems(ctx)
	if err != nil {
		logger.Fatal("Failed to read catalog embeddings", zap.Error(err))
	}
	entries := make([]index.Entry, len(embedded))
	for i, e := range embedded {
		entries[i] = index.Entry{ID: e.ID, Vector: e.Vector}
	}

	idx, err := index.Build(entries, embedder, logger)
	if err != nil {
		logger.Fatal("Failed to build catalog index", zap.Error(err))
	}

	if err := idx.Save(artifactPath); err != nil {
		logger.Warn("Failed to save index artifact", zap.String("path", artifactPath), zap.Error(err))
	}
	return idx
}

func matchPolicy(name string) eligibility.MatchPolicy {
	if name == "exact" {
		return eligibility.MatchExactToken
	}
	return eligibility.MatchSubstring
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
