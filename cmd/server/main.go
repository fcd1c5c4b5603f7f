package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sattwik999/Trust-Score-Module/internal/audit"
	"github.com/Sattwik999/Trust-Score-Module/internal/capability"
	"github.com/Sattwik999/Trust-Score-Module/internal/identity/offline"
	"github.com/Sattwik999/Trust-Score-Module/internal/jwttoken"
	"github.com/Sattwik999/Trust-Score-Module/internal/platform/config"
	"github.com/Sattwik999/Trust-Score-Module/internal/platform/httpserver"
	"github.com/Sattwik999/Trust-Score-Module/internal/platform/logger"
	platformredis "github.com/Sattwik999/Trust-Score-Module/internal/platform/redis"
	"github.com/Sattwik999/Trust-Score-Module/internal/ratelimit"
	"github.com/Sattwik999/Trust-Score-Module/internal/storage/files"
	"github.com/Sattwik999/Trust-Score-Module/internal/submission"
	submissionhandler "github.com/Sattwik999/Trust-Score-Module/internal/submission/handler"
	"github.com/Sattwik999/Trust-Score-Module/internal/submission/metrics"
	httptransport "github.com/Sattwik999/Trust-Score-Module/internal/transport/http"
	"github.com/Sattwik999/Trust-Score-Module/internal/verification/document"
	"github.com/Sattwik999/Trust-Score-Module/internal/verification/face"
	"github.com/Sattwik999/Trust-Score-Module/internal/verification/narrative"
	adminmw "github.com/Sattwik999/Trust-Score-Module/pkg/platform/middleware/admin"
)

// main wires dependencies and owns the server lifecycle. Business logic lives
// in the internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New()
	ctx := context.Background()

	// Record store: Postgres when configured, in-memory otherwise.
	var store submission.Store
	var checks = map[string]httptransport.HealthChecker{}
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("database pool setup failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pgStore, err := submission.NewPostgresStore(ctx, pool)
		if err != nil {
			log.Error("database schema setup failed", "error", err)
			os.Exit(1)
		}
		store = pgStore
		checks["database"] = pgStore
		log.Info("record store ready", "backend", "postgres")
	} else {
		store = submission.NewInMemoryStore()
		log.Info("record store ready", "backend", "memory")
	}

	// Optional Redis OCR cache.
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks["redis"] = redisClient
		log.Info("redis cache ready")
	}

	// Capability registry: real model sidecar or deterministic mocks.
	registry := buildRegistry(cfg)
	if err := registry.Validate(); err != nil {
		log.Error("capability registry invalid", "error", err)
		os.Exit(1)
	}

	extractor := registry.Extractor
	if redisClient != nil {
		extractor = capability.NewCachingExtractor(extractor, redisClient.Client, cfg.Redis.CacheTTL, log)
	}

	// Offline KYC verifier; no key means signature checks are skipped.
	var issuerKey []byte
	if cfg.IssuerKeyPath != "" {
		issuerKey, err = os.ReadFile(cfg.IssuerKeyPath)
		if err != nil {
			log.Error("issuer key read failed", "path", cfg.IssuerKeyPath, "error", err)
			os.Exit(1)
		}
	}
	offlineVerifier, err := offline.New(issuerKey, log)
	if err != nil {
		log.Error("offline verifier setup failed", "error", err)
		os.Exit(1)
	}

	fileStore, err := files.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Error("upload dir setup failed", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	svc := submission.NewService(
		store,
		fileStore,
		face.NewScorer(registry.Face, registry.Liveness, extractor, offlineVerifier, cfg.FaceThreshold, log),
		document.NewScorer(extractor, log),
		narrative.NewScorer(registry.ZeroShot, registry.Sentiment, log),
		audit.NewPublisher(audit.NewInMemoryStore()),
		log,
		submission.WithMetrics(metrics.New()),
		submission.WithStageTimeout(cfg.StageTimeout),
		submission.WithFaceMatchThreshold(cfg.FaceMatchThreshold),
	)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, "trust-score-module")

	var limiter *ratelimit.Limiter
	if !cfg.RateLimit.Disabled {
		var counter ratelimit.Counter
		if redisClient != nil {
			counter = ratelimit.NewRedisCounter(redisClient.Client)
		}
		limiter = ratelimit.NewLimiter(counter, cfg.RateLimit.PerWindow, cfg.RateLimit.Window, log)
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Submissions:   submissionhandler.New(svc, log, cfg.MaxUploadBytes),
		RequireAdmin:  adminmw.RequireAdminToken(tokens, log),
		Logger:        log,
		SubmitLimiter: limiter,
		Checks:        checks,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildRegistry picks between the model-serving sidecar and the deterministic
// mock capabilities used for local development.
func buildRegistry(cfg config.Config) *capability.Registry {
	if cfg.CapabilityURL != "" {
		client := capability.NewHTTPClient(cfg.CapabilityURL, cfg.CapabilityTimeout)
		return &capability.Registry{
			Face:      client,
			Liveness:  client,
			Extractor: client,
			ZeroShot:  client,
			Sentiment: client,
		}
	}
	return &capability.Registry{
		Face:      capability.MockFaceComparer{Verified: true, Distance: 0.2, Latency: 150 * time.Millisecond},
		Liveness:  capability.MockLivenessDetector{Score: 0.92, Latency: 100 * time.Millisecond},
		Extractor: capability.MockTextExtractor{Latency: 200 * time.Millisecond},
		ZeroShot:  capability.MockTextClassifier{FirstScore: 0.75, Latency: 250 * time.Millisecond},
		Sentiment: capability.MockSentimentAnalyzer{Label: "POSITIVE", Score: 0.8, Latency: 250 * time.Millisecond},
	}
}
