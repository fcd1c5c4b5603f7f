// Package config builds the process configuration from the environment so
// main stays lean. Defaults favor local development: in-memory stores, mock
// capabilities, no Redis.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration.
type Config struct {
	Addr string `env:"TRUSTSCORE_ADDR" envDefault:":8080"`

	// DatabaseURL enables the Postgres record store when set; empty keeps
	// the in-memory store.
	DatabaseURL string `env:"TRUSTSCORE_DATABASE_URL"`

	Redis RedisConfig `envPrefix:"TRUSTSCORE_REDIS_"`

	RateLimit RateLimitConfig `envPrefix:"TRUSTSCORE_RATELIMIT_"`

	// UploadDir is where evidence files are persisted after scoring.
	UploadDir string `env:"TRUSTSCORE_UPLOAD_DIR" envDefault:"uploads"`

	// CapabilityURL points at the model-serving sidecar. Empty switches the
	// capability registry to deterministic mocks (development mode).
	CapabilityURL     string        `env:"TRUSTSCORE_CAPABILITY_URL"`
	CapabilityTimeout time.Duration `env:"TRUSTSCORE_CAPABILITY_TIMEOUT" envDefault:"30s"`

	// StageTimeout bounds each pipeline stage; a hung capability degrades
	// that stage instead of blocking the submission.
	StageTimeout time.Duration `env:"TRUSTSCORE_STAGE_TIMEOUT" envDefault:"45s"`

	// FaceThreshold is the embedding-distance operating point for the
	// near-match band.
	FaceThreshold float64 `env:"TRUSTSCORE_FACE_THRESHOLD" envDefault:"0.4"`

	// FaceMatchThreshold is the minimum blended face score for the
	// face_match verdict on a record.
	FaceMatchThreshold float64 `env:"TRUSTSCORE_FACE_MATCH_THRESHOLD" envDefault:"0.5"`

	// IssuerKeyPath locates the PEM-encoded issuer public key for offline
	// KYC signature checks. Empty disables the check (not-attempted).
	IssuerKeyPath string `env:"TRUSTSCORE_ISSUER_KEY_PATH"`

	// JWTSigningKey signs and validates the admin bearer tokens that gate
	// score adjustments.
	JWTSigningKey string `env:"TRUSTSCORE_JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`

	// MaxUploadBytes caps the multipart submission size.
	MaxUploadBytes int64 `env:"TRUSTSCORE_MAX_UPLOAD_BYTES" envDefault:"33554432"`
}

// RedisConfig configures the optional OCR text cache.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

// RateLimitConfig bounds submissions per client. The pipeline runs several
// model calls per submission, so the default window is deliberately tight.
type RateLimitConfig struct {
	PerWindow int64         `env:"PER_WINDOW" envDefault:"10"`
	Window    time.Duration `env:"WINDOW" envDefault:"1m"`
	Disabled  bool          `env:"DISABLED"`
}

// FromEnv parses the configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
