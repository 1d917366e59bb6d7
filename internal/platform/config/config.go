package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"propertyhub/pkg/secrets"
	"propertyhub/pkg/validation"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `validate:"required,notblank"`
	JWTSigningKey   string        `validate:"required,min=8"`
	TokenTTL        time.Duration `validate:"gt=0"`
	SessionRecheck  time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	Redis           RedisConfig
}

// Validate checks the assembled configuration before wiring begins.
func (s Server) Validate() error {
	return validation.Validate(s)
}

// RedisConfig holds connection settings for the optional redis tier.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// TokenTTL is the default lifetime of an issued access token.
var TokenTTL = 1 * time.Hour

// SessionRecheckInterval drives the proactive expiry re-validation loop.
var SessionRecheckInterval = 60 * time.Second

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file is loaded first when present (dev convenience, never required).
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("PROPERTYHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	tokenTTL := TokenTTL
	if s := os.Getenv("TOKEN_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			tokenTTL = d
		}
	}

	recheck := SessionRecheckInterval
	if s := os.Getenv("SESSION_RECHECK_INTERVAL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			recheck = d
		}
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Without a configured key every restart invalidates outstanding
		// tokens, which is the safer default for development setups.
		if generated, err := secrets.Generate(); err == nil {
			jwtSigningKey = generated
		} else {
			jwtSigningKey = "dev-secret-key-change-in-production"
		}
	}

	return Server{
		Addr:            addr,
		JWTSigningKey:   jwtSigningKey,
		TokenTTL:        tokenTTL,
		SessionRecheck:  recheck,
		ShutdownTimeout: 10 * time.Second,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}
