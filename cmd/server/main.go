package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	authhandler "propertyhub/internal/auth/handler"
	authservice "propertyhub/internal/auth/service"
	userstore "propertyhub/internal/auth/store/user"
	ownerhandler "propertyhub/internal/owner/handler"
	ownerservice "propertyhub/internal/owner/service"
	ownerstore "propertyhub/internal/owner/store/owner"
	paymentgateway "propertyhub/internal/payment/gateway"
	paymenthandler "propertyhub/internal/payment/handler"
	paymentservice "propertyhub/internal/payment/service"
	paymentstore "propertyhub/internal/payment/store/payment"
	"propertyhub/internal/platform/config"
	"propertyhub/internal/platform/httpserver"
	"propertyhub/internal/platform/logger"
	platformredis "propertyhub/internal/platform/redis"
	"propertyhub/internal/platform/tracer"
	propertyhandler "propertyhub/internal/property/handler"
	propertyservice "propertyhub/internal/property/service"
	propertystore "propertyhub/internal/property/store/property"
	"propertyhub/internal/session"
	"propertyhub/internal/token"
	httptransport "propertyhub/internal/transport/http"
)

// main wires high-level dependencies and keeps the process lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log.Info("initializing propertyhub",
		"addr", cfg.Addr,
		"token_ttl", cfg.TokenTTL.String(),
		"session_recheck", cfg.SessionRecheck.String(),
	)

	rdb, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	// Token store: redis when configured, in-process otherwise.
	var tokenStore session.TokenStore
	var health httptransport.HealthChecker
	if rdb != nil {
		tokenStore = session.NewRedisTokenStore(rdb.Client)
		health = rdb
		log.Info("using redis token store")
	} else {
		tokenStore = session.NewInMemoryTokenStore()
		log.Info("using in-memory token store")
	}

	codec := token.NewCodec(cfg.JWTSigningKey, "propertyhub", cfg.TokenTTL)

	sessions, err := session.NewManager(tokenStore, codec,
		session.WithRecheckInterval(cfg.SessionRecheck),
		session.WithLogger(log),
	)
	if err != nil {
		log.Error("session manager init failed", "error", err)
		os.Exit(1)
	}

	auth, err := authservice.New(userstore.New(), codec, tokenStore, sessions,
		authservice.WithLogger(log),
	)
	if err != nil {
		log.Error("auth service init failed", "error", err)
		os.Exit(1)
	}

	owners, err := ownerservice.New(ownerstore.NewInMemoryOwnerStore(),
		ownerservice.WithLogger(log),
	)
	if err != nil {
		log.Error("owner service init failed", "error", err)
		os.Exit(1)
	}

	properties, err := propertyservice.New(propertystore.NewInMemoryPropertyStore(),
		propertyservice.WithLogger(log),
	)
	if err != nil {
		log.Error("property service init failed", "error", err)
		os.Exit(1)
	}

	payments, err := paymentservice.New(
		paymentstore.NewInMemoryPaymentStore(),
		paymentgateway.NewFakeGateway(cfg.JWTSigningKey),
		paymentservice.WithLogger(log),
		paymentservice.WithTracer(tracer.NewOTel()),
	)
	if err != nil {
		log.Error("payment service init failed", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.Handlers{
		Auth:     authhandler.New(auth, sessions, log),
		Owner:    ownerhandler.New(owners, log),
		Property: propertyhandler.New(properties, log),
		Payment:  paymenthandler.New(payments, log),
	}, token.NewMiddlewareAdapter(codec), log, health)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		return httpserver.Run(ctx, srv, cfg.ShutdownTimeout)
	})
	g.Go(func() error {
		return sessions.Run(ctx)
	})
	if rdb != nil {
		g.Go(func() error {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					rdb.RecordPoolStats()
				}
			}
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("shutdown with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
