package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	bsdahandler "bordereau/internal/bsda/handler"
	bsdaservice "bordereau/internal/bsda/service"
	bsffhandler "bordereau/internal/bsff/handler"
	bsffservice "bordereau/internal/bsff/service"
	jwttoken "bordereau/internal/jwt_token"
	"bordereau/internal/platform/config"
	"bordereau/internal/platform/httpserver"
	"bordereau/internal/platform/logger"
	"bordereau/internal/platform/metrics"
	"bordereau/internal/platform/redis"
	"bordereau/internal/sealedcache"
	httptransport "bordereau/internal/transport/http"
	"bordereau/pkg/platform/audit/publishers/compliance"
	"bordereau/pkg/platform/audit/publishers/security"
	"bordereau/pkg/platform/circuit"
)

// main wires the stores, publishers and HTTP router, then runs the server
// and the background workers until SIGINT or SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewWithRegisterer(reg)

	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	checks := map[string]httptransport.HealthCheck{}
	if backend.db != nil {
		checks["postgres"] = backend.db.PingContext
	}

	compliancePublisher := compliance.New(backend.audit, compliance.WithLogger(log))
	securityPublisher := security.New(backend.audit, security.WithLogger(log))

	bsdaOpts := []bsdaservice.Option{
		bsdaservice.WithLogger(log),
		bsdaservice.WithMetrics(m),
		bsdaservice.WithAuditPublisher(compliancePublisher),
		bsdaservice.WithRejectionPublisher(securityPublisher),
	}
	bsffOpts := []bsffservice.Option{
		bsffservice.WithLogger(log),
		bsffservice.WithMetrics(m),
		bsffservice.WithAuditPublisher(compliancePublisher),
		bsffservice.WithRejectionPublisher(securityPublisher),
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache := sealedcache.New(redisClient.Client,
			sealedcache.WithTTL(cfg.Redis.SealedTTL),
			sealedcache.WithBreaker(circuit.New("sealed-cache")),
			sealedcache.WithLogger(log),
		)
		bsdaOpts = append(bsdaOpts, bsdaservice.WithSealedCache(cache))
		bsffOpts = append(bsffOpts, bsffservice.WithSealedCache(cache))
		checks["redis"] = redisClient.Health
		log.Info("sealed fields cache enabled")
	}

	jwt := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	router := httptransport.NewRouter(httptransport.Config{
		Validator:      jwttoken.NewJWTServiceAdapter(jwt),
		Logger:         log,
		Gatherer:       reg,
		Checks:         checks,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	},
		bsdahandler.New(bsdaservice.New(backend.bsda, backend.bsdaTx, bsdaOpts...), log),
		bsffhandler.New(bsffservice.New(backend.bsff, backend.bsffTx, bsffOpts...), log),
	)
	srv := httpserver.New(cfg.Addr, router, cfg.HTTP)

	relay, err := newRelay(ctx, cfg, backend, m, log)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting bordereau", "addr", cfg.Addr, "postgres", backend.db != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return securityPublisher.Run(ctx)
	})
	if relay != nil {
		defer relay.close()
		g.Go(func() error {
			return relay.worker.Run(ctx)
		})
	}
	return g.Wait()
}
