package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"intake/internal/enquiry/handler"
	"intake/internal/enquiry/handoff"
	"intake/internal/enquiry/metrics"
	"intake/internal/enquiry/service"
	"intake/internal/enquiry/sessions"
	"intake/internal/onboarding"
	"intake/internal/platform/config"
	"intake/internal/platform/httpserver"
	"intake/internal/platform/logger"
	platformredis "intake/internal/platform/redis"
	"intake/internal/sessiontoken"
	"intake/pkg/platform/audit"
	"intake/pkg/platform/audit/sinks"
	auditpg "intake/pkg/platform/audit/store/postgres"
	"intake/pkg/platform/audit/worker"
	"intake/pkg/platform/middleware"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Audit: console sink always; durable sinks join the fanout when their
	// backing service is configured. Emission call sites never change.
	sink := audit.Fanout{sinks.NewConsole(log)}

	group, ctx := errgroup.WithContext(ctx)

	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Error("open postgres", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()

		store := auditpg.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Error("audit schema", "error", err.Error())
			os.Exit(1)
		}

		publisher := audit.NewPublisher(0, log)
		sink = append(sink, publisher)
		group.Go(func() error {
			err := worker.New(store, publisher.Inbox(), log).Run(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		})
		log.Info("durable audit store enabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := sinks.NewKafka(ctx, cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("kafka audit sink", "error", err.Error())
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = kafkaSink.Close(flushCtx)
		}()
		sink = append(sink, kafkaSink)
		log.Info("kafka audit sink enabled", "topic", cfg.AuditTopic)
	}

	// Handoff store: redis when configured, in-memory otherwise.
	var handoffStore handoff.Store = handoff.NewInMemoryStore()
	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis", "error", err.Error())
			os.Exit(1)
		}
		defer redisClient.Close()
		handoffStore = handoff.NewRedisStore(redisClient)
		log.Info("redis handoff store enabled")
	}

	var transport service.Transport = service.MockTransport{Latency: 150 * time.Millisecond}
	if cfg.TransportURL != "" {
		transport = service.NewHTTPTransport(cfg.TransportURL)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	pipeline := service.New(transport, handoffStore,
		service.WithLogger(log),
		service.WithAudit(sink),
		service.WithMetrics(m),
	)

	sessionStore := sessions.NewStore(m)
	tokens := sessiontoken.New(cfg.JWTSigningKey, cfg.SessionTTL)
	prefiller := onboarding.NewPrefiller(handoffStore, log, sink)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.ClientContext)

	handler.New(pipeline, sessionStore, tokens, log).Register(router)
	onboarding.NewHandler(prefiller).Register(router)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := httpserver.New(cfg.Addr, router)

	group.Go(func() error {
		log.Info("starting intake server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}
