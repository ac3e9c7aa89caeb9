// Command server wires configuration, storage, and the HTTP surface for the
// compliance tracking service. Business logic lives in internal packages;
// main stays a dependency graph plus lifecycle management.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"complytrack/internal/audit"
	"complytrack/internal/compliance/handler"
	"complytrack/internal/compliance/metrics"
	"complytrack/internal/compliance/service"
	equipmentStore "complytrack/internal/compliance/store/equipment"
	requirementStore "complytrack/internal/compliance/store/requirement"
	httpapi "complytrack/internal/http"
	"complytrack/internal/lease"
	"complytrack/internal/platform/config"
	"complytrack/internal/platform/db"
	"complytrack/internal/platform/httpserver"
	"complytrack/internal/platform/logger"
	"complytrack/internal/platform/redis"
)

const auditQueueBuffer = 256

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	database, err := db.Open(cfg.PostgresURL)
	if err != nil {
		log.Error("failed to open postgres", "error", err)
		os.Exit(1)
	}
	if database != nil {
		defer database.Close()
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var (
		requirements service.RequirementStore
		equipment    service.EquipmentStore
		auditStore   audit.Store
	)
	if database != nil {
		requirements = requirementStore.NewPostgres(database)
		equipment = equipmentStore.NewPostgres(database)
		auditStore = audit.NewPostgres(database)
		log.Info("using postgres-backed stores")
	} else {
		requirements = requirementStore.NewInMemory()
		equipment = equipmentStore.NewInMemory()
		auditStore = audit.NewInMemoryStore()
		log.Warn("postgres not configured, using in-memory stores")
	}

	auditQueue := audit.NewQueueStore(auditStore, auditQueueBuffer)
	auditWorker := audit.NewWorker(auditStore, auditQueue.Inbox())

	opts := []service.Option{
		service.WithLogger(log),
		service.WithAuditPublisher(audit.NewPublisher(auditQueue)),
		service.WithMetrics(metrics.New()),
		service.WithUpcomingHorizon(cfg.UpcomingHorizonDays),
	}
	if redisClient != nil {
		opts = append(opts, service.WithLeaser(lease.NewRedis(redisClient.Client), cfg.AuditLeaseTTL))
	} else {
		log.Warn("redis not configured, audit runs proceed without an advisory lease")
	}

	svc := service.New(requirements, equipment, opts...)

	router := httpapi.NewRouter(httpapi.Deps{
		Compliance: handler.New(svc, log),
		Database:   database,
		Redis:      redisClient,
	})
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting complytrack server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
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

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
