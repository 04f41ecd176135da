// Command server runs the driveguard API: driver registration, on-demand
// compliance checks, the recheck sweep, and the organisation admin surface.
// main wires dependencies and owns the process lifecycle; all behaviour
// lives in the internal packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	assessmenthandler "driveguard/internal/assessment/handler"
	"driveguard/internal/assessment/metrics"
	"driveguard/internal/assessment/ports"
	assessmentservice "driveguard/internal/assessment/service"
	assessmentstore "driveguard/internal/assessment/store"
	assessmentworker "driveguard/internal/assessment/worker"
	driverhandler "driveguard/internal/driver/handler"
	driverservice "driveguard/internal/driver/service"
	driverstore "driveguard/internal/driver/store"
	httpapi "driveguard/internal/http"
	orghandler "driveguard/internal/org/handler"
	orgservice "driveguard/internal/org/service"
	orgstore "driveguard/internal/org/store"
	"driveguard/internal/platform/config"
	"driveguard/internal/platform/httpserver"
	"driveguard/internal/platform/jwt"
	"driveguard/internal/platform/logger"
	"driveguard/internal/platform/postgres"
	"driveguard/internal/platform/redis"
	"driveguard/internal/registry"
	audit "driveguard/pkg/platform/audit"
	auditpublisher "driveguard/pkg/platform/audit/publisher"
	auditmemory "driveguard/pkg/platform/audit/store/memory"
	auditpostgres "driveguard/pkg/platform/audit/store/postgres"
	auditworker "driveguard/pkg/platform/audit/worker"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Postgres. An empty DSN selects the in-memory stores for local runs.
	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	} else {
		log.Warn("POSTGRES_DSN not set, using in-memory stores")
	}

	drivers := driverStore(db)
	assessments := assessmentStore(db)
	orgs := orgStore(db)

	// The audit trail is append-heavy, so its store runs on a pgx pool
	// rather than the shared database/sql handle.
	auditStore, closeAudit, err := auditStoreFor(ctx, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer closeAudit()

	var auditOpts []auditworker.Option
	auditOpts = append(auditOpts, auditworker.WithLogger(log))
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := auditpublisher.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic,
			auditpublisher.WithLogger(log))
		if err != nil {
			return err
		}
		defer func() { _ = kafka.Close() }()
		auditOpts = append(auditOpts, auditworker.WithPublisher(kafka))
	}
	auditor := auditworker.New(auditStore, auditOpts...)

	rdb, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	registryClient := registryClientFor(cfg.Registry, rdb, log)

	m := metrics.New()
	assessmentSvc := assessmentservice.New(registryClient, drivers, assessments,
		assessmentservice.WithLogger(log),
		assessmentservice.WithAuditPublisher(auditor),
		assessmentservice.WithMetrics(m),
	)
	driverSvc := driverservice.New(drivers,
		driverservice.WithLogger(log),
		driverservice.WithAuditPublisher(auditor),
	)
	orgSvc := orgservice.New(orgs,
		orgservice.WithLogger(log),
		orgservice.WithAuditPublisher(auditor),
	)

	jwtSvc := jwt.NewService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)

	router := httpapi.NewRouter(httpapi.Handlers{
		Org:        orghandler.New(orgSvc, jwtSvc, cfg.Server.TokenTTL, cfg.Server.AdminToken, log),
		Driver:     driverhandler.New(driverSvc, log),
		Assessment: assessmenthandler.New(assessmentSvc, log),
	}, jwtSvc, log)

	recheck := assessmentworker.New(assessmentSvc, assessments,
		cfg.Recheck.Interval, cfg.Recheck.Concurrency,
		assessmentworker.WithLogger(log))

	srv := httpserver.New(cfg.Server.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ignoreCancel(auditor.Run(ctx))
	})
	g.Go(func() error {
		return ignoreCancel(recheck.Run(ctx))
	})
	g.Go(func() error {
		log.Info("starting driveguard", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func driverStore(db *sql.DB) driverservice.Store {
	if db != nil {
		return driverstore.NewPostgres(db)
	}
	return driverstore.NewMemory()
}

// assessmentStorage is what the chosen store must provide: persistence for
// the service and the due-for-recheck scan for the worker.
type assessmentStorage interface {
	ports.AssessmentStore
	ports.RecheckLister
}

func assessmentStore(db *sql.DB) assessmentStorage {
	if db != nil {
		return assessmentstore.NewPostgres(db)
	}
	return assessmentstore.NewMemory()
}

func orgStore(db *sql.DB) orgservice.Store {
	if db != nil {
		return orgstore.NewPostgres(db)
	}
	return orgstore.NewMemory()
}

func auditStoreFor(ctx context.Context, dsn string) (audit.Store, func(), error) {
	if dsn == "" {
		return auditmemory.NewInMemoryStore(), func() {}, nil
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return auditpostgres.New(pool), pool.Close, nil
}

func registryClientFor(cfg config.Registry, rdb *redis.Client, log *slog.Logger) registry.Client {
	var client registry.Client
	if cfg.UseMock {
		log.Warn("REGISTRY_USE_MOCK enabled, serving canned licence snapshots")
		client = registry.NewMock()
	} else {
		client = registry.NewHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout,
			registry.WithLogger(log))
	}
	if rdb != nil {
		client = registry.NewCache(client, rdb.Client, cfg.CacheTTL, log)
	}
	return client
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
