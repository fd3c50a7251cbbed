package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	adminconsole "komunumo/contexts/internal-ops/admin-console-service"
	"komunumo/contexts/internal-ops/admin-console-service/adapters/memory"
	postgresadapter "komunumo/contexts/internal-ops/admin-console-service/adapters/postgres"
	"komunumo/contexts/internal-ops/admin-console-service/adapters/security"
	sqliteadapter "komunumo/contexts/internal-ops/admin-console-service/adapters/sqlite"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	"komunumo/internal/platform/config"
	"komunumo/internal/platform/db"
	"komunumo/internal/platform/httpserver"
	"komunumo/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const shutdownTimeout = 10 * time.Second

type APIApp struct {
	server      *httpserver.Server
	module      adminconsole.Module
	seedOnStart bool
	close       func() error
	logger      *slog.Logger
}

type SeedApp struct {
	module adminconsole.Module
	close  func() error
	logger *slog.Logger
}

func BuildAPI(ctx context.Context, cfg config.Config, logger *slog.Logger) (*APIApp, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("service", cfg.ServiceName, "process", "api")

	recorder := metrics.NewRecorder(metricsNamespace(cfg.ServiceName))
	deps, closeFn, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	deps.Metrics = recorder
	module := adminconsole.NewModule(deps)

	server := httpserver.New(module, recorder.Handler(), logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:      server,
		module:      module,
		seedOnStart: cfg.SeedDemoData,
		close:       closeFn,
		logger:      logger,
	}, nil
}

func BuildSeed(ctx context.Context, cfg config.Config, logger *slog.Logger) (*SeedApp, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("service", cfg.ServiceName, "process", "seed")

	deps, closeFn, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &SeedApp{
		module: adminconsole.NewModule(deps),
		close:  closeFn,
		logger: logger,
	}, nil
}

// openBackend selects the record stores for cfg.DBDriver and makes sure the
// tables exist.
func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (adminconsole.Dependencies, func() error, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pg, err := db.Connect(cfg.PostgresDSN, db.PostgresOptions{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			Verbose:         strings.EqualFold(cfg.LogLevel, "debug"),
		})
		if err != nil {
			return adminconsole.Dependencies{}, nil, err
		}
		if err := postgresadapter.EnsureSchema(ctx, pg.DB); err != nil {
			_ = pg.Close()
			return adminconsole.Dependencies{}, nil, err
		}
		return adminconsole.Dependencies{
			Sponsors:      postgresadapter.NewSponsorRepository(pg.DB, logger),
			Speakers:      postgresadapter.NewSpeakerRepository(pg.DB, logger),
			Events:        postgresadapter.NewEventRepository(pg.DB, logger),
			EventSpeakers: postgresadapter.NewEventSpeakerRepository(pg.DB, logger),
			Members:       postgresadapter.NewMemberRepository(pg.DB, logger),
			AuditLogs:     postgresadapter.NewAuditRepository(pg.DB, logger),
			Clock:         postgresadapter.SystemClock{},
			IDGenerator:   postgresadapter.UUIDGenerator{},
			Hasher:        security.PBKDF2Hasher{},
			Logger:        logger,
		}, pg.Close, nil

	case config.DriverSQLite:
		lite, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return adminconsole.Dependencies{}, nil, err
		}
		if err := sqliteadapter.EnsureSchema(ctx, lite.DB); err != nil {
			_ = lite.Close()
			return adminconsole.Dependencies{}, nil, err
		}
		return adminconsole.Dependencies{
			Sponsors:      sqliteadapter.NewSponsorStore(lite.DB, logger),
			Speakers:      sqliteadapter.NewSpeakerStore(lite.DB, logger),
			Events:        sqliteadapter.NewEventStore(lite.DB, logger),
			EventSpeakers: sqliteadapter.NewEventSpeakerStore(lite.DB, logger),
			Members:       sqliteadapter.NewMemberStore(lite.DB, logger),
			AuditLogs:     sqliteadapter.NewAuditRepository(lite.DB),
			Clock:         postgresadapter.SystemClock{},
			IDGenerator:   postgresadapter.UUIDGenerator{},
			Hasher:        security.PBKDF2Hasher{},
			Logger:        logger,
		}, lite.Close, nil

	case config.DriverMemory:
		store := memory.NewStore()
		return adminconsole.Dependencies{
			Sponsors:      memory.NewRecordStore[entities.Sponsor, *entities.Sponsor](entities.NewSponsor),
			Speakers:      memory.NewRecordStore[entities.Speaker, *entities.Speaker](entities.NewSpeaker),
			Events:        memory.NewRecordStore[entities.Event, *entities.Event](entities.NewEvent),
			EventSpeakers: memory.NewRecordStore[entities.EventSpeaker, *entities.EventSpeaker](entities.NewEventSpeaker),
			Members:       memory.NewRecordStore[entities.Member, *entities.Member](entities.NewMember),
			AuditLogs:     store,
			Clock:         store,
			IDGenerator:   store,
			Hasher:        security.PBKDF2Hasher{},
			Logger:        logger,
		}, func() error { return nil }, nil
	}
	return adminconsole.Dependencies{}, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// Run serves until ctx is cancelled, seeding demo data first when enabled.
func (a *APIApp) Run(ctx context.Context) error {
	if a.seedOnStart {
		if err := a.module.Seeder.Run(ctx); err != nil {
			return err
		}
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"seed_demo_data", a.seedOnStart,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (a *APIApp) Close() error {
	if a.close != nil {
		return a.close()
	}
	return nil
}

func (s *SeedApp) Run(ctx context.Context) error {
	if err := s.module.Seeder.Run(ctx); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	return nil
}

func (s *SeedApp) Close() error {
	if s.close != nil {
		return s.close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.Contains(value, ":") {
		return value
	}
	return ":" + value
}

func metricsNamespace(serviceName string) string {
	name := strings.ToLower(strings.TrimSpace(serviceName))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
	if name == "" {
		return "komunumo"
	}
	return name
}
