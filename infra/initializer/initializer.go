// Package initializer wires the application together: logger, database,
// repositories, event bus, storage backend and services.
package initializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sangamhq/sangam/infra"
	infraeventbus "github.com/sangamhq/sangam/infra/eventbus"
	infrarepository "github.com/sangamhq/sangam/infra/repository"
	infrastorage "github.com/sangamhq/sangam/infra/storage"
	"github.com/sangamhq/sangam/internal/seed"
	"github.com/sangamhq/sangam/pkg/config"
	adminsvc "github.com/sangamhq/sangam/pkg/service/admin"
	authsvc "github.com/sangamhq/sangam/pkg/service/auth"
	fundssvc "github.com/sangamhq/sangam/pkg/service/funds"
	membersvc "github.com/sangamhq/sangam/pkg/service/member"
	"github.com/sangamhq/sangam/pkg/service/registration"
	"github.com/sangamhq/sangam/pkg/storage"
	"github.com/sangamhq/sangam/webapi"
)

// InitializeDependencies builds every dependency the HTTP layer needs,
// runs migrations and seeds the super admin.
func InitializeDependencies(cfg *config.App) (*webapi.Deps, error) {
	logger := setupLogger(cfg.Log)
	return initialize(cfg, logger)
}

func initialize(cfg *config.App, logger *slog.Logger) (*webapi.Deps, error) {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if err := infrarepository.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	uow := infrarepository.NewUoW(db)

	if err := seed.SuperAdmin(context.Background(), uow, cfg.Seed, logger); err != nil {
		return nil, fmt.Errorf("failed to seed super admin: %w", err)
	}

	bus := infraeventbus.NewWithMemory(logger)
	registration.RegisterSideEffects(bus, uow, logger)

	var store storage.Storage
	switch cfg.Uploads.Backend {
	case "s3":
		store, err = infrastorage.NewS3(context.Background(), cfg.Uploads)
	default:
		store, err = infrastorage.NewLocal(cfg.Uploads)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &webapi.Deps{
		Cfg:          cfg,
		Auth:         authsvc.New(uow, cfg.Jwt, logger),
		Registration: registration.New(uow, bus, logger),
		Funds:        fundssvc.New(uow, logger),
		Member:       membersvc.New(uow, logger),
		Admin:        adminsvc.New(uow, logger),
		Storage:      store,
	}, nil
}
