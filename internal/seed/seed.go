// Package seed provisions the initial administrator account at startup.
package seed

import (
	"context"
	"log/slog"
	"time"

	"helios/config"
	"helios/internal/domain/entity"
	"helios/internal/domain/lifecycle"
	"helios/internal/domain/repository"
	"helios/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the admin seeder, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config    *config.Config
	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// Register hooks the admin seeding into application startup. Without seed
// configuration it is a no-op.
func Register(params Params) {
	if params.Config.AdminSeed == nil {
		return
	}

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			seedCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return seedAdmin(seedCtx, params)
		},
	})
}

func seedAdmin(ctx context.Context, params Params) error {
	cfg := params.Config.AdminSeed
	if cfg.Username == "" || cfg.Email == "" || cfg.Password == "" {
		params.Logger.Warn("Admin seed configured but incomplete, skipping")

		return nil
	}

	err := params.TxManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		exists, err := accountRepo.UsernameExists(ctx, cfg.Username)
		if err != nil {
			return errors.Wrap(err, "failed to check admin username")
		}
		if exists {
			params.Logger.Debug("Admin account already present", slog.String("username", cfg.Username))

			return nil
		}

		hash, err := params.Hasher.Hash(cfg.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash admin password")
		}

		now := time.Now()
		admin := &entity.Account{
			ID:           uuid.New(),
			Username:     cfg.Username,
			Email:        cfg.Email,
			PasswordHash: hash,
			Permission:   entity.PermissionAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := accountRepo.Create(ctx, admin); err != nil {
			return errors.Wrap(err, "failed to create admin account")
		}

		params.Logger.Info("Seeded admin account", slog.String("username", cfg.Username))

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute admin seed transaction")
	}

	return nil
}
