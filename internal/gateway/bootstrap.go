package gateway

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nulzo/prompt-router/internal/cli"
	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/dispatch"
	"github.com/nulzo/prompt-router/internal/llm"
	"github.com/nulzo/prompt-router/internal/routing"
	"github.com/nulzo/prompt-router/internal/store"
	"go.uber.org/zap"
)

// BootstrapProviders builds and registers every enabled provider from configuration.
// Misconfigured entries are logged and skipped.
func BootstrapProviders(d *dispatch.Dispatcher, providers []config.ProviderConfig, log *zap.Logger) int {
	registeredCount := 0
	validate := validator.New()

	for _, pCfg := range providers {
		if !pCfg.Enabled {
			continue
		}

		if err := validate.Struct(&pCfg); err != nil {
			log.Warn(fmt.Sprintf("%s %s %s",
				cli.WarningSign(),
				cli.Style(fmt.Sprintf("%s\t", pCfg.ID), cli.Bold),
				cli.Style("Skipping provider with invalid configuration", cli.Yellow),
			), zap.Error(err))
			continue
		}

		p, err := llm.New(pCfg)
		if err != nil {
			log.Error("Unknown provider type", zap.String("id", pCfg.ID), zap.String("type", pCfg.Type), zap.Error(err))
			continue
		}

		if err := d.Register(p); err != nil {
			log.Error("Failed to register provider", zap.String("id", pCfg.ID), zap.Error(err))
			continue
		}

		log.Info(fmt.Sprintf("%s %s", cli.CheckMark(), pCfg.ID), zap.String("type", pCfg.Type))
		registeredCount++
	}

	if registeredCount == 0 {
		log.Warn("No providers were registered. Every completion will fail with UnsupportedProvider.")
	}

	return registeredCount
}

// SeedRegistry adds the configured registry entries that are not present yet.
// Entries that are not "provider/model" are skipped.
func SeedRegistry(ctx context.Context, repo store.Repository, names []string, log *zap.Logger) error {
	valid := make([]string, 0, len(names))
	for _, name := range names {
		if _, err := routing.ParseIdentifier(name); err != nil {
			log.Warn("Skipping malformed seed model", zap.String("name", name), zap.Error(err))
			continue
		}
		valid = append(valid, name)
	}

	if len(valid) == 0 {
		return nil
	}

	return repo.WithTx(ctx, func(tx store.Repository) error {
		return tx.Models().Sync(ctx, valid)
	})
}
