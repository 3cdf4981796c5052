package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nulzo/prompt-router/internal/cli"
	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/gateway"
	"github.com/nulzo/prompt-router/internal/routing"
	"github.com/nulzo/prompt-router/internal/store"
	"github.com/nulzo/prompt-router/internal/store/model"
	"github.com/nulzo/prompt-router/internal/store/sqlite"
	"go.uber.org/zap"
)

// seed fills the registry and adds the sample routing policies from config,
// skipping policies that already exist.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fail(err)
	}

	log := zap.NewNop()
	repo, err := sqlite.NewSQLiteStorage(cfg.Database.DSN, log)
	if err != nil {
		fail(err)
	}
	defer func() {
		_ = repo.Close()
	}()

	ctx := context.Background()

	if err := gateway.SeedRegistry(ctx, repo, cfg.Seed.Models, log); err != nil {
		fail(err)
	}
	fmt.Printf("%s Registry synced (%d models)\n", cli.CheckMark(), len(cfg.Seed.Models))

	added, err := seedPolicies(ctx, repo, cfg.Seed.Policies)
	if err != nil {
		fail(err)
	}

	policies, err := repo.Policies().List(ctx)
	if err != nil {
		fail(err)
	}

	fmt.Printf("%s %d routing policies added\n\n", cli.CheckMark(), added)
	fmt.Println(cli.PrettyFormat(policies))
}

func seedPolicies(ctx context.Context, repo store.Repository, seeds []config.PolicyConfig) (int, error) {
	added := 0
	err := repo.WithTx(ctx, func(tx store.Repository) error {
		existing, err := tx.Policies().List(ctx)
		if err != nil {
			return err
		}

		seen := make(map[string]bool, len(existing))
		for _, p := range existing {
			seen[p.ModelName+"\x00"+p.RegexPattern] = true
		}

		for _, s := range seeds {
			if seen[s.SourceModel+"\x00"+s.Pattern] {
				continue
			}
			if _, err := tx.Policies().Create(ctx, &model.RoutingPolicy{
				ModelName:     s.SourceModel,
				RegexPattern:  s.Pattern,
				RedirectModel: routing.ModelSegment(s.RedirectModel),
			}); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	return added, err
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", cli.CrossMark(), err)
	os.Exit(1)
}
