// maintenance runs the operational sweeps against the live database:
//
//	backfill-slugs           assign slugs to categories that never got one
//	deactivate-missing-image hide active products whose main image is gone
//	ensure-category          idempotently create a category by name
//	reassign-category        move all products from one category to another
//	migrate-tiers            move firmas onto a newer priority tier version
//
// Every subcommand accepts -dry-run to report what would change without
// writing. Usage: go run ./cmd/maintenance <subcommand> [flags]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lokumhouse/sweets-api/internal/application/maintenance"
	"github.com/lokumhouse/sweets-api/internal/infrastructure/postgres"
	"github.com/lokumhouse/sweets-api/pkg/config"
	"github.com/lokumhouse/sweets-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	firmaRepo := postgres.NewFirmaRepository(pool)
	ops := maintenance.NewOps(categoryRepo, productRepo, firmaRepo, cfg.Maintenance, log)

	sub := os.Args[1]
	args := os.Args[2:]

	var outcome *maintenance.Outcome
	switch sub {
	case "backfill-slugs":
		fs := flag.NewFlagSet(sub, flag.ExitOnError)
		dryRun := fs.Bool("dry-run", false, "report without writing")
		fs.Parse(args)
		outcome, err = ops.BackfillMissingSlugs(*dryRun)

	case "deactivate-missing-image":
		fs := flag.NewFlagSet(sub, flag.ExitOnError)
		dryRun := fs.Bool("dry-run", false, "report without writing")
		fs.Parse(args)
		outcome, err = ops.DeactivateProductsMissingImage(*dryRun)

	case "ensure-category":
		fs := flag.NewFlagSet(sub, flag.ExitOnError)
		nameEN := fs.String("name-en", "", "English name")
		nameDE := fs.String("name-de", "", "German name")
		nameTR := fs.String("name-tr", "", "Turkish name")
		parent := fs.String("parent", "", "parent category slug (empty = root)")
		dryRun := fs.Bool("dry-run", false, "report without writing")
		fs.Parse(args)
		outcome, err = ops.EnsureCategory(*nameEN, *nameDE, *nameTR, *parent, *dryRun)

	case "reassign-category":
		fs := flag.NewFlagSet(sub, flag.ExitOnError)
		from := fs.String("from", "", "source category slug")
		to := fs.String("to", "", "target category slug")
		deleteEmpty := fs.Bool("delete-empty", false, "delete the source category once emptied")
		dryRun := fs.Bool("dry-run", false, "report without writing")
		fs.Parse(args)
		if *from == "" || *to == "" {
			fmt.Fprintln(os.Stderr, "reassign-category: -from and -to are required")
			os.Exit(2)
		}
		outcome, err = ops.ReassignProductsBetweenCategories(*from, *to, *deleteEmpty, *dryRun)

	case "migrate-tiers":
		fs := flag.NewFlagSet(sub, flag.ExitOnError)
		toVersion := fs.Int("to-version", 0, "target tier version (1-based)")
		dryRun := fs.Bool("dry-run", false, "report without writing")
		fs.Parse(args)
		if *toVersion <= 0 {
			fmt.Fprintln(os.Stderr, "migrate-tiers: -to-version is required")
			os.Exit(2)
		}
		outcome, err = ops.MigratePriorityTiers(*toVersion, *dryRun)

	default:
		usage()
		os.Exit(2)
	}

	if outcome != nil {
		fmt.Println(outcome.String())
	}
	if err != nil {
		log.Error().Err(err).Str("op", sub).Msg("maintenance operation failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: maintenance <subcommand> [flags]

subcommands:
  backfill-slugs            assign slugs to categories missing one
  deactivate-missing-image  hide active products without a main image
  ensure-category           idempotently create a category
  reassign-category         move products between categories
  migrate-tiers             move firmas onto a newer tier version

all subcommands accept -dry-run`)
}
