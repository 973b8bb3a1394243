// Command seeder imports a word list (JSON, CSV or XLSX) into the words
// table, upserting by id. It is intended to be run offline, not as part of
// the main server.
//
// Flags:
//
//	--file           word list to import (overrides SEEDER_WORDS_PATH)
//	--format         json, csv or xlsx (default: from the file extension)
//	--dry-run        parse the file without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/lugatlab/internal/adapter/postgres"
	"github.com/heartmarshall/lugatlab/internal/adapter/postgres/word"
	"github.com/heartmarshall/lugatlab/internal/app"
	"github.com/heartmarshall/lugatlab/internal/app/seeder"
	"github.com/heartmarshall/lugatlab/internal/config"
)

// Compile-time interface assertion.
var _ seeder.WordBulkRepo = (*word.Repo)(nil)

func main() {
	fileFlag := flag.String("file", "", "word list to import")
	formatFlag := flag.String("format", "", "json, csv or xlsx (default: from extension)")
	dryRunFlag := flag.Bool("dry-run", false, "parse the file without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *fileFlag != "" {
		seederCfg.Path = *fileFlag
	}
	if *formatFlag != "" {
		seederCfg.Format = *formatFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var repo seeder.WordBulkRepo
	if !seederCfg.DryRun {
		if appCfg.Database.AutoMigrate() {
			if err := postgres.Migrate(ctx, appCfg.Database.DSN, logger); err != nil {
				logger.Error("migrate database", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		pool, err := postgres.NewPool(ctx, appCfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		repo = word.New(pool)
	}

	res, err := seeder.NewPipeline(logger, repo, *seederCfg).Run(ctx)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}

	logger.Info("import completed",
		slog.Int("parsed", res.Parsed),
		slog.Int("skipped", len(res.Skipped)),
		slog.Int("upserted", res.Upserted),
		slog.Bool("dry_run", seederCfg.DryRun),
	)
}
