package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/wadjakorntonsri/qr-shortener/pkg/adapters/repository/sqlstore"
	"github.com/wadjakorntonsri/qr-shortener/pkg/config"
)

const usage = "expected 'migrate' or 'export' subcommands"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx := context.Background()

	switch os.Args[1] {
	case "migrate":
		migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
		_ = migrateCmd.Parse(os.Args[2:])
		err = doMigrate(cfg.DatabaseURL, logger)
	case "export":
		exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
		outFile := exportCmd.String("file", "", "write JSON to this file instead of stdout")
		_ = exportCmd.Parse(os.Args[2:])
		err = doExport(ctx, cfg.DatabaseURL, *outFile, logger)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		logger.Error(os.Args[1]+" failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func doMigrate(dbURL string, logger *slog.Logger) error {
	version, err := sqlstore.Migrate(dbURL)
	if err != nil {
		return err
	}
	logger.Info("schema up to date",
		slog.String("dialect", string(sqlstore.DialectFor(dbURL))),
		slog.Uint64("version", uint64(version)),
	)
	return nil
}

func doExport(ctx context.Context, dbURL, outFile string, logger *slog.Logger) error {
	repo, err := sqlstore.Open(ctx, dbURL)
	if err != nil {
		return err
	}
	defer repo.Close()

	links, err := repo.Dump(ctx)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", outFile, err)
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(links); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	logger.Info("exported links", slog.Int("count", len(links)))
	return nil
}
