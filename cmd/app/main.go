package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mlebedeva/tastebook/internal/backend"
	"github.com/mlebedeva/tastebook/internal/cli"
	"github.com/mlebedeva/tastebook/internal/config"
	"github.com/mlebedeva/tastebook/internal/logging"
	"github.com/mlebedeva/tastebook/internal/records"
	"github.com/mlebedeva/tastebook/internal/session"
	"github.com/mlebedeva/tastebook/internal/storage"
	"github.com/mlebedeva/tastebook/internal/storage/filestore"
	"github.com/mlebedeva/tastebook/internal/storage/s3store"
	"github.com/mlebedeva/tastebook/internal/storage/sqlstore"
	"github.com/mlebedeva/tastebook/internal/vault"
)

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "file":
		return filestore.New(cfg.FileStorePath)
	case "sqlite":
		db, err := sqlstore.OpenSQLite(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		return sqlstore.NewSQLiteStore(db), nil
	case "postgres":
		db, err := sqlstore.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return sqlstore.NewPostgresStore(db), nil
	case "s3":
		return s3store.New(ctx, s3store.Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	hub := session.NewHub()
	recs := records.NewStore(store)
	svc := backend.New(vault.New(store), recs, store, hub, log, backend.Options{
		LatencyMin: cfg.LatencyMin,
		LatencyMax: cfg.LatencyMax,
	})

	app := cli.NewApp(svc, recs, hub, log)
	app.Run(ctx)
}
