// Command seed loads demo users and friendships from a YAML fixture. It is
// safe to run repeatedly against the same database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"healthtrack-server/config"
	"healthtrack-server/services"
	"healthtrack-server/store"
	"healthtrack-server/store/memstore"
	"healthtrack-server/store/mongostore"
	"healthtrack-server/utils/logger"
)

func main() {
	file := flag.String("file", "fixtures/demo.yaml", "fixture file to load")
	timeout := flag.Duration("timeout", time.Minute, "overall seed timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	f, err := os.Open(*file)
	if err != nil {
		zlog.Fatal("fixture_open_failed", zap.String("file", *file), zap.Error(err))
	}
	fixture, err := services.LoadFixture(f)
	_ = f.Close()
	if err != nil {
		zlog.Fatal("fixture_invalid", zap.String("file", *file), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var st *store.Store
	if cfg.Storage == config.StorageMemory {
		zlog.Warn("seeding_memory_store", zap.String("note", "nothing is persisted"))
		st = memstore.New().Store()
	} else {
		st, err = mongostore.Open(ctx, mongostore.Options{
			URI:          cfg.MongoURI,
			Database:     cfg.MongoDB,
			Transactions: cfg.MongoTransactions,
		}, zlog)
		if err != nil {
			zlog.Fatal("store_open_failed", zap.Error(err))
		}
	}
	defer func() { _ = st.Close(context.Background()) }()

	svc := services.New(st, services.Config{
		JWTSecret:     cfg.JWTSecret,
		JWTExpiration: cfg.JWTExpiration,
		Location:      cfg.Location(),
	}, zlog, nil)

	report, err := services.NewSeeder(svc, st.Users, zlog).Apply(ctx, fixture)
	if err != nil {
		zlog.Error("seed_failed", zap.Error(err))
		os.Exit(1)
	}
	zlog.Info("seed_done",
		zap.String("file", *file),
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped),
		zap.Int("friendships", report.Friendships),
	)
}
