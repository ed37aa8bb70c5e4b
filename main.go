package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"healthtrack-server/config"
	"healthtrack-server/handlers"
	"healthtrack-server/middleware"
	"healthtrack-server/services"
	"healthtrack-server/store"
	"healthtrack-server/store/memstore"
	"healthtrack-server/store/mongostore"
	"healthtrack-server/utils/logger"
	"healthtrack-server/utils/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("store_open_failed", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			zlog.Warn("store_close_failed", zap.Error(err))
		}
	}()

	svcCfg := services.Config{
		JWTSecret:     cfg.JWTSecret,
		JWTExpiration: cfg.JWTExpiration,
		Location:      cfg.Location(),
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Fatal("redis_connect_failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()
		svcCfg.Cache = services.NewRedisUserCache(rdb, zlog)
		zlog.Info("redis_user_cache_enabled", zap.String("addr", cfg.RedisAddr))
	}

	m := metrics.New()
	svc := services.New(st, svcCfg, zlog, m)

	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, zlog)
	authLimiter.StartCleanup(ctx, time.Minute)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: handlers.NewRouter(handlers.RouterConfig{
			Services:       svc,
			Log:            zlog,
			Metrics:        m,
			AllowedOrigins: cfg.AllowedOrigins,
			AuthLimiter:    authLimiter,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zlog.Info("server_starting", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server_failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("server_shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server_shutdown_failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (*store.Store, error) {
	if cfg.Storage == config.StorageMemory {
		zlog.Warn("using_memory_store", zap.String("note", "data is lost on restart"))
		return memstore.New().Store(), nil
	}
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return mongostore.Open(openCtx, mongostore.Options{
		URI:          cfg.MongoURI,
		Database:     cfg.MongoDB,
		Transactions: cfg.MongoTransactions,
	}, zlog)
}
