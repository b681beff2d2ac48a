package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"casebook/internal/config"
	"casebook/internal/handler"
	"casebook/internal/infrastructure/cache"
	"casebook/internal/infrastructure/database"
	"casebook/internal/infrastructure/lock"
	"casebook/internal/logger"
	"casebook/internal/report"
	"casebook/pkg/idgen"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := idgen.Init(cfg.Server.WorkerID); err != nil {
		log.Fatal("init id generator", zap.Error(err))
	}

	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := cache.NewRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal("connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	pdf := report.NewChromedpRenderer(report.ChromedpConfig{
		RemoteURL: cfg.PDF.RemoteURL,
		Timeout:   cfg.PDF.Timeout,
		NoSandbox: cfg.PDF.NoSandbox,
		Logger:    log,
	})
	defer pdf.Close()

	router := handler.SetupRouter(handler.Deps{
		DB:       db,
		Locker:   lock.NewRedisLocker(redisClient, cfg.Business.StatusLockTTL, log),
		Sessions: cache.NewRedisSessionStore(redisClient, cfg.Session.TTL),
		PDF:      pdf,
		Config:   cfg,
		Logger:   log,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.Server.Port), zap.String("db_driver", cfg.Database.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("server stopped")
}
