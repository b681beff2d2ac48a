package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"casebook/internal/config"
	"casebook/internal/infrastructure/database"
	"casebook/internal/infrastructure/mq"
	"casebook/internal/job"
	"casebook/internal/logger"

	"go.uber.org/zap"
)

// outbox-relay publishes case events written by the server to Kafka.
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

	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}

	publisher, err := mq.NewKafkaPublisher(&cfg.Kafka)
	if err != nil {
		log.Fatal("connect kafka", zap.Error(err))
	}
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job.NewOutboxSender(db, publisher, cfg, log).Start(ctx)
}
