package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"casebook/internal/config"
	"casebook/internal/infrastructure/cache"
	"casebook/internal/infrastructure/database"
	"casebook/internal/logger"
	"casebook/internal/model"
	"casebook/internal/service"
)

// create-user adds a login. Sessions are not touched, so no Redis is needed.
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	username := flag.String("username", "", "login name")
	password := flag.String("password", "", "password, at least 8 characters")
	role := flag.String("role", "user", "user or admin")
	flag.Parse()

	if err := run(*configPath, *username, *password, *role); err != nil {
		fmt.Fprintf(os.Stderr, "create-user: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, username, password, roleName string) error {
	role, err := model.ParseUserRole(roleName)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Config{Level: "warn", Format: cfg.Log.Format, Output: "stderr"})
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		return err
	}

	auth := service.NewAuthService(db, cache.NewMemorySessionStore(), log)
	user, err := auth.CreateUser(context.Background(), username, password, role)
	if err != nil {
		return err
	}
	fmt.Printf("created user %s (id %d, role %s)\n", user.Username, user.ID, user.Role)
	return nil
}
