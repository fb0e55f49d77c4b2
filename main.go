package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/routes"
	"github.com/cppla/microblog/utils"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the JSON config file")
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer utils.Logger.Sync() //nolint:errcheck

	db, err := config.InitDatabase(cfg)
	if err != nil {
		utils.Sugar.Fatalf("database init failed: %v", err)
	}

	ctx := context.Background()
	if err := config.Migrate(ctx, db, cfg); err != nil {
		utils.Sugar.Fatalf("migration failed: %v", err)
	}
	if *migrateOnly {
		utils.Sugar.Infow("migrations applied", "driver", cfg.DBDriver, "mode", cfg.DBMigrate)
		return
	}

	rc := utils.NewRedisClient(cfg)
	if rc != nil {
		defer rc.Close()
	}

	r := routes.SetupRouter(cfg, db, rc)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(ctx, ":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
