package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/promoarcade/snakesladders/internal/api"
	"github.com/promoarcade/snakesladders/internal/factory"
	"github.com/promoarcade/snakesladders/internal/services/adminauth"
	"github.com/promoarcade/snakesladders/internal/services/game"
	"github.com/promoarcade/snakesladders/internal/services/reward"
	redisstorage "github.com/promoarcade/snakesladders/internal/storage/redis"
	"github.com/promoarcade/snakesladders/internal/storage/sqldb"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	if cfg.StorageType == factory.StorageTypeSQL {
		sqlCfg := sqldb.DefaultConfig()
		if dialect := os.Getenv("SQL_DIALECT"); dialect != "" {
			sqlCfg.Dialect = sqldb.Dialect(dialect)
		}
		if dsn := os.Getenv("SQL_DSN"); dsn != "" {
			sqlCfg.DSN = dsn
		}
		cfg.SQLConfig = &sqlCfg
	}

	gameCfg := game.DefaultConfig()
	if v := os.Getenv("INITIAL_ROLLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			logger.Error("invalid INITIAL_ROLLS", slog.String("value", v))
			os.Exit(1)
		}
		gameCfg.InitialRolls = n
	}
	if v := os.Getenv("GUARANTEED_FINISH"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			logger.Error("invalid GUARANTEED_FINISH", slog.String("value", v))
			os.Exit(1)
		}
		gameCfg.GuaranteedFinish = enabled
	}
	cfg.GameConfig = &gameCfg

	rewardCfg := reward.DefaultConfig()
	if v := os.Getenv("REWARD_POLICY"); v != "" {
		rewardCfg.Policy = reward.Policy(v)
	}
	if v := os.Getenv("HIGH_TIER_CHANCE"); v != "" {
		chance, err := strconv.ParseFloat(v, 64)
		if err != nil || chance < 0 || chance > 1 {
			logger.Error("invalid HIGH_TIER_CHANCE", slog.String("value", v))
			os.Exit(1)
		}
		rewardCfg.HighTierChance = chance
	}
	cfg.RewardConfig = &rewardCfg

	adminCfg := adminauth.DefaultConfig()
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		adminCfg.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		adminCfg.Password = v
	}
	cfg.AdminConfig = &adminCfg

	// Create application factory
	app, err := factory.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		GrantsService:  app.GrantsService,
		AuthService:    app.AuthService,
		Storage:        app.Storage,
		Clock:          app.Clock,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
