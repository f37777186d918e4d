package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/promoarcade/snakesladders/internal/dependencies/clock"
	"github.com/promoarcade/snakesladders/internal/dependencies/random"
	"github.com/promoarcade/snakesladders/internal/services/adminauth"
	"github.com/promoarcade/snakesladders/internal/services/game"
	"github.com/promoarcade/snakesladders/internal/services/grants"
	"github.com/promoarcade/snakesladders/internal/services/reward"
	"github.com/promoarcade/snakesladders/internal/storage"
	"github.com/promoarcade/snakesladders/internal/storage/memory"
	redisstorage "github.com/promoarcade/snakesladders/internal/storage/redis"
	"github.com/promoarcade/snakesladders/internal/storage/sqldb"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQL    = "sql"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	RewardAllocator *reward.Allocator
	GameController  *game.Controller
	GrantsService   *grants.Service
	AuthService     *adminauth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger

	// StorageType selects the storage backend ("memory", "redis" or "sql")
	// If empty, defaults to "memory"
	StorageType string

	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config

	// SQLConfig holds SQL connection settings (required if StorageType is "sql")
	SQLConfig *sqldb.Config

	// GameConfig holds gameplay settings (optional)
	GameConfig *game.Config

	// RewardConfig holds reward tier settings (optional)
	RewardConfig *reward.Config

	// AdminConfig holds the bootstrap admin credential (optional)
	AdminConfig *adminauth.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQL:
		if cfg.SQLConfig == nil {
			return nil, errors.New("SQLConfig required when StorageType is sql")
		}
		sqlStore, err := sqldb.New(ctx, *cfg.SQLConfig)
		if err != nil {
			return nil, err
		}
		store = sqlStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sql'")
	}

	clk := clock.New()
	rnd := random.New()

	gameCfg := game.DefaultConfig()
	if cfg.GameConfig != nil {
		gameCfg = *cfg.GameConfig
	}
	rewardCfg := reward.DefaultConfig()
	if cfg.RewardConfig != nil {
		rewardCfg = *cfg.RewardConfig
	}

	app := newWithDependencies(store, clk, rnd, gameCfg, rewardCfg, logger)

	adminCfg := adminauth.DefaultConfig()
	if cfg.AdminConfig != nil {
		adminCfg = *cfg.AdminConfig
	}
	if err := app.AuthService.Bootstrap(ctx, adminCfg); err != nil {
		return nil, err
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	gameCfg game.Config,
	rewardCfg reward.Config,
	logger *slog.Logger,
) *App {
	allocator := reward.New(store, rnd, logger, rewardCfg)
	gameController := game.New(store, allocator, clk, rnd, logger, gameCfg)
	grantsService := grants.New(store, clk, logger)
	authService := adminauth.New(store, clk, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		RewardAllocator: allocator,
		GameController:  gameController,
		GrantsService:   grantsService,
		AuthService:     authService,
	}
}
