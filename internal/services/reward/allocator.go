package reward

import (
	"context"
	"errors"
	"log/slog"

	"github.com/promoarcade/snakesladders/internal/dependencies/random"
	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/storage"
)

// Policy selects how high-tier rewards are handed out while slots remain
type Policy string

const (
	// PolicyFirstN gives the high tier to every finisher until the
	// area's cap is exhausted
	PolicyFirstN Policy = "first_n"

	// PolicyRandomChance gives each finisher an independent chance at
	// the high tier while slots remain
	PolicyRandomChance Policy = "random_chance"
)

// Config holds reward tier amounts and the allocation policy
type Config struct {
	BaseTier int
	HighTier int
	Policy   Policy

	// HighTierChance is the per-finisher probability under
	// PolicyRandomChance. Ignored by PolicyFirstN.
	HighTierChance float64
}

// DefaultConfig returns the standard tier amounts with first-come allocation
func DefaultConfig() Config {
	return Config{
		BaseTier:       10,
		HighTier:       25,
		Policy:         PolicyFirstN,
		HighTierChance: 0.5,
	}
}

// Allocator decides which reward tier a finishing player receives
type Allocator struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
	cfg     Config
}

// New creates a reward allocator
func New(store storage.Storage, rnd random.Random, logger *slog.Logger, cfg Config) *Allocator {
	return &Allocator{
		storage: store,
		random:  rnd,
		logger:  logger,
		cfg:     cfg,
	}
}

// BaseTier returns the configured base reward amount
func (a *Allocator) BaseTier() int {
	return a.cfg.BaseTier
}

// HighTier returns the configured high reward amount
func (a *Allocator) HighTier() int {
	return a.cfg.HighTier
}

// Allocate picks the reward for a player completing the game in area.
//
// The caller must invoke this inside storage.WithAreaLock for the same
// area: the winner count read and the subsequent player save form a
// check-then-act sequence, and running it outside the lock can hand out
// more high-tier rewards than the area's cap allows.
func (a *Allocator) Allocate(ctx context.Context, area string) (int, error) {
	prizeCfg, err := a.storage.GetPrizeConfig(ctx, area)
	if err != nil {
		if errors.Is(err, model.ErrPrizeConfigNotFound) {
			// Unconfigured areas have no high-tier budget
			return a.cfg.BaseTier, nil
		}
		return 0, err
	}

	if prizeCfg.MaxHighTierWinners <= 0 {
		return a.cfg.BaseTier, nil
	}

	winners, err := a.storage.CountRewardWinners(ctx, area, a.cfg.HighTier)
	if err != nil {
		return 0, err
	}

	if winners >= prizeCfg.MaxHighTierWinners {
		return a.cfg.BaseTier, nil
	}

	switch a.cfg.Policy {
	case PolicyRandomChance:
		if a.random.Float64() < a.cfg.HighTierChance {
			return a.cfg.HighTier, nil
		}
		return a.cfg.BaseTier, nil
	default:
		return a.cfg.HighTier, nil
	}
}
