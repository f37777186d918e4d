package game

import (
	"context"
	"errors"
	"log/slog"

	"github.com/promoarcade/snakesladders/internal/dependencies/clock"
	"github.com/promoarcade/snakesladders/internal/dependencies/random"
	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/services/reward"
	"github.com/promoarcade/snakesladders/internal/storage"
)

// Config holds gameplay settings
type Config struct {
	// InitialRolls is granted to each player at registration
	InitialRolls int

	// GuaranteedFinish, when set, forces a player's last remaining roll
	// to land exactly on the final square if it is within die range.
	// Off by default.
	GuaranteedFinish bool
}

// DefaultConfig returns the standard gameplay settings
func DefaultConfig() Config {
	return Config{
		InitialRolls:     3,
		GuaranteedFinish: false,
	}
}

// RollOutcome describes a single resolved roll
type RollOutcome struct {
	DieValue     int
	FromPosition int
	ToPosition   int
	RollsUsed    int
	RollsGranted int
	Completed    bool
	Reward       *int
}

// Controller implements the game state machine
type Controller struct {
	storage storage.Storage
	rewards *reward.Allocator
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config
}

// New creates a game controller
func New(
	store storage.Storage,
	rewards *reward.Allocator,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	return &Controller{
		storage: store,
		rewards: rewards,
		clock:   clk,
		random:  rnd,
		logger:  logger,
		cfg:     cfg,
	}
}

// Register creates a player record with the initial roll allowance.
// Registering an existing player is a no-op returning the current record,
// so a player re-submitting the entry form never loses progress.
func (c *Controller) Register(ctx context.Context, email, area string) (*model.PlayerRecord, error) {
	key := model.NewPlayerKey(email, area)

	var player *model.PlayerRecord
	err := c.storage.WithAreaLock(ctx, key.Area, func(ctx context.Context) error {
		existing, err := c.storage.GetPlayer(ctx, key)
		if err == nil {
			player = existing
			return nil
		}
		if !errors.Is(err, model.ErrPlayerNotFound) {
			return err
		}

		now := c.clock.Now()
		player = &model.PlayerRecord{
			Email:        key.Email,
			Area:         key.Area,
			Position:     0,
			RollsGranted: c.cfg.InitialRolls,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := c.storage.SavePlayer(ctx, player); err != nil {
			return err
		}

		c.logger.InfoContext(ctx, "player registered",
			slog.String("email", key.Email),
			slog.String("area", key.Area),
			slog.Int("initial_rolls", c.cfg.InitialRolls),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// GetState returns the player's current record
func (c *Controller) GetState(ctx context.Context, email, area string) (*model.PlayerRecord, error) {
	return c.storage.GetPlayer(ctx, model.NewPlayerKey(email, area))
}

// Roll resolves one die roll for the player. The whole sequence runs under
// the area lock: precondition checks, movement, and (on completion) reward
// allocation, so no two rolls for the same player interleave and the
// high-tier winner count cannot be raced past its cap.
//
// Precondition failures are checked in a fixed order: a missing player
// reports ErrPlayerNotFound even if it would also have no rolls, and a
// completed player reports ErrAlreadyCompleted even with zero rolls left.
func (c *Controller) Roll(ctx context.Context, email, area string) (*RollOutcome, error) {
	key := model.NewPlayerKey(email, area)

	var outcome *RollOutcome
	err := c.storage.WithAreaLock(ctx, key.Area, func(ctx context.Context) error {
		player, err := c.storage.GetPlayer(ctx, key)
		if err != nil {
			return err
		}
		if player.Completed {
			return model.ErrAlreadyCompleted
		}
		if player.AvailableRolls() == 0 {
			return model.ErrNoRollsRemaining
		}

		die := c.rollDie(player)
		from := player.Position
		to := model.ResolveLanding(from, die)

		player.Position = to
		player.RollsUsed++
		player.UpdatedAt = c.clock.Now()

		if to == model.FinalSquare {
			player.Completed = true
			amount, err := c.rewards.Allocate(ctx, key.Area)
			if err != nil {
				return err
			}
			player.Reward = &amount
		}

		if err := c.storage.SavePlayer(ctx, player); err != nil {
			return err
		}

		outcome = &RollOutcome{
			DieValue:     die,
			FromPosition: from,
			ToPosition:   to,
			RollsUsed:    player.RollsUsed,
			RollsGranted: player.RollsGranted,
			Completed:    player.Completed,
			Reward:       player.Reward,
		}

		attrs := []any{
			slog.String("email", key.Email),
			slog.String("area", key.Area),
			slog.Int("die", die),
			slog.Int("from", from),
			slog.Int("to", to),
			slog.Bool("completed", player.Completed),
		}
		if player.Reward != nil {
			attrs = append(attrs, slog.Int("reward", *player.Reward))
		}
		c.logger.InfoContext(ctx, "roll resolved", attrs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// rollDie picks the die value for this roll
func (c *Controller) rollDie(player *model.PlayerRecord) int {
	if c.cfg.GuaranteedFinish && player.AvailableRolls() == 1 {
		// Force an exact finish on the last roll when the final square
		// is within die range
		if needed := model.FinalSquare - player.Position; needed >= 1 && needed <= 6 {
			return needed
		}
	}
	return c.random.Intn(6) + 1
}

// Reset puts the player back at the start of the board. The roll allowance
// is preserved; only board progress and the reward are cleared.
func (c *Controller) Reset(ctx context.Context, email, area string) (*model.PlayerRecord, error) {
	key := model.NewPlayerKey(email, area)

	var player *model.PlayerRecord
	err := c.storage.WithAreaLock(ctx, key.Area, func(ctx context.Context) error {
		var err error
		player, err = c.storage.GetPlayer(ctx, key)
		if err != nil {
			return err
		}

		player.Position = 0
		player.RollsUsed = 0
		player.Completed = false
		player.Reward = nil
		player.UpdatedAt = c.clock.Now()

		if err := c.storage.SavePlayer(ctx, player); err != nil {
			return err
		}

		c.logger.InfoContext(ctx, "player reset",
			slog.String("email", key.Email),
			slog.String("area", key.Area),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// Delete removes the player record entirely
func (c *Controller) Delete(ctx context.Context, email, area string) error {
	key := model.NewPlayerKey(email, area)

	return c.storage.WithAreaLock(ctx, key.Area, func(ctx context.Context) error {
		if _, err := c.storage.GetPlayer(ctx, key); err != nil {
			return err
		}
		if err := c.storage.DeletePlayer(ctx, key); err != nil {
			return err
		}
		c.logger.InfoContext(ctx, "player deleted",
			slog.String("email", key.Email),
			slog.String("area", key.Area),
		)
		return nil
	})
}

// ListByArea returns every player in the area, sorted by email
func (c *Controller) ListByArea(ctx context.Context, area string) ([]*model.PlayerRecord, error) {
	return c.storage.ListPlayersByArea(ctx, model.NormalizeArea(area))
}
