package storage

import (
	"context"

	"github.com/promoarcade/snakesladders/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.PlayerRecord) error
	GetPlayer(ctx context.Context, key model.PlayerKey) (*model.PlayerRecord, error)
	DeletePlayer(ctx context.Context, key model.PlayerKey) error
	ListPlayersByArea(ctx context.Context, area string) ([]*model.PlayerRecord, error)

	// CountRewardWinners returns how many players in the area hold the
	// given reward amount. Call it inside WithAreaLock when the result
	// feeds a check-then-act decision.
	CountRewardWinners(ctx context.Context, area string, reward int) (int, error)

	// Prize configuration
	SavePrizeConfig(ctx context.Context, cfg *model.AreaPrizeConfig) error
	GetPrizeConfig(ctx context.Context, area string) (*model.AreaPrizeConfig, error)

	// Grant ledger. Each area holds at most one record, the most recent
	// grant. Saving replaces the area's record and deleting clears it.
	SaveGrantRecord(ctx context.Context, rec *model.GrantRecord) error
	LatestGrantRecord(ctx context.Context, area string) (*model.GrantRecord, error)
	DeleteGrantRecord(ctx context.Context, area string) error

	// Admin credentials
	SaveAdminCredential(ctx context.Context, cred *model.AdminCredential) error
	GetAdminCredential(ctx context.Context) (*model.AdminCredential, error)

	// WithAreaLock runs fn while holding an exclusive lock on the area.
	// Every roll resolution and grant/undo mutation executes inside fn so
	// that read-modify-write sequences (including the scarce high-tier
	// reward check) never interleave.
	WithAreaLock(ctx context.Context, area string, fn func(ctx context.Context) error) error
}
