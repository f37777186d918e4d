package grants

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/promoarcade/snakesladders/internal/dependencies/clock"
	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/storage"
)

// Service applies bulk roll grants and undoes the most recent one
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a grants service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Grant adjusts the roll allowance of the named players by amount. A
// positive amount adds rolls, a negative amount revokes them; the
// allowance never drops below zero. A zero amount is rejected. An empty
// email list targets every player registered in the area.
//
// Players that do not exist in the area are skipped. The returned slice
// holds the emails that were actually modified, and that same set is
// recorded in the ledger so UndoLast reverses exactly this grant.
func (s *Service) Grant(ctx context.Context, area string, amount int, emails []string) ([]string, error) {
	if amount == 0 {
		return nil, model.ErrInvalidGrantAmount
	}

	area = model.NormalizeArea(area)

	var affected []string
	err := s.storage.WithAreaLock(ctx, area, func(ctx context.Context) error {
		now := s.clock.Now()

		if len(emails) == 0 {
			players, err := s.storage.ListPlayersByArea(ctx, area)
			if err != nil {
				return err
			}
			for _, player := range players {
				emails = append(emails, player.Email)
			}
		}

		for _, email := range emails {
			key := model.NewPlayerKey(email, area)
			player, err := s.storage.GetPlayer(ctx, key)
			if err != nil {
				if errors.Is(err, model.ErrPlayerNotFound) {
					continue
				}
				return err
			}

			player.RollsGranted = clampNonNegative(player.RollsGranted + amount)
			player.UpdatedAt = now
			if err := s.storage.SavePlayer(ctx, player); err != nil {
				return err
			}
			affected = append(affected, key.Email)
		}

		if len(affected) == 0 {
			return nil
		}

		rec := &model.GrantRecord{
			ID:        uuid.NewString(),
			Area:      area,
			Emails:    affected,
			Amount:    amount,
			CreatedAt: now,
		}
		if err := s.storage.SaveGrantRecord(ctx, rec); err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "grant applied",
			slog.String("grant_id", rec.ID),
			slog.String("area", area),
			slog.Int("amount", amount),
			slog.Int("players", len(affected)),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}

// UndoLast reverses the area's most recent grant by applying the inverse
// delta to the players it recorded, then clears the ledger entry. The
// ledger holds a single record per area, so a second undo fails with
// ErrNoGrantHistory until another grant is made.
//
// Players deleted since the grant are skipped. The clamp applies on the
// way back too, so undoing a revoke never pushes an allowance below zero
// twice over.
func (s *Service) UndoLast(ctx context.Context, area string) (*model.GrantRecord, error) {
	area = model.NormalizeArea(area)

	var undone *model.GrantRecord
	err := s.storage.WithAreaLock(ctx, area, func(ctx context.Context) error {
		rec, err := s.storage.LatestGrantRecord(ctx, area)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		for _, email := range rec.Emails {
			key := model.NewPlayerKey(email, area)
			player, err := s.storage.GetPlayer(ctx, key)
			if err != nil {
				if errors.Is(err, model.ErrPlayerNotFound) {
					continue
				}
				return err
			}

			player.RollsGranted = clampNonNegative(player.RollsGranted - rec.Amount)
			player.UpdatedAt = now
			if err := s.storage.SavePlayer(ctx, player); err != nil {
				return err
			}
		}

		if err := s.storage.DeleteGrantRecord(ctx, area); err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "grant undone",
			slog.String("grant_id", rec.ID),
			slog.String("area", area),
			slog.Int("amount", rec.Amount),
			slog.Int("players", len(rec.Emails)),
		)
		undone = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return undone, nil
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
