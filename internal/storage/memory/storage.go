package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players      map[model.PlayerKey]*model.PlayerRecord
	prizeConfigs map[string]*model.AreaPrizeConfig
	grants       map[string]*model.GrantRecord
	adminCred    *model.AdminCredential

	lockMu    sync.Mutex
	areaLocks map[string]*sync.Mutex
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:      make(map[model.PlayerKey]*model.PlayerRecord),
		prizeConfigs: make(map[string]*model.AreaPrizeConfig),
		grants:       make(map[string]*model.GrantRecord),
		areaLocks:    make(map[string]*sync.Mutex),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations
//
// Records are cloned on the way in and out so callers only mutate state
// through SavePlayer.

func (s *Storage) SavePlayer(ctx context.Context, player *model.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.Key()] = player.Clone()
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, key model.PlayerKey) (*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[key]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, key model.PlayerKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, key)
	return nil
}

func (s *Storage) ListPlayersByArea(ctx context.Context, area string) ([]*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []*model.PlayerRecord
	for key, player := range s.players {
		if key.Area == area {
			players = append(players, player.Clone())
		}
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Email < players[j].Email
	})
	return players, nil
}

func (s *Storage) CountRewardWinners(ctx context.Context, area string, reward int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for key, player := range s.players {
		if key.Area == area && player.Reward != nil && *player.Reward == reward {
			count++
		}
	}
	return count, nil
}

// Prize configuration

func (s *Storage) SavePrizeConfig(ctx context.Context, cfg *model.AreaPrizeConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *cfg
	s.prizeConfigs[cfg.Area] = &clone
	return nil
}

func (s *Storage) GetPrizeConfig(ctx context.Context, area string) (*model.AreaPrizeConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.prizeConfigs[area]
	if !ok {
		return nil, model.ErrPrizeConfigNotFound
	}
	clone := *cfg
	return &clone, nil
}

// Grant ledger, one record per area

func (s *Storage) SaveGrantRecord(ctx context.Context, rec *model.GrantRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *rec
	clone.Emails = append([]string(nil), rec.Emails...)
	s.grants[rec.Area] = &clone
	return nil
}

func (s *Storage) LatestGrantRecord(ctx context.Context, area string) (*model.GrantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.grants[area]
	if !ok {
		return nil, model.ErrNoGrantHistory
	}
	clone := *rec
	clone.Emails = append([]string(nil), rec.Emails...)
	return &clone, nil
}

func (s *Storage) DeleteGrantRecord(ctx context.Context, area string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants, area)
	return nil
}

// Admin credentials

func (s *Storage) SaveAdminCredential(ctx context.Context, cred *model.AdminCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *cred
	s.adminCred = &clone
	return nil
}

func (s *Storage) GetAdminCredential(ctx context.Context) (*model.AdminCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.adminCred == nil {
		return nil, model.ErrAdminCredentialNotFound
	}
	clone := *s.adminCred
	return &clone, nil
}

// WithAreaLock serializes callers per area with a dedicated mutex.

func (s *Storage) WithAreaLock(ctx context.Context, area string, fn func(ctx context.Context) error) error {
	mu := s.areaLock(area)
	mu.Lock()
	defer mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

func (s *Storage) areaLock(area string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	mu, ok := s.areaLocks[area]
	if !ok {
		mu = &sync.Mutex{}
		s.areaLocks[area] = mu
	}
	return mu
}
