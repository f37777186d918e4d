package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.PlayerRecord) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.Key())
	indexKey := areaPlayersIndexKey(player.Area)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, indexKey, key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, key model.PlayerKey) (*model.PlayerRecord, error) {
	data, err := s.client.Get(ctx, playerKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.PlayerRecord
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, key model.PlayerKey) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(key))
	pipe.SRem(ctx, areaPlayersIndexKey(key.Area), playerKey(key))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPlayersByArea(ctx context.Context, area string) ([]*model.PlayerRecord, error) {
	players, err := s.playersInArea(ctx, area)
	if err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Email < players[j].Email
	})
	return players, nil
}

func (s *Storage) CountRewardWinners(ctx context.Context, area string, reward int) (int, error) {
	players, err := s.playersInArea(ctx, area)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, player := range players {
		if player.Reward != nil && *player.Reward == reward {
			count++
		}
	}
	return count, nil
}

// playersInArea fetches every player record indexed under the area
func (s *Storage) playersInArea(ctx context.Context, area string) ([]*model.PlayerRecord, error) {
	keys, err := s.client.SMembers(ctx, areaPlayersIndexKey(area)).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.PlayerRecord{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.PlayerRecord, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Deleted out-of-band; index entry is stale
		}
		var player model.PlayerRecord
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}

// Prize configuration

func (s *Storage) SavePrizeConfig(ctx context.Context, cfg *model.AreaPrizeConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, prizeConfigKey(cfg.Area), data, 0).Err()
}

func (s *Storage) GetPrizeConfig(ctx context.Context, area string) (*model.AreaPrizeConfig, error) {
	data, err := s.client.Get(ctx, prizeConfigKey(area)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPrizeConfigNotFound
		}
		return nil, err
	}

	var cfg model.AreaPrizeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Grant ledger, one record per area

func (s *Storage) SaveGrantRecord(ctx context.Context, rec *model.GrantRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, grantKey(rec.Area), data, 0).Err()
}

func (s *Storage) LatestGrantRecord(ctx context.Context, area string) (*model.GrantRecord, error) {
	data, err := s.client.Get(ctx, grantKey(area)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoGrantHistory
		}
		return nil, err
	}

	var rec model.GrantRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Storage) DeleteGrantRecord(ctx context.Context, area string) error {
	return s.client.Del(ctx, grantKey(area)).Err()
}

// Admin credentials

func (s *Storage) SaveAdminCredential(ctx context.Context, cred *model.AdminCredential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, adminCredentialKey(), data, 0).Err()
}

func (s *Storage) GetAdminCredential(ctx context.Context) (*model.AdminCredential, error) {
	data, err := s.client.Get(ctx, adminCredentialKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAdminCredentialNotFound
		}
		return nil, err
	}

	var cred model.AdminCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// WithAreaLock acquires the area's lease lock, runs fn, then releases the
// lock. The lease expires after LockTTL in case the holder dies.

func (s *Storage) WithAreaLock(ctx context.Context, area string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()

	if err := s.acquireLock(ctx, area, token); err != nil {
		return err
	}
	defer s.releaseLock(area, token)

	return fn(ctx)
}

func (s *Storage) acquireLock(ctx context.Context, area, token string) error {
	key := areaLockKey(area)
	for {
		ok, err := s.client.SetNX(ctx, key, token, s.cfg.LockTTL).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.LockRetryInterval):
		}
	}
}

// releaseUnlockScript deletes the lock only if this holder still owns it
var releaseUnlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (s *Storage) releaseLock(area, token string) {
	// Release on a fresh context: the caller's context may already be
	// cancelled, and an unreleased lock blocks the area until the TTL.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = releaseUnlockScript.Run(ctx, s.client, []string{areaLockKey(area)}, token).Err()
}
