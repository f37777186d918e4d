package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/storage"
)

// Storage is a SQL-backed implementation of the storage interface,
// supporting SQLite and Postgres
type Storage struct {
	db      *sql.DB
	dialect Dialect

	// Area locks are held in-process, which assumes a single server
	// instance in front of the database. Multi-instance deployments
	// should use the Redis backend instead.
	lockMu    sync.Mutex
	areaLocks map[string]*sync.Mutex
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New opens the database and bootstraps the schema
func New(ctx context.Context, cfg Config) (*Storage, error) {
	var driver string
	switch cfg.Dialect {
	case DialectSQLite:
		driver = "sqlite"
	case DialectPostgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unknown sql dialect %q", cfg.Dialect)
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.Dialect == DialectSQLite {
		// modernc sqlite does not tolerate concurrent writers on one
		// connection pool
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s := &Storage{
		db:        db,
		dialect:   cfg.Dialect,
		areaLocks: make(map[string]*sync.Mutex),
	}

	if err := s.bootstrap(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// bind rewrites ? placeholders into the dialect's placeholder style
func (s *Storage) bind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Storage) bootstrap(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			email TEXT NOT NULL,
			area TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			rolls_used INTEGER NOT NULL DEFAULT 0,
			rolls_granted INTEGER NOT NULL DEFAULT 0,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			reward INTEGER,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (email, area)
		)`,
		`CREATE TABLE IF NOT EXISTS prize_config (
			area TEXT PRIMARY KEY,
			max_high_tier_winners INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS grant_records (
			area TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			emails TEXT NOT NULL,
			amount INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS admin_credentials (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrapping schema: %w", err)
		}
	}
	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.PlayerRecord) error {
	var reward sql.NullInt64
	if player.Reward != nil {
		reward = sql.NullInt64{Int64: int64(*player.Reward), Valid: true}
	}

	query := s.bind(`INSERT INTO players
		(email, area, position, rolls_used, rolls_granted, completed, reward, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email, area) DO UPDATE SET
			position = excluded.position,
			rolls_used = excluded.rolls_used,
			rolls_granted = excluded.rolls_granted,
			completed = excluded.completed,
			reward = excluded.reward,
			updated_at = excluded.updated_at`)

	_, err := s.db.ExecContext(ctx, query,
		player.Email, player.Area,
		player.Position, player.RollsUsed, player.RollsGranted,
		player.Completed, reward,
		player.CreatedAt, player.UpdatedAt,
	)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, key model.PlayerKey) (*model.PlayerRecord, error) {
	query := s.bind(`SELECT email, area, position, rolls_used, rolls_granted, completed, reward, created_at, updated_at
		FROM players WHERE email = ? AND area = ?`)

	player, err := scanPlayer(s.db.QueryRowContext(ctx, query, key.Email, key.Area))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, key model.PlayerKey) error {
	query := s.bind(`DELETE FROM players WHERE email = ? AND area = ?`)
	_, err := s.db.ExecContext(ctx, query, key.Email, key.Area)
	return err
}

func (s *Storage) ListPlayersByArea(ctx context.Context, area string) ([]*model.PlayerRecord, error) {
	query := s.bind(`SELECT email, area, position, rolls_used, rolls_granted, completed, reward, created_at, updated_at
		FROM players WHERE area = ? ORDER BY email ASC`)

	rows, err := s.db.QueryContext(ctx, query, area)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []*model.PlayerRecord{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func (s *Storage) CountRewardWinners(ctx context.Context, area string, reward int) (int, error) {
	query := s.bind(`SELECT COUNT(*) FROM players WHERE area = ? AND reward = ?`)

	var count int
	if err := s.db.QueryRowContext(ctx, query, area, reward).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// scannable covers both sql.Row and sql.Rows
type scannable interface {
	Scan(dest ...any) error
}

func scanPlayer(row scannable) (*model.PlayerRecord, error) {
	var player model.PlayerRecord
	var reward sql.NullInt64

	err := row.Scan(
		&player.Email, &player.Area,
		&player.Position, &player.RollsUsed, &player.RollsGranted,
		&player.Completed, &reward,
		&player.CreatedAt, &player.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reward.Valid {
		r := int(reward.Int64)
		player.Reward = &r
	}
	return &player, nil
}

// Prize configuration

func (s *Storage) SavePrizeConfig(ctx context.Context, cfg *model.AreaPrizeConfig) error {
	query := s.bind(`INSERT INTO prize_config (area, max_high_tier_winners, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (area) DO UPDATE SET
			max_high_tier_winners = excluded.max_high_tier_winners,
			updated_at = excluded.updated_at`)

	_, err := s.db.ExecContext(ctx, query, cfg.Area, cfg.MaxHighTierWinners, cfg.UpdatedAt)
	return err
}

func (s *Storage) GetPrizeConfig(ctx context.Context, area string) (*model.AreaPrizeConfig, error) {
	query := s.bind(`SELECT area, max_high_tier_winners, updated_at FROM prize_config WHERE area = ?`)

	var cfg model.AreaPrizeConfig
	err := s.db.QueryRowContext(ctx, query, area).Scan(&cfg.Area, &cfg.MaxHighTierWinners, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPrizeConfigNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// Grant ledger, one row per area

func (s *Storage) SaveGrantRecord(ctx context.Context, rec *model.GrantRecord) error {
	emails, err := json.Marshal(rec.Emails)
	if err != nil {
		return err
	}

	query := s.bind(`INSERT INTO grant_records (area, id, emails, amount, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (area) DO UPDATE SET
			id = excluded.id,
			emails = excluded.emails,
			amount = excluded.amount,
			created_at = excluded.created_at`)

	_, err = s.db.ExecContext(ctx, query, rec.Area, rec.ID, string(emails), rec.Amount, rec.CreatedAt)
	return err
}

func (s *Storage) LatestGrantRecord(ctx context.Context, area string) (*model.GrantRecord, error) {
	query := s.bind(`SELECT area, id, emails, amount, created_at FROM grant_records WHERE area = ?`)

	var rec model.GrantRecord
	var emails string
	err := s.db.QueryRowContext(ctx, query, area).Scan(&rec.Area, &rec.ID, &emails, &rec.Amount, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNoGrantHistory
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(emails), &rec.Emails); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Storage) DeleteGrantRecord(ctx context.Context, area string) error {
	query := s.bind(`DELETE FROM grant_records WHERE area = ?`)
	_, err := s.db.ExecContext(ctx, query, area)
	return err
}

// Admin credentials

func (s *Storage) SaveAdminCredential(ctx context.Context, cred *model.AdminCredential) error {
	query := s.bind(`INSERT INTO admin_credentials (username, password_hash, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO UPDATE SET
			password_hash = excluded.password_hash,
			updated_at = excluded.updated_at`)

	_, err := s.db.ExecContext(ctx, query, cred.Username, cred.PasswordHash, cred.UpdatedAt)
	return err
}

func (s *Storage) GetAdminCredential(ctx context.Context) (*model.AdminCredential, error) {
	query := `SELECT username, password_hash, updated_at FROM admin_credentials LIMIT 1`

	var cred model.AdminCredential
	err := s.db.QueryRowContext(ctx, query).Scan(&cred.Username, &cred.PasswordHash, &cred.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAdminCredentialNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// WithAreaLock serializes work per area with an in-process mutex

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
