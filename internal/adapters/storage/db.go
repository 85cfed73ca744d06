package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"kingdomstudio/internal/config"
)

// Pool names used in logs and metrics.
const (
	PoolPublic     = "public"
	PoolPrivileged = "privileged"
)

// Pools holds the two remote connections: one authenticated with the
// public key and one with the privileged key. When no privileged key is
// configured Privileged is the public pool.
type Pools struct {
	Public     *TimedDB
	Privileged *TimedDB

	// Fallback is true when Privileged shares the public credentials.
	Fallback bool
}

// BuildDSN injects role credentials into a Postgres URL.
// PRE: rawURL is a postgres:// or postgresql:// URL
// POST: Returns the URL with user info set to role:key
func BuildDSN(rawURL, role, key string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid store url: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", errors.New("store url must use the postgres scheme")
	}
	if u.Host == "" {
		return "", errors.New("store url has no host")
	}
	u.User = url.UserPassword(role, key)
	return u.String(), nil
}

// OpenPools opens the public and privileged pools.
// Connections are lazy; an unreachable store is logged, not fatal,
// because every read degrades to defaults.
// PRE: cfg passed config.Validate
// POST: Returns pools ready for store constructors
func OpenPools(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*Pools, error) {
	public, err := openPool(ctx, cfg, PoolPublic, cfg.PublicRole, cfg.PublicKey, logger)
	if err != nil {
		return nil, err
	}
	if !cfg.HasServiceKey() {
		logger.Warn("store_event",
			zap.String("event", "privileged_key_missing"),
			zap.String("detail", "admin operations use the public key and may be refused"),
		)
		return &Pools{Public: public, Privileged: public, Fallback: true}, nil
	}
	privileged, err := openPool(ctx, cfg, PoolPrivileged, cfg.ServiceRole, cfg.ServiceKey, logger)
	if err != nil {
		public.Close()
		return nil, err
	}
	return &Pools{Public: public, Privileged: privileged}, nil
}

func openPool(ctx context.Context, cfg config.StoreConfig, name, role, key string, logger *zap.Logger) (*TimedDB, error) {
	dsn, err := BuildDSN(cfg.URL, role, key)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s pool: %w", name, err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Warn("store_event",
			zap.String("event", "ping_failed"),
			zap.String("pool", name),
			zap.Error(err),
		)
	}
	return NewTimedDB(db, name, logger, cfg.SlowQueryMs), nil
}

// Close closes both pools once.
func (p *Pools) Close() error {
	err := p.Public.Close()
	if p.Privileged != p.Public {
		err = errors.Join(err, p.Privileged.Close())
	}
	return err
}

// Schema creates the five remote tables when they are missing.
const Schema = `
CREATE TABLE IF NOT EXISTS businesses (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	logo TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	description TEXT NOT NULL,
	is_new BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS blog_posts (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	excerpt TEXT NOT NULL,
	content TEXT NOT NULL,
	author TEXT NOT NULL,
	date DATE NOT NULL,
	category TEXT NOT NULL,
	image_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS programs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	primary_color TEXT NOT NULL,
	accent_colors TEXT[] NOT NULL DEFAULT '{}',
	features TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS registrations (
	id UUID PRIMARY KEY,
	full_name TEXT NOT NULL,
	phone_number TEXT NOT NULL,
	country TEXT NOT NULL,
	industry TEXT NOT NULL,
	business_idea TEXT NOT NULL,
	open_to_collaboration TEXT NOT NULL,
	born_again TEXT NOT NULL,
	available_8_weeks TEXT NOT NULL,
	time_preference TEXT NOT NULL,
	days_preference TEXT[] NOT NULL DEFAULT '{}',
	payment_method TEXT NOT NULL,
	payment_proof TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS site_settings (
	key TEXT PRIMARY KEY,
	value JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate applies Schema. Hosted stores usually manage their own schema,
// so this only runs when store.migrate is set.
// PRE: db authenticates with a role allowed to create tables
// POST: all five tables exist
func Migrate(ctx context.Context, db SQLDB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
