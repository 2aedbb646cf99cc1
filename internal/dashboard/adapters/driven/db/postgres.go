package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shuttle-admin/internal/config"
	"shuttle-admin/internal/dashboard/core/ports/driven"
	"shuttle-admin/internal/mylogger"

	"github.com/jackc/pgx/v5"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS dashboard_settings (
	scope      TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (scope, key)
)`

var ErrNotInitialized = errors.New("DB is not initialized")

// PostgresStore keeps session settings in postgres over a single connection.
type PostgresStore struct {
	ctx   context.Context
	cfg   *config.DBconfig
	mylog mylogger.Logger
	conn  *pgx.Conn
	mu    *sync.Mutex
}

// NewPostgresStore connects and makes sure the settings table exists.
func NewPostgresStore(ctx context.Context, dbCfg *config.DBconfig, mylog mylogger.Logger) (driven.ISettingsStore, error) {
	d := &PostgresStore{
		cfg:   dbCfg,
		ctx:   ctx,
		mylog: mylog,
		mu:    &sync.Mutex{},
	}

	if err := d.connect(); err != nil {
		return nil, err
	}
	if _, err := d.conn.Exec(ctx, postgresSchema); err != nil {
		d.conn.Close(ctx)
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}

	return d, nil
}

func (d *PostgresStore) Get(ctx context.Context, scope, key string) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return "", false, ErrNotInitialized
	}

	var value string
	err := d.conn.QueryRow(ctx,
		`SELECT value FROM dashboard_settings WHERE scope = $1 AND key = $2`, scope, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

func (d *PostgresStore) Set(ctx context.Context, scope, key, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return ErrNotInitialized
	}

	_, err := d.conn.Exec(ctx, `
		INSERT INTO dashboard_settings (scope, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (scope, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		scope, key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func (d *PostgresStore) Delete(ctx context.Context, scope, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return ErrNotInitialized
	}

	if _, err := d.conn.Exec(ctx, `DELETE FROM dashboard_settings WHERE scope = $1 AND key = $2`, scope, key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// IsAlive pings the DB and reconnects once on failure
func (d *PostgresStore) IsAlive(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return ErrNotInitialized
	}
	if err := d.conn.Ping(ctx); err != nil {
		d.mylog.Action("db_ping_failed").Warn("ping failed, reconnecting", "error", err.Error())
		_ = d.conn.Close(ctx)
		if connectionErr := d.connect(); connectionErr != nil {
			return fmt.Errorf("ping failed: %w", err)
		}
	}
	return nil
}

// Close closes the connection. Later calls report the store as not initialized.
func (d *PostgresStore) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return nil
	}
	conn := d.conn
	d.conn = nil
	if err := conn.Close(d.ctx); err != nil {
		return fmt.Errorf("close database connection: %v", err)
	}
	return nil
}

func (d *PostgresStore) connect() error {
	conn, err := pgx.Connect(d.ctx, d.cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	d.conn = conn
	return nil
}
