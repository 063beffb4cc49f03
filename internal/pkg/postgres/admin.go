package postgres

import (
	"context"
	"fmt"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Admin provisions the analytics table
type Admin struct {
	pool  execer
	table string
}

// NewAdmin creates table admin
func NewAdmin(pool *pgxpool.Pool, table string) (*Admin, error) {
	return newAdmin(pool, table)
}

func newAdmin(pool execer, table string) (*Admin, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return &Admin{pool: pool, table: table}, nil
}

// Drop deletes the table if it exists
func (a *Admin) Drop(ctx context.Context) error {
	goapp.Log.Info().Str("table", a.table).Msg("deleting table if exists")
	if _, err := a.pool.Exec(ctx, `DROP TABLE IF EXISTS `+a.table); err != nil {
		return fmt.Errorf("can't drop %s: %w", a.table, err)
	}
	return nil
}

// Create creates the table
func (a *Admin) Create(ctx context.Context) error {
	goapp.Log.Info().Str("table", a.table).Msg("creating table")
	if _, err := a.pool.Exec(ctx, `CREATE TABLE `+a.table+` (
	meeting_id TEXT NOT NULL,
	gs_uri TEXT NOT NULL,
	transcript TEXT,
	mom TEXT,
	created_at TIMESTAMPTZ NOT NULL
)`); err != nil {
		return fmt.Errorf("can't create %s: %w", a.table, err)
	}
	return nil
}
