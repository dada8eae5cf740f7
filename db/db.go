package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Import postgres driver
)

// Pool настраивает пул соединений *sql.DB.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// PingTimeout ограничивает первую проверку соединения.
	PingTimeout time.Duration
}

func DefaultPool() Pool {
	return Pool{
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// Connect opens a Postgres handle and verifies it with a ping bounded by
// pool.PingTimeout. Zero fields of pool fall back to DefaultPool.
func Connect(ctx context.Context, dsn string, pool Pool) (*sql.DB, error) {
	pool = pool.withDefaults()

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}
	conn.SetMaxOpenConns(pool.MaxOpenConns)
	conn.SetMaxIdleConns(min(pool.MaxIdleConns, pool.MaxOpenConns))
	conn.SetConnMaxLifetime(pool.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pool.PingTimeout)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		return nil, errors.Join(
			fmt.Errorf("failed to ping database within %v: %w", pool.PingTimeout, err),
			conn.Close(),
		)
	}
	return conn, nil
}

func (p Pool) withDefaults() Pool {
	def := DefaultPool()
	if p.MaxOpenConns <= 0 {
		p.MaxOpenConns = def.MaxOpenConns
	}
	if p.MaxIdleConns <= 0 {
		p.MaxIdleConns = def.MaxIdleConns
	}
	if p.ConnMaxLifetime <= 0 {
		p.ConnMaxLifetime = def.ConnMaxLifetime
	}
	if p.PingTimeout <= 0 {
		p.PingTimeout = def.PingTimeout
	}
	return p
}
