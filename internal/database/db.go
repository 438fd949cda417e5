package database

import (
	"context"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Open builds the connection pool and verifies the database is actually
// reachable before the server starts taking requests.
func Open(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DBURL)
	if err != nil {
		return nil, err
	}
	pcfg.MaxConns = 16
	pcfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
