// Package database holds the connection configuration and session setup for
// the seeding pipeline. The whole run shares a single *pgx.Conn: the session
// is not safe for concurrent use and every write is serialized through it.
package database

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ConnString builds a PostgreSQL connection string for the given database,
// which is not necessarily cfg.Name (the schema command first connects to the
// admin "postgres" database).
func (c Config) ConnString(dbName string) string {
	hostPort := c.Host
	if c.Port > 0 {
		hostPort = fmt.Sprintf("%s:%d", c.Host, c.Port)
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := &url.URL{
		Scheme:   "postgres",
		Host:     hostPort,
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + sslMode,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	return u.String()
}

// Connect opens and pings a single session against the target database.
// A failure here is fatal for the whole run.
func Connect(ctx context.Context, cfg Config, log *zap.Logger) (*pgx.Conn, error) {
	log.Info("connecting to database",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name))

	conn, err := pgx.Connect(ctx, cfg.ConnString(cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Name, err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("ping %s: %w", cfg.Name, err)
	}

	log.Info("database connection established")
	return conn, nil
}
