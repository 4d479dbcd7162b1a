// pkg/db/db.go

// Package db is the query-execution side of sqlrow: it opens PostgreSQL or
// MySQL pools through sqlx and hands query results out as row.Row values.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"sqlrow/pkg/row"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds database connection configuration.
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DataSourceName builds the driver name and DSN for cfg.
func DataSourceName(cfg Config) (string, string, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		return DriverPostgres, fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode), nil
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.DBName
		mc.Collation = "utf8mb4_general_ci"
		// Zone-less DATETIME values come back as UTC wall clocks, which is
		// what row's calendar-aware accessors expect.
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Params = map[string]string{"time_zone": "'+00:00'"}
		return DriverMySQL, mc.FormatDSN(), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Open connects to the database described by cfg and verifies the
// connection. Struct mapping resolves Go field names with row.CamelToSnake.
func Open(cfg Config) (*sqlx.DB, error) {
	driverName, dsn, err := DataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}

	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driverName, err)
	}

	conn.MapperFunc(row.CamelToSnake)
	return conn, nil
}

// Wrap adopts an existing pool, applying the same field mapping as Open.
func Wrap(conn *sql.DB, driverName string) *sqlx.DB {
	db := sqlx.NewDb(conn, driverName)
	db.MapperFunc(row.CamelToSnake)
	return db
}
