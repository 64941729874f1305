package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"dipsport/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName        = "postgres"
	maxIdleConnection = 10
	maxOpenConnection = 10
	connMaxLifetime   = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Transactor runs fn inside a single write transaction. A returned error or a panic rolls
// back every statement executed through tx.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

func NewTransactor(conn *Connection) Transactor {
	return conn
}

func (c *Connection) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Close releases both pools. The read pool may be the write pool when they share a DSN.
func (c *Connection) Close() error {
	errs := []error{c.Write.Close()}
	if c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	return errors.Join(errs...)
}

// DSN renders a lib/pq connection URL for endpoint. Credentials are escaped and the session
// timezone is pinned when the endpoint names one.
func DSN(prefix string, endpoint config.PostgresEndpoint) string {
	query := url.Values{}
	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// New opens the write pool and the read pool, reusing the write pool when both point at the same database.
func New(cfg *config.Config) (*Connection, func(), error) {
	pg := cfg.DB.Postgres

	write, err := connect("write", DSN(pg.Prefix, pg.Write), pg.MaxRetry, pg.RetryWaitTime)
	if err != nil {
		return nil, nil, err
	}

	read := write

	if readDSN := DSN(pg.Prefix, pg.Read); readDSN != DSN(pg.Prefix, pg.Write) {
		if read, err = connect("read", readDSN, pg.MaxRetry, pg.RetryWaitTime); err != nil {
			_ = write.Close()

			return nil, nil, err
		}
	}

	conn := &Connection{Read: read, Write: write}

	return conn, func() {
		if err := conn.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database pools")
		}
	}, nil
}

func connect(role, dsn string, maxRetry, waitSeconds int) (*sqlx.DB, error) {
	attempts := max(1, maxRetry)

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnection)
			db.SetMaxOpenConns(maxOpenConnection)
			db.SetConnMaxLifetime(connMaxLifetime)

			log.Info().Str("role", role).Int("attempt", attempt).Msg("connected to database")

			return db, nil
		}

		lastErr = err

		log.Warn().Err(err).Str("role", role).Int("attempt", attempt).Int("max_attempts", attempts).Msg("failed connecting to database")

		if attempt < attempts {
			time.Sleep(time.Duration(waitSeconds) * time.Second)
		}
	}

	return nil, fmt.Errorf("connect %s database after %d attempts: %w", role, attempts, lastErr)
}
