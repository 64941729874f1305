package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"dipsport/config"
	"dipsport/infras/postgres"
	"dipsport/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

var actions = map[string]func(*migrate.Migrate) error{
	ActionUp:     (*migrate.Migrate).Up,
	ActionDown:   func(m *migrate.Migrate) error { return m.Steps(-1) },
	ActionStepUp: func(m *migrate.Migrate) error { return m.Steps(1) },
	ActionDrop:   (*migrate.Migrate).Down,
}

// DSN is the write-side connection URL with the migration bookkeeping table applied.
func DSN(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	dsn, err := url.Parse(postgres.DSN(pg.Prefix, pg.Write))
	if err != nil || pg.MigrationTable == "" {
		return postgres.DSN(pg.Prefix, pg.Write)
	}

	query := dsn.Query()
	query.Set("x-migrations-table", pg.MigrationTable)
	dsn.RawQuery = query.Encode()

	return dsn.String()
}

func newMigrator(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return mig, nil
}

// Migrate runs one of the Action* operations. Running with nothing to apply is not an error.
func Migrate(cfg *config.Config, action string) error {
	run, ok := actions[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := newMigrator(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("closing migrator")
		}
	}()

	if err = run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("database migration finished")

	return nil
}
