package db

import (
	"database/sql"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// battleshipDatabaseName is the logical database name golang-migrate records
// its version table under. It need not match the psqlUrl's actual database
// name; migrate only uses it to namespace the schema_migrations table.
const battleshipDatabaseName = "battleship_analytics"

// Pool sizing here is small relative to the teacher's original: this
// connection only ever serves the analytics counter table, not the game's
// hot path, so there is no reason to hold hundreds of idle connections open.
const (
	maxOpenConns = 10
	maxIdleConns = 5
	connMaxLife  = 30 * time.Minute
)

// MustMigrate applies any pending migrations under migrationDir, panicking
// on a dirty schema or a failed migration. Intended to run once at server
// startup, before any session accepts a connection.
func MustMigrate(logger *log.Logger, sqlDB *sql.DB, migrationDir string) {
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{
		DatabaseName: battleshipDatabaseName,
	})
	if err != nil {
		panic(err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationDir, battleshipDatabaseName, driver)
	if err != nil {
		panic(err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		panic(err)
	}
	if dirty {
		panic("database schema is dirty, refusing to start")
	}
	logger.Printf("db: migration version %d (dirty=%v)", version, dirty)

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			return
		}
		panic(err)
	}
	logger.Println("db: migration applied")
}

// MustConnectToDb opens the analytics database, verifies connectivity, and
// runs pending migrations from db/migration before returning. Panics on any
// failure since a server that cannot reach its analytics store has no
// meaningful way to degrade short of running without one entirely — the
// caller chooses that fallback by not calling MustConnectToDb at all when
// DATABASE_URL is unset (see cmd/battleship-server).
func MustConnectToDb(logger *log.Logger, psqlUrl string) *sql.DB {
	sqlDB, err := sql.Open("postgres", psqlUrl)
	if err != nil {
		panic(err)
	}

	if err := sqlDB.Ping(); err != nil {
		panic(err)
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLife)

	MustMigrate(logger, sqlDB, "file://db/migration")
	return sqlDB
}
