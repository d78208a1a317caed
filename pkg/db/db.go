package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"blackjack-server/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // postgres driver
	_ "modernc.org/sqlite"                               // sqlite driver
)

// supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrNoDriver is returned when no database is configured
var ErrNoDriver = errors.New("no database driver configured")

var instance *sql.DB

// Instance returns a database instance
func Instance() *sql.DB {
	if instance == nil {
		LoadInstance()
	}

	return instance
}

// LoadInstance will load the database instance from the configuration
func LoadInstance() {
	cfg := config.Instance().DB
	db, err := Open(cfg.Driver, cfg.DSN)
	if err != nil {
		panic(err)
	}

	instance = db
}

// Open opens and pings a database
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	case "":
		return nil, ErrNoDriver
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// a single connection keeps in-memory databases alive and serializes writers
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs the migrations
// Postgres reads migrations from migrationsPath, sqlite applies the embedded schema.
func Migrate(db *sql.DB, driver, migrationsPath string) error {
	logrus.WithFields(logrus.Fields{
		"driver":         driver,
		"migrationsPath": migrationsPath,
	}).Info("running migrations")

	switch driver {
	case DriverSQLite:
		return applySQLiteMigrations(db)
	case DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", dbDriver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// Rebind rewrites ? placeholders into the driver's bindvar syntax
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r != '?' {
			sb.WriteRune(r)
			continue
		}

		n++
		sb.WriteByte('$')
		sb.WriteString(strconv.Itoa(n))
	}

	return sb.String()
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}
