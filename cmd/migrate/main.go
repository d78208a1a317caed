package main

import (
	"database/sql"
	"time"

	"blackjack-server/internal/config"
	"blackjack-server/pkg/db"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Instance()
	if cfg.DB.Driver == "" {
		logrus.Fatal("no database driver configured")
	}

	if err := db.Migrate(waitForDB(), cfg.DB.Driver, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

func waitForDB() *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh := func() *sql.DB {
				defer func() { _ = recover() }()
				return db.Instance()
			}()

			if dbh != nil {
				return dbh
			}

			time.Sleep(time.Millisecond * 500)
		}
	}
}
