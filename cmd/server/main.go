package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"blackjack-server/internal/config"
	"blackjack-server/internal/jwt"
	"blackjack-server/internal/mux"
	"blackjack-server/internal/rng"
	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/casino"
	"blackjack-server/pkg/db"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/ledger"
	"blackjack-server/pkg/room"
	"blackjack-server/pkg/store"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (overrides the config)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	if *addr != "" {
		cfg.Addr = *addr
	}

	// fail fast
	jwt.LoadKeys()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, persister := newCasino(ctx, cfg)

	pitBoss := room.NewPitBoss(c, persister, logrus.StandardLogger())
	pitBoss.StartShift()
	defer pitBoss.EndShift()

	corsHandler := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingHandler(corsHandler.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

// newCasino builds the casino, restoring balances and room ids when a database is configured
func newCasino(ctx context.Context, cfg config.Config) (*casino.Casino, room.Persister) {
	options := blackjack.Options{
		MaxPlayers:    cfg.Game.MaxPlayers,
		MaxNameLength: cfg.Game.MaxNameLength,
		MinBet:        cfg.Game.MinBet,
		MaxBet:        cfg.Game.MaxBet,
	}

	var entropy deck.Entropy = rng.Crypto{}
	if cfg.Game.Seed != 0 {
		logrus.WithField("seed", cfg.Game.Seed).Warn("using a fixed seed, every shuffle is predictable")
		entropy = deck.FixedEntropy(cfg.Game.Seed)
	}

	casinoCfg := casino.Config{
		Options: options,
		Entropy: entropy,
		Book:    ledger.NewBook(),
		Logger:  logrus.StandardLogger(),
	}

	if cfg.DB.Driver == "" {
		logrus.Warn("no database configured, balances are kept in memory")
		return casino.New(casinoCfg), nil
	}

	dbh := db.Instance()
	if err := db.Migrate(dbh, cfg.DB.Driver, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	s := store.New(dbh, cfg.DB.Driver)
	balances, nextSeq, err := s.LoadBalances(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("could not load balances")
	}

	firstRoomID, err := s.NextRoomID(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("could not load the next room id")
	}

	casinoCfg.Book.Load(balances, nextSeq)
	casinoCfg.FirstRoomID = firstRoomID

	logrus.WithFields(logrus.Fields{
		"addresses":   len(balances),
		"firstRoomID": firstRoomID,
	}).Info("restored balances")

	return casino.New(casinoCfg), s
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
