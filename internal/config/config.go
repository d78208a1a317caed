package config

import (
	"errors"
	"os"

	"blackjack-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the blackjack server
type Config struct {
	loaded bool

	Addr           string `yaml:"addr" envconfig:"addr"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`

	DB struct {
		// Driver is postgres or sqlite, empty keeps balances in memory only
		Driver string `yaml:"driver" envconfig:"driver"`
		DSN    string `yaml:"dsn" envconfig:"dsn"`
	} `yaml:"db"`

	JWT struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`

	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`

	Game struct {
		MaxPlayers    int   `yaml:"maxPlayers" envconfig:"max_players"`
		MaxNameLength int   `yaml:"maxNameLength" envconfig:"max_name_length"`
		MinBet        int64 `yaml:"minBet" envconfig:"min_bet"`
		MaxBet        int64 `yaml:"maxBet" envconfig:"max_bet"`

		// Seed fixes the entropy of every room, 0 draws a seed from crypto/rand each round
		Seed int64 `yaml:"seed" envconfig:"seed"`
	} `yaml:"game"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	var cfg Config
	cfg.Addr = ":5000"
	cfg.MigrationsPath = "./sql"
	cfg.JWT.PublicKey = ".keys/public.pem"
	cfg.JWT.PrivateKey = ".keys/private.key"
	cfg.Log.Level = "info"
	cfg.Game.MaxPlayers = 3
	cfg.Game.MaxNameLength = 32
	cfg.Game.MinBet = 1

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults and the environment still apply.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("BJ_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	if err := envconfig.Process("bj", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
