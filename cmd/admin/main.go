package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"blackjack-server/internal/config"
	"blackjack-server/internal/jwt"
	"blackjack-server/pkg/db"
	"blackjack-server/pkg/store"

	"github.com/sirupsen/logrus"
)

var command = flag.String("c", "token", "specifies the command (token, keys, journal, rooms, results)")
var address = flag.String("address", "", "the address to act on")
var roomID = flag.Int64("room", 0, "the room to act on")
var keyDir = flag.String("dir", ".keys", "where keys are written")

func main() {
	flag.Parse()

	switch *command {
	case "token":
		requireAddress()

		jwt.LoadKeys()
		token, err := jwt.Sign(*address)
		if err != nil {
			logrus.WithError(err).Fatal("could not sign token")
		}

		fmt.Println(token)
	case "keys":
		if err := writeKeys(*keyDir); err != nil {
			logrus.WithError(err).Fatal("could not generate keys")
		}

		fmt.Printf("Keys written to %s\n", *keyDir)
	case "journal":
		requireAddress()

		entries, err := newStore().Entries(context.Background(), *address)
		if err != nil {
			logrus.WithError(err).Fatal("could not read the journal")
		}

		var balance int64
		for _, e := range entries {
			balance += e.Delta
			fmt.Printf("%6d  room %-4d %-10s %8d %10d\n", e.Seq, e.RoomID, e.Reason, e.Delta, balance)
		}
	case "rooms":
		rooms, err := newStore().Rooms(context.Background())
		if err != nil {
			logrus.WithError(err).Fatal("could not read the rooms")
		}

		for _, r := range rooms {
			fmt.Printf("%4d  %-32s %s\n", r.ID, r.Name, r.Creator)
		}
	case "results":
		if *roomID < 1 {
			logrus.Fatal("-room is required")
		}

		results, err := newStore().Results(context.Background(), *roomID)
		if err != nil {
			logrus.WithError(err).Fatal("could not read the results")
		}

		for _, r := range results {
			fmt.Printf("round %d: dealer %s %d\n", r.Round, r.Dealer, r.DealerOutcome)
			for i, player := range r.Players {
				fmt.Printf("  %s %d\n", player, r.Outcomes[i])
			}
		}
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func requireAddress() {
	if *address == "" {
		logrus.Fatal("-address is required")
	}
}

func newStore() *store.Store {
	cfg := config.Instance()
	if cfg.DB.Driver == "" {
		logrus.Fatal("no database driver configured")
	}

	return store.New(db.Instance(), cfg.DB.Driver)
}

// writeKeys generates the RS256 key pair the server signs tokens with
func writeKeys(dir string) error {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	private := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	if err := os.WriteFile(filepath.Join(dir, "private.key"), private, 0o600); err != nil {
		return err
	}

	publicBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return err
	}

	public := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicBytes,
	})

	return os.WriteFile(filepath.Join(dir, "public.pem"), public, 0o644)
}
