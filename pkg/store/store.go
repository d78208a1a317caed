package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/db"
	"blackjack-server/pkg/ledger"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// ErrAlreadyRecorded is returned when a room, journal entry or round result was persisted before
var ErrAlreadyRecorded = errors.New("already recorded")

// RoundResult is the outcome of a round in a room
type RoundResult struct {
	RoomID int64 `json:"roomId"`
	blackjack.RoundResults
}

// Room is a room that was opened in the casino
type Room struct {
	ID int64 `json:"id"`
	blackjack.RoomCreatedData
}

// Batch is everything a single committed operation changed
type Batch struct {
	Rooms   []Room
	Entries []ledger.Entry
	Results []RoundResult
}

// Empty returns true if there is nothing to record
func (b Batch) Empty() bool {
	return len(b.Rooms) == 0 && len(b.Entries) == 0 && len(b.Results) == 0
}

// Store persists balances, the ledger journal and round results
type Store struct {
	db     *sql.DB
	driver string
}

// New returns a store backed by the database
func New(sqlDB *sql.DB, driver string) *Store {
	return &Store{
		db:     sqlDB,
		driver: driver,
	}
}

func (s *Store) rebind(query string) string {
	return db.Rebind(s.driver, query)
}

// LoadBalances returns every persisted balance and the sequence number of the next journal entry
func (s *Store) LoadBalances(ctx context.Context) (map[string]int64, int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT address, balance FROM balances`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	balances := make(map[string]int64)
	for rows.Next() {
		var address string
		var balance int64
		if err := rows.Scan(&address, &balance); err != nil {
			return nil, 0, err
		}

		balances[address] = balance
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var maxSeq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM ledger_entries`).Scan(&maxSeq); err != nil {
		return nil, 0, err
	}

	return balances, maxSeq.Int64 + 1, nil
}

// NextRoomID returns an id greater than every room id that has been persisted
func (s *Store) NextRoomID(ctx context.Context) (int64, error) {
	const query = `
SELECT MAX(room_id) FROM (
    SELECT id AS room_id FROM rooms
    UNION ALL
    SELECT room_id FROM ledger_entries
    UNION ALL
    SELECT room_id FROM round_results
) ids`

	var maxID sql.NullInt64
	if err := s.db.QueryRowContext(ctx, query).Scan(&maxID); err != nil {
		return 0, err
	}

	return maxID.Int64 + 1, nil
}

// Record persists created rooms, journal entries and round results in a single transaction
func (s *Store) Record(ctx context.Context, b Batch) error {
	if b.Empty() {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	commit := false
	defer func() {
		if commit {
			return
		}

		if err := tx.Rollback(); err != nil {
			logrus.WithError(err).Error("could not rollback transaction")
		}
	}()

	now := time.Now().UTC().UnixMilli()
	if err := s.recordRooms(ctx, tx, b.Rooms, now); err != nil {
		return err
	}

	if err := s.recordEntries(ctx, tx, b.Entries, now); err != nil {
		return err
	}

	if err := s.recordResults(ctx, tx, b.Results, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	commit = true
	return nil
}

func (s *Store) recordRooms(ctx context.Context, tx *sql.Tx, rooms []Room, now int64) error {
	if len(rooms) == 0 {
		return nil
	}

	insert, err := tx.PrepareContext(ctx, s.rebind(`
INSERT INTO rooms (id, name, creator, created)
VALUES (?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer insert.Close()

	for _, r := range rooms {
		if _, err := insert.ExecContext(ctx, r.ID, r.Name, r.Creator, now); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("room %d: %w", r.ID, ErrAlreadyRecorded)
			}

			return err
		}
	}

	return nil
}

func (s *Store) recordEntries(ctx context.Context, tx *sql.Tx, entries []ledger.Entry, now int64) error {
	if len(entries) == 0 {
		return nil
	}

	insert, err := tx.PrepareContext(ctx, s.rebind(`
INSERT INTO ledger_entries (seq, room_id, address, delta, reason, created)
VALUES (?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer insert.Close()

	upsert, err := tx.PrepareContext(ctx, s.rebind(`
INSERT INTO balances (address, balance)
VALUES (?, ?)
ON CONFLICT (address) DO UPDATE SET balance = balances.balance + excluded.balance`))
	if err != nil {
		return err
	}
	defer upsert.Close()

	for _, e := range entries {
		if _, err := insert.ExecContext(ctx, e.Seq, e.RoomID, e.Address, e.Delta, string(e.Reason), now); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("ledger entry %d: %w", e.Seq, ErrAlreadyRecorded)
			}

			return err
		}

		if _, err := upsert.ExecContext(ctx, e.Address, e.Delta); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) recordResults(ctx context.Context, tx *sql.Tx, results []RoundResult, now int64) error {
	if len(results) == 0 {
		return nil
	}

	insert, err := tx.PrepareContext(ctx, s.rebind(`
INSERT INTO round_results (room_id, round, position, address, is_dealer, outcome, created)
VALUES (?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer insert.Close()

	for _, r := range results {
		if _, err := insert.ExecContext(ctx, r.RoomID, r.Round, 0, r.Dealer, true, r.DealerOutcome, now); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("room %d round %d: %w", r.RoomID, r.Round, ErrAlreadyRecorded)
			}

			return err
		}

		for i, address := range r.Players {
			if _, err := insert.ExecContext(ctx, r.RoomID, r.Round, i+1, address, false, r.Outcomes[i], now); err != nil {
				return err
			}
		}
	}

	return nil
}

// Results returns the persisted results of a room in round order
func (s *Store) Results(ctx context.Context, roomID int64) ([]RoundResult, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
SELECT round, address, is_dealer, outcome
FROM round_results
WHERE room_id = ?
ORDER BY round, position`), roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RoundResult
	for rows.Next() {
		var round, outcome int64
		var address string
		var isDealer bool
		if err := rows.Scan(&round, &address, &isDealer, &outcome); err != nil {
			return nil, err
		}

		if len(results) == 0 || results[len(results)-1].Round != round {
			results = append(results, RoundResult{
				RoomID: roomID,
				RoundResults: blackjack.RoundResults{
					Round:    round,
					Players:  []string{},
					Outcomes: []int64{},
				},
			})
		}

		r := &results[len(results)-1]
		if isDealer {
			r.Dealer = address
			r.DealerOutcome = outcome
			continue
		}

		r.Players = append(r.Players, address)
		r.Outcomes = append(r.Outcomes, outcome)
	}

	return results, rows.Err()
}

// Rooms returns every room that was ever opened, oldest first
func (s *Store) Rooms(ctx context.Context) ([]Room, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, creator FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]Room, 0)
	for rows.Next() {
		var r Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Creator); err != nil {
			return nil, err
		}

		rooms = append(rooms, r)
	}

	return rooms, rows.Err()
}

// Entries returns the journal of an address, oldest first
func (s *Store) Entries(ctx context.Context, address string) ([]ledger.Entry, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
SELECT seq, room_id, address, delta, reason
FROM ledger_entries
WHERE address = ?
ORDER BY seq`), address)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]ledger.Entry, 0)
	for rows.Next() {
		e, err := entryByRow(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func entryByRow(row db.Scanner) (ledger.Entry, error) {
	var e ledger.Entry
	var reason string
	if err := row.Scan(&e.Seq, &e.RoomID, &e.Address, &e.Delta, &reason); err != nil {
		return ledger.Entry{}, err
	}

	e.Reason = ledger.Reason(reason)
	return e, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
