package room

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/casino"
	"blackjack-server/pkg/ledger"
	"blackjack-server/pkg/store"

	"github.com/sirupsen/logrus"
)

// ErrShiftEnded is returned when an operation is submitted after EndShift
var ErrShiftEnded = errors.New("pit boss is off shift")

// Persister records created rooms, committed balance changes and round results
type Persister interface {
	Record(ctx context.Context, b store.Batch) error
}

// PitBoss owns the casino
// Every operation runs to completion in the run loop before the next one starts, so the
// casino never sees concurrent access no matter how many clients are connected.
type PitBoss struct {
	casino    *casino.Casino
	persister Persister
	logger    logrus.FieldLogger

	// clients must only be accessed from the run loop
	clients map[*Client]bool

	exec      chan *job
	close     chan bool
	closeOnce sync.Once
}

// job is an operation queued for the run loop
// Exactly one side claims it: the run loop to run it, or the caller to give up on it.
type job struct {
	claimed atomic.Bool
	run     func()
}

func newJob(run func()) *job {
	return &job{run: run}
}

func (j *job) claim() bool {
	return j.claimed.CompareAndSwap(false, true)
}

// NewPitBoss returns a new dispatch object
// persister may be nil, in which case balances only live in memory.
func NewPitBoss(c *casino.Casino, persister Persister, logger logrus.FieldLogger) *PitBoss {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &PitBoss{
		casino:    c,
		persister: persister,
		logger:    logger,
		clients:   make(map[*Client]bool),
		exec:      make(chan *job, 256),
		close:     make(chan bool),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift stops the run loop
// Operations still queued are abandoned and their callers receive ErrShiftEnded.
func (p *PitBoss) EndShift() {
	p.closeOnce.Do(func() {
		close(p.close)
	})
}

func (p *PitBoss) runLoop() {
	p.logger.Debug("starting pit boss run loop")
	for {
		select {
		case j := <-p.exec:
			if j.claim() {
				j.run()
			}
		case <-p.close:
			p.logger.Debug("terminating pit boss run loop")
			return
		}
	}
}

func (p *PitBoss) submit(ctx context.Context, j *job) error {
	select {
	case <-p.close:
		return ErrShiftEnded
	default:
	}

	select {
	case p.exec <- j:
		return nil
	case <-p.close:
		return ErrShiftEnded
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Exec runs fn in the run loop and waits for it to finish
// After fn returns, the notifications it produced are sent to the connected clients and the
// balance changes it committed are handed to the persister.
// An error from ctx or ErrShiftEnded means fn never ran. Once the run loop has picked fn up,
// Exec waits for it and returns its result.
func (p *PitBoss) Exec(ctx context.Context, fn func(c *casino.Casino) error) error {
	errc := make(chan error, 1)
	j := newJob(func() {
		errc <- p.commit(fn)
	})

	if err := p.submit(ctx, j); err != nil {
		return err
	}

	select {
	case err := <-errc:
		return err
	case <-p.close:
		if j.claim() {
			return ErrShiftEnded
		}
	case <-ctx.Done():
		if j.claim() {
			return ctx.Err()
		}
	}

	return <-errc
}

// NOTE: must only be called from the run loop
func (p *PitBoss) commit(fn func(c *casino.Casino) error) error {
	err := fn(p.casino)

	events := p.casino.Drain()
	p.record(batchOf(events, p.casino.DrainJournal()))
	p.broadcast(events)

	return err
}

func (p *PitBoss) record(b store.Batch) {
	if p.persister == nil || b.Empty() {
		return
	}

	if err := p.persister.Record(context.Background(), b); err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"rooms":   len(b.Rooms),
			"entries": len(b.Entries),
			"results": len(b.Results),
		}).Error("could not record balance changes")
	}
}

// NOTE: must only be called from the run loop
func (p *PitBoss) broadcast(events []blackjack.Event) {
	for _, e := range events {
		res := newEventResponse(e)
		for client := range p.clients {
			if !client.wants(e) {
				continue
			}

			if !client.Send(res) {
				p.logger.WithField("client", client.String()).Warn("client send buffer is full, dropping event")
			}
		}
	}
}

func batchOf(events []blackjack.Event, entries []ledger.Entry) store.Batch {
	b := store.Batch{Entries: entries}
	for _, e := range events {
		switch data := e.Data.(type) {
		case blackjack.RoomCreatedData:
			if e.Type == blackjack.EventRoomCreated {
				b.Rooms = append(b.Rooms, store.Room{ID: e.RoomID, RoomCreatedData: data})
			}
		case blackjack.RoundResults:
			if e.Type == blackjack.EventGameRoundResultsAnnounced {
				b.Results = append(b.Results, store.RoundResult{RoomID: e.RoomID, RoundResults: data})
			}
		}
	}

	return b
}

// ClientConnected is called when a client connects to the server
// The client receives every notification produced by operations submitted after this call returns.
func (p *PitBoss) ClientConnected(ctx context.Context, client *Client) error {
	client.pitBoss = p
	return p.Exec(ctx, func(_ *casino.Casino) error {
		p.clients[client] = true
		p.logger.WithField("client", client.String()).Debug("client connected")
		return nil
	})
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	_ = p.submit(context.Background(), newJob(func() {
		delete(p.clients, client)
		p.logger.WithField("client", client.String()).Debug("client disconnected")
	}))
}
