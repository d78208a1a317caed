package main

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"blackjack-server/internal/util"
	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/casino"
	"blackjack-server/pkg/deck"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CLI are the simulation flags
type CLI struct {
	Tables  int   `default:"4" help:"Number of tables played in parallel"`
	Rounds  int   `default:"1000" help:"Rounds played at every table"`
	Players int   `default:"3" help:"Players seated at every table"`
	Bet     int64 `default:"10" help:"Stake of every player each round"`
	Seed    int64 `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool  `short:"v" help:"Verbose logging"`
}

// tableResult is the outcome of one table
type tableResult struct {
	Name     string
	Rounds   int
	Balances map[string]int64
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli, kong.Description("Plays blackjack rounds between bots and reports the balances"))

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	logrus.SetLevel(logrus.WarnLevel)
	if cli.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	fmt.Printf("Starting simulation: %d tables x %d rounds, %d players (seed: %d)\n",
		cli.Tables, cli.Rounds, cli.Players, cli.Seed)

	startTime := time.Now()
	results, err := runSimulation(context.Background(), cli)
	kctx.FatalIfErrorf(err)

	printResults(results, time.Since(startTime))
}

func runSimulation(ctx context.Context, cli CLI) ([]tableResult, error) {
	results := make([]tableResult, cli.Tables)
	var lock sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cli.Tables; i++ {
		table := i
		g.Go(func() error {
			res, err := playTable(gctx, cli, cli.Seed+int64(table))
			if err != nil {
				return fmt.Errorf("table %d: %w", table, err)
			}

			lock.Lock()
			results[table] = res
			lock.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// playTable runs an independent casino with a single room
func playTable(ctx context.Context, cli CLI, seed int64) (tableResult, error) {
	gen := rand.New(rand.NewSource(seed)) // nolint:gosec
	name := util.GetRandomName(gen)

	options := blackjack.DefaultOptions()
	if cli.Players > options.MaxPlayers {
		options.MaxPlayers = cli.Players
	}

	c := casino.New(casino.Config{
		Options: options,
		Entropy: deck.FixedEntropy(seed),
		Logger:  logrus.WithField("table", name),
	})

	dealer := "dealer"
	roomID, err := c.CreateRoom(name, dealer)
	if err != nil {
		return tableResult{}, err
	}

	players := make([]string, cli.Players)
	for i := range players {
		players[i] = fmt.Sprintf("bot-%d", i+1)
		if err := c.JoinRoom(roomID, players[i]); err != nil {
			return tableResult{}, err
		}
	}

	for round := 0; round < cli.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return tableResult{}, err
		}

		if err := playRound(c, roomID, dealer, players, cli.Bet); err != nil {
			return tableResult{}, fmt.Errorf("round %d: %w", round+1, err)
		}

		// the simulation never consumes notifications
		_ = c.Drain()
		_ = c.DrainJournal()
	}

	balances := make(map[string]int64)
	for _, addr := range c.Book().Addresses() {
		balances[addr] = c.Balance(addr)
	}

	return tableResult{Name: name, Rounds: cli.Rounds, Balances: balances}, nil
}

func playRound(c *casino.Casino, roomID int64, dealer string, players []string, bet int64) error {
	for _, p := range players {
		if err := c.PlaceBet(roomID, p, bet); err != nil {
			return err
		}
	}

	if err := c.StartGame(roomID, dealer); err != nil {
		return err
	}

	for {
		state, err := c.GameState(roomID)
		if err != nil {
			return err
		}

		if state.Stage != blackjack.StagePlayersTurn {
			break
		}

		address := state.Players[state.CurrentPlayerIndex]
		ps, err := c.GameStatePlayer(roomID, address)
		if err != nil {
			return err
		}

		if err := c.PlayerDecision(roomID, address, decide(ps.Score, state.DealerHand)); err != nil {
			return err
		}
	}

	for _, p := range players {
		if err := c.SetPlayerReadyForNextRound(roomID, p, true); err != nil {
			return err
		}
	}

	return c.NextRound(roomID, dealer)
}

// decide hits below 12, stands from 17, and in between hits only against a strong dealer card
func decide(score blackjack.Score, dealerHand deck.Hand) blackjack.Decision {
	switch {
	case score.Hard < 12:
		return blackjack.Hit
	case score.Hard >= 17:
		return blackjack.Stand
	}

	upcard, ok := dealerHand.LastCard()
	if ok && upcard.Pips() >= 7 {
		return blackjack.Hit
	}

	return blackjack.Stand
}

func printResults(results []tableResult, duration time.Duration) {
	totals := make(map[string]int64)
	rounds := 0
	for _, res := range results {
		rounds += res.Rounds
		fmt.Printf("\n%s (%d rounds)\n", res.Name, res.Rounds)
		for _, addr := range sortedKeys(res.Balances) {
			fmt.Printf("  %-8s %8d\n", addr, res.Balances[addr])
			totals[addr] += res.Balances[addr]
		}
	}

	fmt.Printf("\nTotals over %d rounds\n", rounds)
	var sum int64
	for _, addr := range sortedKeys(totals) {
		sum += totals[addr]
		fmt.Printf("  %-8s %8d\n", addr, totals[addr])
	}

	fmt.Printf("\nNet across all accounts: %d\n", sum)
	fmt.Printf("Completed in %s (%.0f rounds/sec)\n", duration.Round(time.Millisecond), float64(rounds)/duration.Seconds())
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}
