package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBook_Adjust(t *testing.T) {
	a := assert.New(t)

	b := NewBook()
	b.Adjust(1, "player", -100, ReasonBet)
	b.Adjust(1, "player", 200, ReasonSettlement)
	b.Adjust(1, "dealer", -100, ReasonSettlement)
	b.Adjust(1, "dealer", 0, ReasonSettlement)

	a.Equal(int64(100), b.Balance("player"))
	a.Equal(int64(-100), b.Balance("dealer"))
	a.Equal(int64(0), b.Balance("nobody"))
	a.Equal([]string{"dealer", "player"}, b.Addresses())

	entries := b.Drain()
	a.Len(entries, 3)
	a.Equal(Entry{Seq: 1, RoomID: 1, Address: "player", Delta: -100, Reason: ReasonBet}, entries[0])
	a.Equal(int64(3), entries[2].Seq)
	a.Empty(b.Drain())

	b.Adjust(2, "player", 5, ReasonRefund)
	entries = b.Drain()
	a.Equal(int64(4), entries[0].Seq)
}

func TestBook_Rollback(t *testing.T) {
	a := assert.New(t)

	b := NewBook()
	b.Adjust(1, "player", -100, ReasonBet)
	mark := b.Mark()

	b.Adjust(1, "player", 250, ReasonSettlement)
	b.Adjust(1, "dealer", -150, ReasonSettlement)
	b.Rollback(mark)

	a.Equal(int64(-100), b.Balance("player"))
	a.Equal(int64(0), b.Balance("dealer"))
	a.Len(b.Drain(), 1)

	b.Adjust(1, "dealer", 1, ReasonForfeit)
	a.Equal(int64(2), b.Drain()[0].Seq)

	a.Panics(func() { b.Rollback(5) })
}

func TestBook_Load(t *testing.T) {
	b := NewBook()
	b.Adjust(1, "x", 1, ReasonBet)

	balances := map[string]int64{"a": 10, "b": -10}
	b.Load(balances, 40)
	balances["a"] = 0

	assert.Equal(t, int64(10), b.Balance("a"))
	assert.Equal(t, int64(0), b.Balance("x"))
	assert.Empty(t, b.Drain())
	assert.Equal(t, map[string]int64{"a": 10, "b": -10}, b.Balances())

	b.Adjust(1, "a", 1, ReasonRefund)
	assert.Equal(t, int64(40), b.Drain()[0].Seq)
}
