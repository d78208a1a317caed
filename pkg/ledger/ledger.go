package ledger

import "sort"

// Reason describes why a balance changed
type Reason string

// reason constants
const (
	ReasonBet        Reason = "bet"
	ReasonRefund     Reason = "refund"
	ReasonSettlement Reason = "settlement"
	ReasonForfeit    Reason = "forfeit"
)

// Entry is a single balance change
type Entry struct {
	Seq     int64  `json:"seq"`
	RoomID  int64  `json:"roomId"`
	Address string `json:"address"`
	Delta   int64  `json:"delta"`
	Reason  Reason `json:"reason"`
}

// Book holds the running balance of every address
// Balances may go negative, the house extends credit.
type Book struct {
	balances map[string]int64
	journal  []Entry
	nextSeq  int64
}

// NewBook returns an empty book
func NewBook() *Book {
	return &Book{
		balances: make(map[string]int64),
		nextSeq:  1,
	}
}

// Load replaces the balances, e.g., from persistent storage
// nextSeq is the sequence number the next entry will receive
func (b *Book) Load(balances map[string]int64, nextSeq int64) {
	b.balances = make(map[string]int64, len(balances))
	for addr, balance := range balances {
		b.balances[addr] = balance
	}

	if nextSeq < 1 {
		nextSeq = 1
	}

	b.nextSeq = nextSeq
	b.journal = nil
}

// Balance returns the balance of the address
func (b *Book) Balance(address string) int64 {
	return b.balances[address]
}

// Balances returns a copy of every balance
func (b *Book) Balances() map[string]int64 {
	cp := make(map[string]int64, len(b.balances))
	for addr, balance := range b.balances {
		cp[addr] = balance
	}

	return cp
}

// Addresses returns every address with a balance, sorted
func (b *Book) Addresses() []string {
	addrs := make([]string, 0, len(b.balances))
	for addr := range b.balances {
		addrs = append(addrs, addr)
	}

	sort.Strings(addrs)
	return addrs
}

// Adjust changes the balance of the address and journals the change
// A zero delta is ignored.
func (b *Book) Adjust(roomID int64, address string, delta int64, reason Reason) {
	if delta == 0 {
		return
	}

	b.balances[address] += delta
	b.journal = append(b.journal, Entry{
		Seq:     b.nextSeq,
		RoomID:  roomID,
		Address: address,
		Delta:   delta,
		Reason:  reason,
	})
	b.nextSeq++
}

// Mark returns a position that Rollback can return to
func (b *Book) Mark() int {
	return len(b.journal)
}

// Rollback reverts every change journaled after the mark
func (b *Book) Rollback(mark int) {
	if mark < 0 || mark > len(b.journal) {
		panic("invalid ledger mark")
	}

	for i := len(b.journal) - 1; i >= mark; i-- {
		e := b.journal[i]
		b.balances[e.Address] -= e.Delta
		b.nextSeq--
	}

	b.journal = b.journal[:mark]
}

// Drain returns the journaled entries and clears the journal
func (b *Book) Drain() []Entry {
	entries := b.journal
	b.journal = nil

	return entries
}
