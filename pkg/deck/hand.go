package deck

// Hand represents a collection of cards in the order they were dealt
type Hand []Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// Values returns the face values of the hand
func (h Hand) Values() []Value {
	values := make([]Value, len(h))
	for i, c := range h {
		values[i] = c.Value()
	}

	return values
}

// LastCard returns the last card in the hand and false if the hand is empty
func (h Hand) LastCard() (Card, bool) {
	if len(h) == 0 {
		return Card{}, false
	}

	return h[len(h)-1], true
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}

// Used tracks the cards dealt in the current round
type Used struct {
	bits  uint64
	order []Card
}

// Add marks the card as used
func (u *Used) Add(card Card) {
	if u.Has(card) {
		return
	}

	u.bits |= 1 << uint(card.Index)
	u.order = append(u.order, card)
}

// Has returns true if the card has been used
func (u *Used) Has(card Card) bool {
	return u.bits&(1<<uint(card.Index)) != 0
}

// Len returns the number of used cards
func (u *Used) Len() int {
	return len(u.order)
}

// Cards returns the used cards in the order they were dealt
func (u *Used) Cards() []Card {
	return append([]Card{}, u.order...)
}

// Reset forgets every used card
func (u *Used) Reset() {
	u.bits = 0
	u.order = nil
}

// Clone returns an independent copy
func (u *Used) Clone() *Used {
	return &Used{bits: u.bits, order: append([]Card{}, u.order...)}
}
