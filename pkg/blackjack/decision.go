package blackjack

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Decision is what a player does on their turn
type Decision int

// decision constants
const (
	Stand Decision = iota
	Hit
)

func (d Decision) String() string {
	switch d {
	case Stand:
		return "Stand"
	case Hit:
		return "Hit"
	}

	return fmt.Sprintf("Decision(%d)", int(d))
}

// MarshalJSON encodes the JSON
func (d Decision) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(d),
		Name: d.String(),
	})
}

// DecisionFromString returns a decision from its name or integer value
func DecisionFromString(s string) (Decision, error) {
	switch strings.ToLower(s) {
	case "stand":
		return Stand, nil
	case "hit":
		return Hit, nil
	}

	i, err := strconv.Atoi(s)
	if err != nil || (Decision(i) != Stand && Decision(i) != Hit) {
		return -1, fmt.Errorf("invalid decision: %s", s)
	}

	return Decision(i), nil
}
