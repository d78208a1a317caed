package room

import (
	"errors"
	"fmt"

	"blackjack-server/pkg/deck"
)

// ErrInvalidPayload is returned when an inbound message is missing a field or has the wrong type
var ErrInvalidPayload = errors.New("invalid payload")

// PayloadIn is the format we expect from clients
type PayloadIn struct {
	Action         string         `json:"action"`
	Cards          []deck.Card    `json:"cards"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt64 returns an integer value for the given key
func (a AdditionalData) GetInt64(key string) (int64, bool) {
	switch val := a[key].(type) {
	case float64:
		if val != float64(int64(val)) {
			return 0, false
		}

		return int64(val), true
	case int64:
		return val, true
	case int:
		return int64(val), true
	}

	return 0, false
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	if !ok {
		return false, false
	}

	return boolVal, true
}

func (a AdditionalData) requireInt64(key string) (int64, error) {
	val, ok := a.GetInt64(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidPayload, key)
	}

	return val, nil
}

func (a AdditionalData) requireString(key string) (string, error) {
	val, ok := a.GetString(key)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidPayload, key)
	}

	return val, nil
}

func (a AdditionalData) requireBool(key string) (bool, error) {
	val, ok := a.GetBool(key)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean", ErrInvalidPayload, key)
	}

	return val, nil
}
