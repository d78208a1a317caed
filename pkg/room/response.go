package room

import "blackjack-server/pkg/blackjack"

// Response is the format of every outbound message
// Key is "status" for a successful action, "error" for a rejected one and "event" for a notification.
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx string, data interface{}) *Response {
	return &Response{
		Key:     "status",
		Value:   "OK",
		Data:    data,
		Context: ctx,
	}
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

func newEventResponse(e blackjack.Event) *Response {
	return &Response{
		Key:   "event",
		Value: string(e.Type),
		Data:  e,
	}
}
