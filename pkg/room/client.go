package room

import (
	"context"
	"fmt"

	"blackjack-server/pkg/blackjack"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	// ID identifies the connection
	ID string

	// Address is the authenticated caller
	Address string

	// roomID limits notifications to a single room, 0 follows every room
	roomID int64

	pitBoss *PitBoss
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, address string, roomID int64) *Client {
	return &Client{
		Conn:    conn,
		send:    make(chan interface{}, 256),
		Close:   make(chan string),
		ID:      uuid.New().String(),
		Address: address,
		roomID:  roomID,
	}
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.Address, c.ID)
}

// global notifications reach everybody
func (c *Client) wants(e blackjack.Event) bool {
	return c.roomID == 0 || e.Global || e.RoomID == c.roomID
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(ctx context.Context, msg *PayloadIn) {
	if c.pitBoss == nil {
		c.Send(newErrorResponse(msg.Context, ErrShiftEnded))
		return
	}

	data, err := c.pitBoss.Dispatch(ctx, c.Address, msg)
	if err != nil {
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	c.Send(OK(msg.Context, data))
}
