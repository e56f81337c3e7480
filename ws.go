package main

import (
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one live websocket connection. Its id doubles as the
// logical player ID for any player it creates; on reconnect a new
// Client appears with a fresh id and get_game_state remaps the old
// identity onto it.
type Client struct {
	conn *websocket.Conn
	send chan any
	done chan struct{}
	id   string
	once sync.Once
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan any, 8),
		done: make(chan struct{}),
		id:   uuid.NewString(),
	}
}

// trySend queues a message without blocking; a full buffer means the
// client is too slow to keep and the message is dropped.
func (c *Client) trySend(msg any) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close is safe to call from any goroutine, any number of times.
func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *Client) readPump(cfg *Config, reg *Registry) {
	defer func() {
		reg.disconnect(c)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		dispatch(cfg, reg, c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// dispatch routes one inbound event. Everything except create_game is
// addressed to a room and handed to that room's run loop; a missing or
// torn-down room answers with the same not-found error either way.
func dispatch(cfg *Config, reg *Registry, c *Client, msg ClientMessage) {
	switch msg.Type {
	case "create_game":
		if _, err := reg.createRoom(cfg, c, msg.PlayerName, msg.Variant, msg.DurationMinutes); err != nil {
			c.trySend(errorMessage(err))
		}

	case "join_game":
		hub := reg.findRoom(msg.GameID)
		if hub == nil || !hub.enqueueJoin(c, msg.PlayerName) {
			c.trySend(errorMessage(errRoomNotFound))
		}

	case "start_game":
		hub := reg.findRoom(msg.GameID)
		if hub == nil || !hub.enqueueStart(c) {
			c.trySend(errorMessage(errRoomNotFound))
		}

	case "submit_tag":
		hub := reg.findRoom(msg.GameID)
		if hub == nil || !hub.enqueueSubmit(c, msg.Tag) {
			c.trySend(errorMessage(errRoomNotFound))
		}

	case "get_game_state":
		hub := reg.findRoom(msg.GameID)
		if hub == nil || !hub.enqueueState(c, msg.PlayerID) {
			c.trySend(errorMessage(errRoomNotFound))
		}

	default:
		// ignore unknown types
	}
}

// serveWS upgrades the connection and runs the pumps until disconnect.
func serveWS(cfg *Config, reg *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := newClient(conn)
		logf(cfg, "GAMES: Connection %s from %s", client.id, realIP(r))

		go client.writePump()
		client.readPump(cfg, reg)
	}
}
