package main

import (
	"testing"
	"time"
)

func testConfig() *Config {
	return &Config{
		bind:        "127.0.0.1",
		port:        8080,
		minDuration: 1,
		maxDuration: 5,
		minPlayers:  2,
	}
}

// testClient builds a connectionless client with a roomy send buffer so
// handlers never drop messages during tests.
func testClient(id string) *Client {
	return &Client{
		send: make(chan any, 64),
		done: make(chan struct{}),
		id:   id,
	}
}

// tryRecv pops the next queued message without waiting.
func tryRecv(c *Client) (any, bool) {
	select {
	case msg := <-c.send:
		return msg, true
	default:
		return nil, false
	}
}

// recvType keeps receiving until a message of type T shows up,
// discarding anything else queued in front of it.
func recvType[T any](t *testing.T, c *Client) T {
	t.Helper()

	deadline := time.After(time.Second)
	for {
		select {
		case msg := <-c.send:
			if typed, ok := msg.(T); ok {
				return typed
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}
