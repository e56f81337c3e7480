package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchCreateGame(t *testing.T) {
	cfg := testConfig()
	reg := newRegistry(cfg)
	c := testClient("c1")

	dispatch(cfg, reg, c, ClientMessage{
		Type:            "create_game",
		PlayerName:      "ada",
		Variant:         variantQuickdraw,
		DurationMinutes: 2,
	})

	created := recvType[GameCreatedMessage](t, c)
	assert.Equal(t, variantQuickdraw, created.Game.Variant)
	require.NotNil(t, reg.findRoom(created.GameID))
}

func TestDispatchCreateGameInvalid(t *testing.T) {
	cfg := testConfig()
	reg := newRegistry(cfg)
	c := testClient("c1")

	dispatch(cfg, reg, c, ClientMessage{
		Type:            "create_game",
		PlayerName:      "ada",
		Variant:         variantQuickdraw,
		DurationMinutes: 99,
	})

	msg := recvType[ErrorMessage](t, c)
	assert.Equal(t, errInvalidDuration.Error(), msg.Message)
}

func TestDispatchUnknownRoom(t *testing.T) {
	cfg := testConfig()
	reg := newRegistry(cfg)

	for _, eventType := range []string{"join_game", "start_game", "submit_tag", "get_game_state"} {
		c := testClient("c-" + eventType)
		dispatch(cfg, reg, c, ClientMessage{
			Type:       eventType,
			GameID:     "NOSUCH",
			PlayerName: "ada",
			Tag:        "div",
		})

		msg := recvType[ErrorMessage](t, c)
		assert.Equal(t, errRoomNotFound.Error(), msg.Message, eventType)
	}
}

func TestDispatchTornDownRoom(t *testing.T) {
	cfg := testConfig()
	reg := newRegistry(cfg)

	host := testClient("host-conn")
	hub, err := reg.createRoom(cfg, host, "ada", variantSharpshooter, 1)
	require.NoError(t, err)

	hub.requestStop()
	<-hub.done

	c := testClient("late")
	dispatch(cfg, reg, c, ClientMessage{
		Type:       "join_game",
		GameID:     hub.code,
		PlayerName: "grace",
	})

	msg := recvType[ErrorMessage](t, c)
	assert.Equal(t, errRoomNotFound.Error(), msg.Message)
}

func TestDispatchIgnoresUnknownTypes(t *testing.T) {
	cfg := testConfig()
	reg := newRegistry(cfg)
	c := testClient("c1")

	dispatch(cfg, reg, c, ClientMessage{Type: "do_a_backflip"})
	dispatch(cfg, reg, c, ClientMessage{})

	_, pending := tryRecv(c)
	assert.False(t, pending)
}

func TestClientCloseIsIdempotent(t *testing.T) {
	c := testClient("c1")

	c.close()
	c.close()

	select {
	case <-c.done:
	default:
		t.Fatal("done channel not closed")
	}
}

func TestTrySendDropsWhenFull(t *testing.T) {
	c := &Client{
		send: make(chan any, 1),
		done: make(chan struct{}),
		id:   "c1",
	}

	assert.True(t, c.trySend("first"))
	assert.False(t, c.trySend("second"))
}
