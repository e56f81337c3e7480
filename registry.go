package main

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"
)

// Player holds the data we store server-side. ID is the logical player
// identity: it starts out as the creating connection's ID and follows
// the player across reconnects via remapPlayer.
type Player struct {
	ID     string
	Name   string
	GameID string
}

// Registry owns the live rooms and players, keyed by join code and
// logical player ID respectively. Room state itself lives inside each
// Hub and is only touched by that hub's run loop; the registry mutex
// covers just these two maps.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*Hub
	players map[string]*Player
}

func newRegistry(cfg *Config) *Registry {
	reg := &Registry{
		rooms:   make(map[string]*Hub),
		players: make(map[string]*Player),
	}
	if cfg.sessionTimeout > 0 {
		go reg.reaperLoop(cfg)
	}
	return reg
}

// Join codes skip easily-confused characters since players type them in
// by hand or read them off another screen.
const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// newRoomCodeLocked generates a crypto-random join code and ensures it
// doesn't collide with existing rooms. Callers must hold reg.mu.
func (reg *Registry) newRoomCodeLocked() string {
	for {
		buf := make([]byte, codeLength)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, codeLength)
		for i := range out {
			out[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
		}
		code := string(out)

		if _, exists := reg.rooms[code]; !exists {
			return code
		}
	}
}

// createRoom validates the request, registers a new waiting room with
// the creator as host and sole member, sends the creator their
// confirmation, and only then starts the room's run loop.
func (reg *Registry) createRoom(cfg *Config, c *Client, playerName, variant string, durationMinutes int) (*Hub, error) {
	if playerName == "" {
		return nil, errNameRequired
	}
	if !validVariant(variant) {
		return nil, errInvalidVariant
	}
	if durationMinutes < cfg.minDuration || durationMinutes > cfg.maxDuration {
		return nil, errInvalidDuration
	}

	reg.mu.Lock()
	code := reg.newRoomCodeLocked()
	hub := newHub(code, variant, durationMinutes, c.id)
	reg.rooms[code] = hub
	reg.players[c.id] = &Player{
		ID:     c.id,
		Name:   playerName,
		GameID: code,
	}
	reg.mu.Unlock()

	// The hub's loop is not running yet, so its state can be touched
	// directly here.
	hub.clients[c] = true
	snap := hub.snapshot()

	c.trySend(GameCreatedMessage{
		Type:     "game_created",
		GameID:   code,
		PlayerID: c.id,
		Game:     snap,
	})
	c.trySend(PlayerJoinedMessage{
		Type: "player_joined",
		Player: PlayerInfo{
			ID:     c.id,
			Name:   playerName,
			GameID: code,
		},
	})

	go hub.run(cfg, reg)

	metricGamesCreated.WithLabelValues(variant).Inc()
	metricRoomsLive.Inc()
	logf(cfg, "GAMES: Player %q created %s game %s", playerName, variant, code)

	return hub, nil
}

// findRoom looks up a room by join code, case-insensitively.
func (reg *Registry) findRoom(code string) *Hub {
	code = strings.ToUpper(strings.TrimSpace(code))

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return reg.rooms[code]
}

// addPlayer records a joining player.
func (reg *Registry) addPlayer(playerID, name, gameID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.players[playerID] = &Player{
		ID:     playerID,
		Name:   name,
		GameID: gameID,
	}
}

// player returns the record for a logical player ID.
func (reg *Registry) player(playerID string) (Player, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	p, ok := reg.players[playerID]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// remapPlayer moves a player record from its old connection identity to
// the new one. Room-side state (memberIDs, submissions, host) is
// rewritten by the room's own run loop; this only moves the map key.
func (reg *Registry) remapPlayer(oldID, newID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	p, ok := reg.players[oldID]
	if !ok {
		return
	}
	delete(reg.players, oldID)
	p.ID = newID
	reg.players[newID] = p
}

// namesFor snapshots display names for a set of player IDs, for scoring
// and quickdraw broadcasts.
func (reg *Registry) namesFor(playerIDs []string) map[string]string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	names := make(map[string]string, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := reg.players[id]; ok {
			names[id] = p.Name
		}
	}
	return names
}

// disconnect routes a closed connection to its room's run loop. The
// logical player record is left in place so the player can reclaim
// their seat later via get_game_state.
func (reg *Registry) disconnect(c *Client) {
	reg.mu.RLock()
	var hub *Hub
	if p, ok := reg.players[c.id]; ok {
		hub = reg.rooms[p.GameID]
	}
	reg.mu.RUnlock()

	if hub == nil || !hub.enqueueLeave(c) {
		c.close()
	}
}

// reaperLoop periodically removes rooms that have been idle longer than
// the configured session timeout.
func (reg *Registry) reaperLoop(cfg *Config) {
	ticker := time.NewTicker(cfg.sessionTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-cfg.sessionTimeout)

		var idle []*Hub

		reg.mu.Lock()
		for code, hub := range reg.rooms {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(reg.rooms, code)
				idle = append(idle, hub)
			}
		}
		reg.mu.Unlock()

		for _, hub := range idle {
			hub.requestStop()
			metricRoomsLive.Dec()
			logf(cfg, "GAMES: Reaped idle game %s", hub.code)
		}
	}
}
