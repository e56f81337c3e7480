package main

import (
	"sync"
	"time"
)

// Game variants. The variant picks both the scoring algorithm and
// whether submissions are revealed to the room while the game runs.
const (
	variantSharpshooter = "sharpshooter"
	variantQuickdraw    = "quickdraw"
	variantSolo         = "solo"
)

func validVariant(variant string) bool {
	switch variant {
	case variantSharpshooter, variantQuickdraw, variantSolo:
		return true
	}
	return false
}

// Room lifecycle. Transitions are one-way: waiting -> active -> finished.
const (
	statusWaiting  = "waiting"
	statusActive   = "active"
	statusFinished = "finished"
)

type joinRequest struct {
	client     *Client
	playerName string
}

type startRequest struct {
	client *Client
}

type submitRequest struct {
	client *Client
	tag    string
}

type stateRequest struct {
	client   *Client
	playerID string
}

// Hub is a single game room plus the goroutine that owns it. All room
// state below the channel block is touched only by run(), so every
// event for a room is serialized in arrival order; the game-over timer
// feeds through the same channel set and cannot race a submission.
type Hub struct {
	code            string
	variant         string
	durationMinutes int

	hostID      string
	status      string
	startedAt   time.Time
	endsAt      time.Time
	memberIDs   []string
	submissions map[string][]string

	clients map[*Client]bool

	joins   chan joinRequest
	starts  chan startRequest
	submits chan submitRequest
	states  chan stateRequest
	leaves  chan *Client
	ends    chan struct{}
	stop    chan struct{}
	done    chan struct{}

	mu         sync.RWMutex // guards lastActive for the reaper
	lastActive time.Time
}

func newHub(code, variant string, durationMinutes int, hostID string) *Hub {
	return &Hub{
		code:            code,
		variant:         variant,
		durationMinutes: durationMinutes,
		hostID:          hostID,
		status:          statusWaiting,
		memberIDs:       []string{hostID},
		submissions:     make(map[string][]string),
		clients:         make(map[*Client]bool),
		joins:           make(chan joinRequest),
		starts:          make(chan startRequest),
		submits:         make(chan submitRequest),
		states:          make(chan stateRequest),
		leaves:          make(chan *Client),
		ends:            make(chan struct{}),
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
		lastActive:      time.Now(),
	}
}

func (h *Hub) run(cfg *Config, reg *Registry) {
	defer close(h.done)

	for {
		select {
		case jr := <-h.joins:
			h.handleJoin(cfg, reg, jr)

		case sr := <-h.starts:
			h.handleStart(cfg, sr)

		case sub := <-h.submits:
			h.handleSubmit(cfg, reg, sub)

		case st := <-h.states:
			h.handleState(cfg, reg, st)

		case c := <-h.leaves:
			delete(h.clients, c)
			c.close()

		case <-h.ends:
			h.handleEnd(cfg, reg)

		case <-h.stop:
			for c := range h.clients {
				delete(h.clients, c)
				c.close()
			}
			return
		}
	}
}

// Enqueue helpers hand an event to the run loop, or report failure if
// the room has already been torn down.

func (h *Hub) enqueueJoin(c *Client, playerName string) bool {
	select {
	case h.joins <- joinRequest{client: c, playerName: playerName}:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) enqueueStart(c *Client) bool {
	select {
	case h.starts <- startRequest{client: c}:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) enqueueSubmit(c *Client, tag string) bool {
	select {
	case h.submits <- submitRequest{client: c, tag: tag}:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) enqueueState(c *Client, playerID string) bool {
	select {
	case h.states <- stateRequest{client: c, playerID: playerID}:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) enqueueLeave(c *Client) bool {
	select {
	case h.leaves <- c:
		return true
	case <-h.done:
		return false
	}
}

// enqueueEnd is called by the game timer. If the room was reaped before
// the timer fired, the event is dropped.
func (h *Hub) enqueueEnd() {
	select {
	case h.ends <- struct{}{}:
	case <-h.done:
	}
}

func (h *Hub) requestStop() {
	select {
	case h.stop <- struct{}{}:
	case <-h.done:
	}
}

func (h *Hub) touch() {
	h.mu.Lock()
	h.lastActive = time.Now()
	h.mu.Unlock()
}

// broadcast delivers to every connected client, dropping any whose send
// buffer is full.
func (h *Hub) broadcast(msg any) {
	for client := range h.clients {
		if !client.trySend(msg) {
			delete(h.clients, client)
			client.close()
		}
	}
}

func (h *Hub) memberIndex(playerID string) int {
	for i, id := range h.memberIDs {
		if id == playerID {
			return i
		}
	}
	return -1
}

// snapshot builds the serializable room state. Slices and maps are
// copied so the snapshot stays stable once it leaves the run loop.
func (h *Hub) snapshot() GameSnapshot {
	subs := make(map[string][]string, len(h.submissions))
	for id, tags := range h.submissions {
		subs[id] = append([]string(nil), tags...)
	}

	snap := GameSnapshot{
		ID:              h.code,
		HostID:          h.hostID,
		Variant:         h.variant,
		DurationMinutes: h.durationMinutes,
		Status:          h.status,
		Players:         append([]string(nil), h.memberIDs...),
		Submissions:     subs,
	}

	if !h.startedAt.IsZero() {
		started := h.startedAt.UnixMilli()
		ends := h.endsAt.UnixMilli()
		snap.StartedAt = &started
		snap.EndsAt = &ends
	}

	return snap
}

// handleJoin processes "join_game" requests.
func (h *Hub) handleJoin(cfg *Config, reg *Registry, jr joinRequest) {
	h.touch()

	c := jr.client

	if jr.playerName == "" {
		c.trySend(errorMessage(errNameRequired))
		return
	}

	if h.status != statusWaiting {
		c.trySend(errorMessage(errRoomStarted))
		return
	}

	playerID := c.id

	// An existing member re-joining just gets the current snapshot; no
	// duplicate broadcast, and their original display name stands.
	if h.memberIndex(playerID) != -1 {
		h.clients[c] = true
		c.trySend(GameJoinedMessage{
			Type:     "game_joined",
			GameID:   h.code,
			PlayerID: playerID,
			Game:     h.snapshot(),
		})
		return
	}

	h.memberIDs = append(h.memberIDs, playerID)
	reg.addPlayer(playerID, jr.playerName, h.code)

	h.clients[c] = true

	h.broadcast(PlayerJoinedMessage{
		Type: "player_joined",
		Player: PlayerInfo{
			ID:     playerID,
			Name:   jr.playerName,
			GameID: h.code,
		},
	})

	c.trySend(GameJoinedMessage{
		Type:     "game_joined",
		GameID:   h.code,
		PlayerID: playerID,
		Game:     h.snapshot(),
	})

	logf(cfg, "GAMES: Player %q joined %s", jr.playerName, h.code)
}

// handleStart processes "start_game" requests. Only the host may start,
// and only with enough players; the solo variant takes exactly one.
func (h *Hub) handleStart(cfg *Config, sr startRequest) {
	h.touch()

	c := sr.client

	if c.id != h.hostID {
		c.trySend(errorMessage(errNotAuthorized))
		return
	}

	if h.status != statusWaiting {
		c.trySend(errorMessage(errRoomStarted))
		return
	}

	if h.variant == variantSolo {
		if len(h.memberIDs) != 1 {
			c.trySend(errorMessage(errNotEnoughPlayers))
			return
		}
	} else if len(h.memberIDs) < cfg.minPlayers {
		c.trySend(errorMessage(errNotEnoughPlayers))
		return
	}

	duration := time.Duration(h.durationMinutes) * time.Minute

	h.status = statusActive
	h.startedAt = time.Now()
	h.endsAt = h.startedAt.Add(duration)

	h.broadcast(GameStartedMessage{
		Type:      "game_started",
		StartedAt: h.startedAt.UnixMilli(),
		EndsAt:    h.endsAt.UnixMilli(),
	})

	// The timer event goes through the same channel set as everything
	// else, so finalization cannot interleave with a submission.
	time.AfterFunc(duration, h.enqueueEnd)

	metricGamesStarted.Inc()
	logf(cfg, "GAMES: Game %s started, ends at %s", h.code, h.endsAt.Format(logDate))
}

// handleSubmit processes "submit_tag" requests. Accepted tags are
// broadcast for quickdraw, where racing to claim a tag is the game, and
// confirmed privately for sharpshooter and solo, where guesses stay
// secret until scoring.
func (h *Hub) handleSubmit(cfg *Config, reg *Registry, sub submitRequest) {
	h.touch()

	c := sub.client

	if h.memberIndex(c.id) == -1 {
		c.trySend(errorMessage(errPlayerNotFound))
		return
	}

	if h.status != statusActive {
		c.trySend(errorMessage(errGameNotActive))
		return
	}

	tag := normalizeTag(sub.tag)

	if !isValidTag(tag) {
		metricTagsRejected.WithLabelValues("invalid").Inc()
		c.trySend(TagRejectedMessage{
			Type: "tag_invalid",
			Tag:  sub.tag,
		})
		return
	}

	tags := h.submissions[c.id]
	for _, prev := range tags {
		if prev == tag {
			metricTagsRejected.WithLabelValues("duplicate").Inc()
			c.trySend(TagRejectedMessage{
				Type: "tag_duplicate",
				Tag:  tag,
			})
			return
		}
	}

	h.submissions[c.id] = append(tags, tag)
	metricTagsSubmitted.Inc()

	if h.variant == variantQuickdraw {
		playerName := ""
		if p, ok := reg.player(c.id); ok {
			playerName = p.Name
		}
		h.broadcast(TagSubmittedMessage{
			Type:       "tag_submitted",
			PlayerID:   c.id,
			PlayerName: playerName,
			Tag:        tag,
		})
	} else {
		c.trySend(TagSubmittedMessage{
			Type:     "tag_submitted",
			PlayerID: c.id,
			Tag:      tag,
		})
	}
}

// handleState processes "get_game_state". The caller proves membership
// with a logical player ID; if they reconnected on a fresh connection,
// the old identity is remapped to the new one before the snapshot goes
// out, so their seat, host role, and submissions survive the reconnect.
func (h *Hub) handleState(cfg *Config, reg *Registry, st stateRequest) {
	h.touch()

	c := st.client

	idx := h.memberIndex(st.playerID)
	if idx == -1 {
		c.trySend(errorMessage(errNotAMember))
		return
	}

	// A connection already seated under its own ID may not claim another
	// member's seat; the remap is only for fresh connections.
	if st.playerID != c.id && h.memberIndex(c.id) != -1 {
		c.trySend(errorMessage(errNotAMember))
		return
	}

	if st.playerID != c.id {
		oldID := st.playerID
		newID := c.id

		h.memberIDs[idx] = newID
		if tags, ok := h.submissions[oldID]; ok {
			delete(h.submissions, oldID)
			h.submissions[newID] = tags
		}
		if h.hostID == oldID {
			h.hostID = newID
		}
		reg.remapPlayer(oldID, newID)

		logf(cfg, "GAMES: Remapped player %s to %s in %s", oldID, newID, h.code)
	}

	h.clients[c] = true

	c.trySend(GameStateMessage{
		Type: "game_state",
		Game: h.snapshot(),
	})
}

// handleEnd finalizes the game when the timer fires. The status check
// makes finalization idempotent: however many times the end event
// arrives, the room is scored and game_ended broadcast exactly once.
func (h *Hub) handleEnd(cfg *Config, reg *Registry) {
	if h.status != statusActive {
		return
	}

	h.touch()
	h.status = statusFinished

	in := scoringInput{
		memberIDs:   h.memberIDs,
		names:       reg.namesFor(h.memberIDs),
		submissions: h.submissions,
	}

	scores, err := scoreVariant(h.variant, in)
	if err != nil {
		// Reachable only through a handler bug; the room stays
		// finished and unscored rather than taking the server down.
		logf(cfg, "GAMES: Scoring failed for %s: %v", h.code, err)
		return
	}

	h.broadcast(GameEndedMessage{
		Type:   "game_ended",
		Scores: scores,
	})

	metricGamesFinished.Inc()
	logf(cfg, "GAMES: Game %s finished with %d players", h.code, len(h.memberIDs))
}
