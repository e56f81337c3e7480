package main

// Messages coming from clients
type ClientMessage struct {
	Type            string `json:"type"`                      // "create_game", "join_game", "start_game", "submit_tag", "get_game_state"
	PlayerName      string `json:"playerName,omitempty"`      // create_game / join_game
	Variant         string `json:"variant,omitempty"`         // create_game
	DurationMinutes int    `json:"durationMinutes,omitempty"` // create_game
	GameID          string `json:"gameId,omitempty"`          // join_game / start_game / submit_tag / get_game_state
	PlayerID        string `json:"playerId,omitempty"`        // get_game_state
	Tag             string `json:"tag,omitempty"`             // submit_tag
}

// PlayerInfo is the player shape clients see.
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	GameID string `json:"gameId"`
}

// GameSnapshot is the full room state, with submissions flattened to a
// plain object so it survives JSON encoding. Timestamps are Unix
// milliseconds and absent until the game starts.
type GameSnapshot struct {
	ID              string              `json:"id"`
	HostID          string              `json:"hostId"`
	Variant         string              `json:"variant"`
	DurationMinutes int                 `json:"durationMinutes"`
	Status          string              `json:"status"`
	StartedAt       *int64              `json:"startedAt,omitempty"`
	EndsAt          *int64              `json:"endsAt,omitempty"`
	Players         []string            `json:"players"`
	Submissions     map[string][]string `json:"submissions"`
}

// GameCreatedMessage confirms room creation to the creator only.
type GameCreatedMessage struct {
	Type     string       `json:"type"` // "game_created"
	GameID   string       `json:"gameId"`
	PlayerID string       `json:"playerId"`
	Game     GameSnapshot `json:"game"`
}

// GameJoinedMessage confirms a join to the joiner only.
type GameJoinedMessage struct {
	Type     string       `json:"type"` // "game_joined"
	GameID   string       `json:"gameId"`
	PlayerID string       `json:"playerId"`
	Game     GameSnapshot `json:"game"`
}

// PlayerJoinedMessage announces a new member to the whole room.
type PlayerJoinedMessage struct {
	Type   string     `json:"type"` // "player_joined"
	Player PlayerInfo `json:"player"`
}

// GameStartedMessage announces the countdown to the whole room.
type GameStartedMessage struct {
	Type      string `json:"type"` // "game_started"
	StartedAt int64  `json:"startedAt"`
	EndsAt    int64  `json:"endsAt"`
}

// TagSubmittedMessage records an accepted tag. PlayerName is only set
// when the whole room sees the submission (quickdraw).
type TagSubmittedMessage struct {
	Type       string `json:"type"` // "tag_submitted"
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName,omitempty"`
	Tag        string `json:"tag"`
}

// TagRejectedMessage is sent to the submitter only, for both
// "tag_invalid" and "tag_duplicate".
type TagRejectedMessage struct {
	Type string `json:"type"`
	Tag  string `json:"tag"`
}

// GameStateMessage answers get_game_state with a full snapshot.
type GameStateMessage struct {
	Type string       `json:"type"` // "game_state"
	Game GameSnapshot `json:"game"`
}

// GameEndedMessage carries the final ranking to the whole room.
type GameEndedMessage struct {
	Type   string        `json:"type"` // "game_ended"
	Scores []PlayerScore `json:"scores"`
}

// ErrorMessage reports a handler failure to the requesting connection
// only; errors are never broadcast.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

func errorMessage(err error) ErrorMessage {
	return ErrorMessage{
		Type:    "error",
		Message: err.Error(),
	}
}
