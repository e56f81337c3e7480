package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Game-session failures. Each one surfaces to the offending connection
// as a single "error" event; none of them is fatal to the server.
var (
	errInvalidDuration  = errors.New("game duration out of bounds")
	errRoomNotFound     = errors.New("game not found")
	errRoomStarted      = errors.New("game already started")
	errNotAuthorized    = errors.New("only the host can start the game")
	errNotEnoughPlayers = errors.New("not enough players to start")
	errPlayerNotFound   = errors.New("player not found")
	errNotAMember       = errors.New("not a member of this game")
	errGameNotActive    = errors.New("game is not active")
	errInvalidVariant   = errors.New("unknown game variant")
	errNameRequired     = errors.New("player name required")

	// errInvalidPlayerCount marks solo scoring called with the wrong
	// member count. It never crosses the wire; it signals a handler bug.
	errInvalidPlayerCount = errors.New("solo scoring requires exactly one player")
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
