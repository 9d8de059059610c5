// Package room hosts running matches: it seats clients, relays their
// actions into the rules engine, drives the timers and fans the results
// out to every connection.
package room

import (
	"github.com/DyLaNHurtado/mus-game-app/internal/protocol"
)

// ClientConn is what a room needs from a connected client. The server
// package provides the real implementation; tests use fakes.
type ClientConn interface {
	GetID() string
	GetName() string
	GetRoom() string
	SetRoom(code string)
	SendMessage(msg *protocol.Message)
	Close()
}

// Status is the room lifecycle state.
type Status int

const (
	StatusWaiting Status = iota
	StatusPlaying
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusPlaying:
		return "playing"
	case StatusFinished:
		return "finished"
	}
	return "unknown"
}
