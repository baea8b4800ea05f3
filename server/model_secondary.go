package server

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/zucenko/nuggets/model"
)

const HTTP_SUCCESS = 200
const HTTP_TIMEOUT = 408
const HTTP_GONE = 410
const HTTP_SERVER_ERR = 503

const (
	MaxPlayers      = 26
	MaxNameLength   = 50
	GoldTotal       = 250
	GoldMinNumPiles = 10
	GoldMaxNumPiles = 30
)

const (
	msgNoName        = "Sorry - you must provide player's name."
	msgGameFull      = "Game is full: no more players can join."
	msgNoRoom        = "Sorry - there is no room left on the map."
	msgReplaced      = "You have been replaced by a new spectator."
	msgThanksPlaying = "Thanks for playing!"
	msgThanksWatch   = "Thanks for watching!"
	msgGameOver      = "GAME OVER:"
	errUnknownKey    = "unknown keystroke"
	errNotJoined     = "PLAY or SPECTATE first"
	errAlreadyJoined = "already in the game"
)

func (gs GameState) Name() string {
	switch gs {
	case GS_NEW:
		return "GS_NEW"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_OVER:
		return "GS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", gs)
	}
}

func (ps PlayerSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_PLAY:
		return "PLAY"
	case PS_SPECTATE:
		return "SPECTATE"
	case PS_OVER:
		return "OVER"
	case PS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

type PlayerConnectRequest struct {
	Id       string
	Con      *websocket.Conn
	GameOver chan struct{}
}

type PlayerEvent struct {
	Session string
	Message model.ClientMessage
}
