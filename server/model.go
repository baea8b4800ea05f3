package server

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/nuggets/model"
)

type GameServer struct {
	Game     *Game
	Upgrader *websocket.Upgrader
	Metrics  *Metrics
}

type GameState int

const (
	GS_NEW GameState = iota
	GS_PLAY
	GS_OVER
)

// Game is the authoritative state of one running map. Only Loop touches it.
type Game struct {
	state   atomic.Int32
	Config  *Config
	Grid    *model.Grid
	Gold    *model.GoldTable
	Players *model.Registry
	Mover   model.Mover
	Metrics *Metrics

	rng        *rand.Rand
	sessions   map[string]*PlayerSession
	spectator  *PlayerSession
	nextLetter byte

	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest
	Disconnects           chan string
	done                  chan struct{}
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_SPECTATE
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State  PlayerSessionState
	Id     string
	Player *model.Player
	Game   *Game
	Conn   *websocket.Conn
	// GameOver is closed once the last message was written.
	GameOver chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
}
