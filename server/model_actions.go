package server

import (
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/nuggets/model"
	"github.com/zyedidia/generic/mapset"
)

// NewGame scatters the gold on grid and prepares an empty game. Call Loop to
// start accepting players.
func NewGame(cfg *Config, grid *model.Grid, metrics *Metrics) (*Game, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	gold, err := PlaceGold(grid, mapset.New[model.Position](), rng, GoldTotal, GoldMinNumPiles, GoldMaxNumPiles)
	if err != nil {
		return nil, fmt.Errorf("placing gold: %w", err)
	}
	if metrics == nil {
		metrics = &Metrics{}
	}
	g := &Game{
		Config:                cfg,
		Grid:                  grid,
		Gold:                  gold,
		Players:               model.NewRegistry(),
		Metrics:               metrics,
		rng:                   rng,
		sessions:              make(map[string]*PlayerSession),
		Events:                make(chan PlayerEvent, 64),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		Disconnects:           make(chan string, MaxPlayers),
		done:                  make(chan struct{}),
	}
	g.Mover = model.Mover{
		Grid:   grid,
		Bounds: cfg.Bounds(),
		Occupied: func(p model.Position) bool {
			return g.Players.At(p) != nil
		},
	}
	g.setState(GS_NEW)
	return g, nil
}

func NewGameServer(game *Game) *GameServer {
	return &GameServer{
		Game:     game,
		Upgrader: &websocket.Upgrader{},
		Metrics:  game.Metrics,
	}
}

func (g *Game) State() GameState      { return GameState(g.state.Load()) }
func (g *Game) setState(s GameState)  { g.state.Store(int32(s)) }
func (g *Game) StateName() string     { return g.State().Name() }
func (g *Game) Done() <-chan struct{} { return g.done }

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")
		if s.Game.State() == GS_OVER {
			w.WriteHeader(HTTP_GONE)
			return
		}
		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case s.Game.PlayerConnectRequests <- PlayerConnectRequest{
			Id:       uuid.NewString(),
			Con:      con,
			GameOver: gameOver}:
		case <-s.Game.done:
			return
		case <-time.After(timeout):
			log.Warn("PlayerConnectRequests TIMEOUTED")
			return
		}

		// wait till the session wrote its last message
		<-gameOver
	}
}

// Loop owns the game state until the last nugget is collected. Every
// mutation of the grid, the gold and the players happens here.
func (g *Game) Loop() {
	log.Info("Game.Loop start")
	g.setState(GS_PLAY)
	for g.State() != GS_OVER {
		select {
		case pcr := <-g.PlayerConnectRequests:
			g.addSession(pcr)
		case id := <-g.Disconnects:
			g.dropSession(id)
		case pe := <-g.Events:
			g.handle(pe)
		}
	}
	close(g.done)
	log.Info("Game.Loop ended")
}

func (g *Game) addSession(pcr PlayerConnectRequest) {
	ps := &PlayerSession{
		State:          PS_NEW,
		Id:             pcr.Id,
		Game:           g,
		Conn:           pcr.Con,
		GameOver:       pcr.GameOver,
		MessagesToSend: make(chan model.ServerMessage, 64),
	}
	g.sessions[ps.Id] = ps
	log.Printf("Game.addSession %s", ps.Id)
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
}

func (g *Game) handle(pe PlayerEvent) {
	ps, found := g.sessions[pe.Session]
	if !found {
		return
	}
	log.Debugf("Game.handle %s: %s", ps.Id, pe.Message)
	switch pe.Message.Kind {
	case model.CM_PLAY:
		g.play(ps, pe.Message.Name)
	case model.CM_SPECTATE:
		g.spectate(ps)
	case model.CM_KEY:
		g.key(ps, pe.Message.Key)
	default:
		log.Warnf("Game.handle unexpected message kind %d", pe.Message.Kind)
		g.send(ps, errorMessage("unknown message"))
	}
}

func (g *Game) play(ps *PlayerSession, realName string) {
	if ps.State != PS_NEW {
		g.send(ps, errorMessage(errAlreadyJoined))
		return
	}
	name := NormalizeName(realName)
	if name == "" {
		g.Metrics.IncJoinsRejected()
		g.endSession(ps, msgNoName)
		return
	}
	if int(g.nextLetter) >= MaxPlayers {
		g.Metrics.IncJoinsRejected()
		g.endSession(ps, msgGameFull)
		return
	}

	occupied := g.Players.Occupied()
	g.Gold.Positions().Each(func(p model.Position) {
		occupied.Put(p)
	})
	pos, err := model.SpawnPosition(g.Grid, occupied, g.rng)
	if err != nil {
		log.Warnf("Game.play no spawn for %q: %v", name, err)
		g.Metrics.IncJoinsRejected()
		g.endSession(ps, msgNoRoom)
		return
	}

	letter := 'A' + g.nextLetter
	g.nextLetter++
	p := model.NewPlayer(g.Grid, ps.Id, name, letter, pos)
	p.Observe(g.Grid)
	g.Players.Put(p)
	ps.Player = p
	ps.State = PS_PLAY
	g.Metrics.IncJoins()
	log.Infof("player %c %q joined at (%d,%d)", letter, name, pos.X, pos.Y)

	remaining, _ := g.Gold.Remaining()
	g.send(ps, model.ServerMessage{
		Setup: []model.Setup{{Rows: g.Grid.Height(), Cols: g.Grid.Width(), Letter: letter}},
		Golds: []model.GoldReport{{Purse: 0, Remaining: remaining}},
	})
	g.broadcastDisplays()
}

func (g *Game) spectate(ps *PlayerSession) {
	if ps.State != PS_NEW {
		g.send(ps, errorMessage(errAlreadyJoined))
		return
	}
	if g.spectator != nil {
		log.Info("replacing spectator")
		g.endSession(g.spectator, msgReplaced)
	}
	g.spectator = ps
	ps.State = PS_SPECTATE

	remaining, _ := g.Gold.Remaining()
	g.send(ps, model.ServerMessage{
		Setup:    []model.Setup{{Rows: g.Grid.Height(), Cols: g.Grid.Width(), Spectator: true}},
		Golds:    []model.GoldReport{{Remaining: remaining}},
		Displays: []model.Display{{Map: model.Render(g.Grid, nil, g.Gold, g.Players)}},
	})
	g.Metrics.IncDisplaysSent()
}

func (g *Game) key(ps *PlayerSession, k rune) {
	switch ps.State {
	case PS_SPECTATE:
		if k == 'Q' {
			g.endSession(ps, msgThanksWatch)
		} else {
			g.send(ps, errorMessage(errUnknownKey))
		}
		return
	case PS_PLAY:
	default:
		g.send(ps, errorMessage(errNotJoined))
		return
	}

	p := ps.Player
	if k == 'Q' {
		log.Infof("player %c quit with %d nuggets", p.Letter, p.Purse)
		g.endSession(ps, msgThanksPlaying)
		g.broadcastDisplays()
		return
	}
	d, ok := model.DirectionForKey(k)
	if !ok {
		g.send(ps, errorMessage(errUnknownKey))
		return
	}

	before := p.Pos
	after, collected, err := g.Mover.Move(p, d, g.Gold)
	if errors.Is(err, model.ErrInvalidMove) {
		g.Metrics.IncMovesRejected()
		return
	}
	if after == before {
		return
	}
	g.Metrics.IncMovesAccepted()

	remaining, piles := g.Gold.Remaining()
	if collected > 0 {
		g.Metrics.AddGold(collected)
		log.Infof("player %c picked up %d nuggets, %d left", p.Letter, collected, remaining)
		g.reportGold(ps, collected, remaining)
	}
	if piles == 0 {
		g.gameOver()
		return
	}
	g.broadcastDisplays()
}

// reportGold tells the collector what it found and everyone else how much
// is left.
func (g *Game) reportGold(collector *PlayerSession, collected, remaining int) {
	for _, ps := range g.sessions {
		report := model.GoldReport{Remaining: remaining}
		switch {
		case ps == collector:
			report.Collected = collected
			report.Purse = ps.Player.Purse
		case ps.State == PS_PLAY:
			report.Purse = ps.Player.Purse
		case ps.State != PS_SPECTATE:
			continue
		}
		g.send(ps, model.ServerMessage{Golds: []model.GoldReport{report}})
	}
}

func (g *Game) broadcastDisplays() {
	for _, ps := range g.sessions {
		var viewer *model.Player
		switch ps.State {
		case PS_PLAY:
			viewer = ps.Player
		case PS_SPECTATE:
		default:
			continue
		}
		g.send(ps, model.ServerMessage{
			Displays: []model.Display{{Map: model.Render(g.Grid, viewer, g.Gold, g.Players)}},
		})
		g.Metrics.IncDisplaysSent()
	}
}

func (g *Game) gameOver() {
	summary := g.Summary()
	log.Infof("game over\n%s", summary)
	for _, ps := range g.sessions {
		g.endSession(ps, msgGameOver+"\n"+summary)
	}
	g.setState(GS_OVER)
}

// Summary lists every player that ever joined, by letter: letter, purse,
// name.
func (g *Game) Summary() string {
	players := make([]*model.Player, 0, g.Players.Len())
	g.Players.Each(func(_ string, p *model.Player) {
		players = append(players, p)
	})
	sort.Slice(players, func(i, j int) bool { return players[i].Letter < players[j].Letter })
	lines := make([]string, 0, len(players))
	for _, p := range players {
		lines = append(lines, fmt.Sprintf("%c %6d %s", p.Letter, p.Purse, p.Name))
	}
	return strings.Join(lines, "\n")
}

// NormalizeName trims the real name, cuts it to MaxNameLength runes and
// replaces anything unprintable by '_'.
func NormalizeName(realName string) string {
	runes := []rune(strings.TrimSpace(realName))
	if len(runes) > MaxNameLength {
		runes = runes[:MaxNameLength]
	}
	for i, r := range runes {
		if !unicode.IsGraphic(r) && r != '\t' {
			runes[i] = '_'
		}
	}
	return string(runes)
}

func errorMessage(explanation string) model.ServerMessage {
	return model.ServerMessage{Errors: []string{explanation}}
}

func (g *Game) send(ps *PlayerSession, mes model.ServerMessage) {
	select {
	case ps.MessagesToSend <- mes:
	default:
		log.Warnf("Dropping message for %s, queue FULL", ps.Id)
		g.Metrics.IncMessagesDropped()
	}
}

// endSession says goodbye and lets the writer finish.
func (g *Game) endSession(ps *PlayerSession, explanation string) {
	g.send(ps, model.ServerMessage{Quits: []model.Quit{{Explanation: explanation}}})
	g.closeSession(ps, PS_OVER)
}

func (g *Game) closeSession(ps *PlayerSession, state PlayerSessionState) {
	if ps.Player != nil {
		ps.Player.Active = false
	}
	if g.spectator == ps {
		g.spectator = nil
	}
	ps.State = state
	close(ps.MessagesToSend)
	delete(g.sessions, ps.Id)
}

// dropSession handles a connection that went away without quitting.
func (g *Game) dropSession(id string) {
	ps, found := g.sessions[id]
	if !found {
		return
	}
	log.Warnf("Game.dropSession %s state:%s", id, ps.State.Name())
	wasPlaying := ps.State == PS_PLAY
	g.closeSession(ps, PS_ERR)
	if wasPlaying {
		g.broadcastDisplays()
	}
}

func (ps *PlayerSession) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED %s", ps.Id)
loop:
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			log.Printf("LoopChannelRead err reading message from Conn %v", err)
			break loop
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.Warnf("LoopChannelRead cant decode %v", err)
			break loop
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		select {
		case ps.Game.Events <- PlayerEvent{Session: ps.Id, Message: cm}:
		case <-ps.Game.done:
			return
		}
	}
	select {
	case ps.Game.Disconnects <- ps.Id:
	case <-ps.Game.done:
	}
	log.Printf("LoopChannelRead ENDED %s", ps.Id)
}

// LoopChannelWrite only consumes, the game loop never blocks on it. It
// returns once the game loop closed MessagesToSend.
func (ps *PlayerSession) LoopChannelWrite() {
	log.Printf("PlayerSession.LoopChannelWrite STARTED %s", ps.Id)
	defer close(ps.GameOver)
	failed := false
	for mes := range ps.MessagesToSend {
		if failed {
			continue
		}
		if err := ps.write(mes); err != nil {
			log.Warnf("PlayerSession.LoopChannelWrite cant write %v", err)
			failed = true
			// unblocks the reader, which reports the disconnect
			_ = ps.Conn.Close()
			continue
		}
		ps.DebugOutMessages++
	}
	if !failed {
		_ = ps.Conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
	}
	log.Printf("LoopChannelWrite ENDED %s", ps.Id)
}

func (ps *PlayerSession) write(mes model.ServerMessage) error {
	w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		return err
	}
	return w.Close()
}
