package model

import (
	"fmt"
	"strings"
)

// ServerMessage is one frame sent to a client. Every slice is optional; a
// frame usually carries a single kind of payload.
type ServerMessage struct {
	Setup    []Setup
	Golds    []GoldReport
	Displays []Display
	Quits    []Quit
	Errors   []string
}

// Setup answers a PLAY or SPECTATE: the grid size and, for players, the
// assigned letter.
type Setup struct {
	Rows, Cols int
	Letter     byte
	Spectator  bool
}

type GoldReport struct {
	Collected int
	Purse     int
	Remaining int
}

type Display struct {
	Map string
}

type Quit struct {
	Explanation string
}

func (s Setup) String() string {
	if s.Spectator {
		return fmt.Sprintf("GRID %d %d", s.Rows, s.Cols)
	}
	return fmt.Sprintf("OK %c\nGRID %d %d", s.Letter, s.Rows, s.Cols)
}

func (g GoldReport) String() string {
	return fmt.Sprintf("GOLD %d %d %d", g.Collected, g.Purse, g.Remaining)
}

func (d Display) String() string {
	return "DISPLAY\n" + d.Map
}

func (q Quit) String() string {
	return "QUIT " + q.Explanation
}

// String renders the frame in the line protocol, one message per line.
func (m ServerMessage) String() string {
	lines := make([]string, 0)
	for _, s := range m.Setup {
		lines = append(lines, s.String())
	}
	for _, g := range m.Golds {
		lines = append(lines, g.String())
	}
	for _, d := range m.Displays {
		lines = append(lines, d.String())
	}
	for _, q := range m.Quits {
		lines = append(lines, q.String())
	}
	for _, e := range m.Errors {
		lines = append(lines, "ERROR "+e)
	}
	return strings.Join(lines, "\n")
}
