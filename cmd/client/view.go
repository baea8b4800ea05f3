package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/zucenko/nuggets/model"
)

// View is what the client knows about the game, rebuilt from server frames.
type View struct {
	Rows, Cols int
	Letter     byte
	Spectator  bool
	Purse      int
	Remaining  int
	Received   int
	Map        []string
	Notice     string
	Quit       string
}

// Apply folds one server frame into the view. It reports false once the
// server said goodbye.
func (v *View) Apply(mes model.ServerMessage) bool {
	v.Notice = ""
	for _, s := range mes.Setup {
		v.Rows, v.Cols = s.Rows, s.Cols
		v.Letter = s.Letter
		v.Spectator = s.Spectator
	}
	for _, g := range mes.Golds {
		v.Purse = g.Purse
		v.Remaining = g.Remaining
		v.Received = g.Collected
	}
	for _, d := range mes.Displays {
		v.Map = strings.Split(d.Map, "\n")
	}
	for _, e := range mes.Errors {
		v.Notice = e
	}
	for _, q := range mes.Quits {
		v.Quit = q.Explanation
	}
	return len(mes.Quits) == 0
}

// Status is the line shown above the map, cut to width cells.
func (v *View) Status(width int) string {
	var s string
	if v.Spectator {
		s = fmt.Sprintf("Spectator: %d nuggets unclaimed.", v.Remaining)
	} else {
		s = fmt.Sprintf("Player %c has %d nuggets (%d nuggets unclaimed).", v.Letter, v.Purse, v.Remaining)
		if v.Received > 0 {
			s += fmt.Sprintf(" GOLD received: %d", v.Received)
		}
	}
	if v.Notice != "" {
		s += " " + v.Notice
	}
	return runewidth.Truncate(s, width, "…")
}

// Fits reports whether a terminal of the given size can show the whole map
// plus the status line.
func (v *View) Fits(width, height int) bool {
	return width >= v.Cols && height >= v.Rows+1
}
