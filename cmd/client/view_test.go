package main

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/zucenko/nuggets/model"
)

func TestViewApply(t *testing.T) {
	v := &View{}
	assert.True(t, v.Apply(model.ServerMessage{
		Setup: []model.Setup{{Rows: 3, Cols: 7, Letter: 'B'}},
		Golds: []model.GoldReport{{Remaining: 250}},
	}))
	assert.Equal(t, 3, v.Rows)
	assert.Equal(t, 7, v.Cols)
	assert.Equal(t, "Player B has 0 nuggets (250 nuggets unclaimed).", v.Status(80))

	assert.True(t, v.Apply(model.ServerMessage{Displays: []model.Display{{Map: "+-----+\n|.@..*|\n+-----+"}}}))
	assert.Equal(t, []string{"+-----+", "|.@..*|", "+-----+"}, v.Map)

	assert.True(t, v.Apply(model.ServerMessage{Golds: []model.GoldReport{{Collected: 12, Purse: 12, Remaining: 238}}}))
	assert.Equal(t, "Player B has 12 nuggets (238 nuggets unclaimed). GOLD received: 12", v.Status(80))

	assert.True(t, v.Apply(model.ServerMessage{Errors: []string{"unknown keystroke"}}))
	assert.Equal(t, "Player B has 12 nuggets (238 nuggets unclaimed). GOLD received: 12 unknown keystroke", v.Status(100))

	// notices last one frame
	assert.True(t, v.Apply(model.ServerMessage{Displays: []model.Display{{Map: "+-----+\n|..@.*|\n+-----+"}}}))
	assert.Empty(t, v.Notice)

	assert.False(t, v.Apply(model.ServerMessage{Quits: []model.Quit{{Explanation: "Thanks for playing!"}}}))
	assert.Equal(t, "Thanks for playing!", v.Quit)
}

func TestViewSpectatorStatus(t *testing.T) {
	v := &View{}
	v.Apply(model.ServerMessage{
		Setup: []model.Setup{{Rows: 3, Cols: 7, Spectator: true}},
		Golds: []model.GoldReport{{Remaining: 40}},
	})
	assert.Equal(t, "Spectator: 40 nuggets unclaimed.", v.Status(80))
}

func TestViewStatusTruncated(t *testing.T) {
	v := &View{Letter: 'A', Remaining: 250}
	s := v.Status(12)
	assert.LessOrEqual(t, runewidth.StringWidth(s), 12)
	assert.True(t, strings.HasPrefix(s, "Player A"), s)
	assert.True(t, strings.HasSuffix(s, "…"), s)
}

func TestViewFits(t *testing.T) {
	v := &View{Rows: 21, Cols: 80}
	assert.True(t, v.Fits(80, 22))
	assert.False(t, v.Fits(80, 21))
	assert.False(t, v.Fits(79, 30))
}
