package model

import "fmt"

type ClientKind int

const (
	CM_PLAY ClientKind = iota + 1
	CM_SPECTATE
	CM_KEY
)

// ClientMessage is one frame sent by a client.
type ClientMessage struct {
	Kind ClientKind
	Name string
	Key  rune
}

func (k ClientKind) Name() string {
	switch k {
	case CM_PLAY:
		return "PLAY"
	case CM_SPECTATE:
		return "SPECTATE"
	case CM_KEY:
		return "KEY"
	default:
		return fmt.Sprintf("n/a:%d", k)
	}
}

func (m ClientMessage) String() string {
	switch m.Kind {
	case CM_PLAY:
		return "PLAY " + m.Name
	case CM_KEY:
		return fmt.Sprintf("KEY %c", m.Key)
	default:
		return m.Kind.Name()
	}
}
