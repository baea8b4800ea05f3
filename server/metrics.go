package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// Metrics counts game events. The game loop writes, HTTP handlers read.
type Metrics struct {
	MovesAccepted   int64
	MovesRejected   int64
	GoldCollected   int64
	Joins           int64
	JoinsRejected   int64
	DisplaysSent    int64
	MessagesDropped int64
}

func (m *Metrics) IncMovesAccepted()   { atomic.AddInt64(&m.MovesAccepted, 1) }
func (m *Metrics) IncMovesRejected()   { atomic.AddInt64(&m.MovesRejected, 1) }
func (m *Metrics) AddGold(n int)       { atomic.AddInt64(&m.GoldCollected, int64(n)) }
func (m *Metrics) IncJoins()           { atomic.AddInt64(&m.Joins, 1) }
func (m *Metrics) IncJoinsRejected()   { atomic.AddInt64(&m.JoinsRejected, 1) }
func (m *Metrics) IncDisplaysSent()    { atomic.AddInt64(&m.DisplaysSent, 1) }
func (m *Metrics) IncMessagesDropped() { atomic.AddInt64(&m.MessagesDropped, 1) }

// Snapshot returns a copy suitable for JSON output.
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"moves_accepted":   atomic.LoadInt64(&m.MovesAccepted),
		"moves_rejected":   atomic.LoadInt64(&m.MovesRejected),
		"gold_collected":   atomic.LoadInt64(&m.GoldCollected),
		"joins":            atomic.LoadInt64(&m.Joins),
		"joins_rejected":   atomic.LoadInt64(&m.JoinsRejected),
		"displays_sent":    atomic.LoadInt64(&m.DisplaysSent),
		"messages_dropped": atomic.LoadInt64(&m.MessagesDropped),
	}
}

// HandleMetrics serves the counters as JSON.
func (s *GameServer) HandleMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"state":   s.Game.StateName(),
			"metrics": s.Metrics.Snapshot(),
		})
	}
}
