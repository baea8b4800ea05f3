package main

import (
	"net/http"

	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_METRICS = "/metrics"
const URI_HEALTH = "/healthz"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.GameServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_METRICS, s.GameServer.HandleMetrics())
	s.router.HandleFunc("GET", URI_HEALTH, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}
