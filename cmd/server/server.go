package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/nuggets/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	cfg, err := server.LoadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalln(err)
	}
	if err := server.InitLogger(cfg.LogFile, cfg.LogLevel); err != nil {
		log.Fatalln(err)
	}
	grid, err := server.Load(cfg.MapFile)
	if err != nil {
		log.Fatalf("unable to load map %s: %v", cfg.MapFile, err)
	}
	game, err := server.NewGame(cfg, grid, &server.Metrics{})
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("map %s loaded: %dx%d, seed %d", cfg.MapFile, grid.Width(), grid.Height(), cfg.Seed)

	s := Server{GameServer: server.NewGameServer(game)}
	go game.Loop()
	s.routes()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: s.router}
	go func() {
		log.Printf("waiting for connections on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info("Shutting down...")
	case <-game.Done():
		log.Info("Game over, shutting down...")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
}
