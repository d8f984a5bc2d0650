package main

import (
	"log"
	"net/http"
	"os"

	"github.com/minaorangina/tray/config"
	"github.com/minaorangina/tray/level"
	"github.com/minaorangina/tray/server"
	"github.com/minaorangina/tray/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	logger := log.New(os.Stdout, "tray ", log.LstdFlags)

	s := server.NewServer(server.ServerOpts{
		Store:          store.NewInMemoryGameStore(),
		Levels:         level.NewFileProvider(cfg.LevelDir),
		DefaultLevel:   cfg.DefaultLevel,
		AwaitSettle:    cfg.AwaitSettle,
		AllowedOrigins: cfg.Origins(),
		Logger:         logger,
	})

	logger.Printf("Listening on %s...", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, s))
}
