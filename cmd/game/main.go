package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Red1-Rahman/Quantum-Adventure/internal/entropy"
	"github.com/Red1-Rahman/Quantum-Adventure/internal/game"
)

func main() {
	log.SetLevel(log.DebugLevel)

	cfg := game.DefaultConfig()
	src := entropy.NewSource(entropy.Simulator{})
	session, err := game.NewSession(cfg, src, nil, nil)
	if err != nil {
		log.Fatalf("session setup: %v", err)
	}
	app, err := game.NewApp(session)
	if err != nil {
		log.Fatalf("app setup: %v", err)
	}

	ebiten.SetWindowTitle("Quantum Adventure Game")
	ebiten.SetWindowSize(cfg.WindowSize())
	ebiten.SetTPS(game.TicksPerSecond)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
