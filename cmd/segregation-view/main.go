//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/SkyeWong/social-segregation-simulator/internal/app"
	"github.com/SkyeWong/social-segregation-simulator/internal/core"
	_ "github.com/SkyeWong/social-segregation-simulator/internal/sims/segregation"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()["segregation"]
	if !ok {
		log.Fatal("segregation sim not registered")
	}

	sim := factory(cfg.SimParams())
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.TPS, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("segregation — " + sim.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
