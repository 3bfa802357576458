package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/SkyeWong/social-segregation-simulator/internal/render"
	"github.com/SkyeWong/social-segregation-simulator/internal/sims/segregation"
	"github.com/SkyeWong/social-segregation-simulator/internal/stream"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML preset file; explicit flags override its values")
		imagesPath = flag.String("images", "images", "directory for per-iteration PNG frames")
		gifPath    = flag.String("gif", "", "output GIF path (defaults to <images>/res.gif)")
		noGIF      = flag.Bool("no-gif", false, "skip assembling the animated GIF")
		scale      = flag.Int("scale", 8, "pixel scale multiplier for frames")
		delay      = flag.Int("delay", 20, "GIF frame delay in 1/100s")
		listen     = flag.String("listen", "", "serve live frames over websocket on this address")
		tps        = flag.Int("tps", 0, "pace iterations at this rate (0 = unpaced)")
	)
	def := segregation.DefaultConfig()
	var (
		width      = flag.Int("w", def.Width, "grid width")
		height     = flag.Int("h", def.Height, "grid height")
		agentTypes = flag.Int("types", def.AgentTypes, "number of agent types")
		iterations = flag.Int("iterations", def.Iterations, "iteration budget (-1 runs until all cells are happy)")
		empty      = flag.Float64("empty", def.PercentEmpty, "fraction of vacant cells")
		similar    = flag.Float64("similar", def.SameNeighbour, "same-neighbour threshold")
		seed       = flag.Int64("seed", def.Seed, "random seed")
	)
	flag.Parse()

	cfg := def
	if *configPath != "" {
		loaded, err := segregation.LoadFile(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			cfg.Width = *width
		case "h":
			cfg.Height = *height
		case "types":
			cfg.AgentTypes = *agentTypes
		case "iterations":
			cfg.Iterations = *iterations
		case "empty":
			cfg.PercentEmpty = *empty
		case "similar":
			cfg.SameNeighbour = *similar
		case "seed":
			cfg.Seed = *seed
		}
	})

	world, err := segregation.NewWithConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	world.Reset(cfg.Seed)

	if err := os.MkdirAll(*imagesPath, 0o755); err != nil {
		log.Fatalf("create images directory: %v", err)
	}
	if err := render.CleanDir(*imagesPath); err != nil {
		log.Fatal(err)
	}

	writer := render.NewFrameWriter(*imagesPath, world.Palette(), *scale)
	size := world.Size()
	if _, err := writer.WriteFrame(0, world.Cells(), size.W, size.H); err != nil {
		log.Fatal(err)
	}

	var hub *stream.Hub
	if *listen != "" {
		hub = stream.NewHub()
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		go func() {
			log.Printf("serving live frames on ws://%s/ws", *listen)
			if err := http.ListenAndServe(*listen, mux); err != nil {
				log.Fatalf("stream server: %v", err)
			}
		}()
	}

	var pace time.Duration
	if *tps > 0 {
		pace = time.Second / time.Duration(*tps)
	}

	start := time.Now()
	state, err := world.Run(func(s segregation.Snapshot) {
		display := make([]uint8, len(s.Cells))
		for i, c := range s.Cells {
			display[i] = uint8(c)
		}
		if _, err := writer.WriteFrame(s.Iteration, display, s.Width, s.Height); err != nil {
			log.Fatal(err)
		}
		log.Printf("iteration %-4d done (%.2f%% cells are happy)", s.Iteration, s.PercentHappy)

		if hub != nil {
			cells := make([]int, len(s.Cells))
			for i, c := range s.Cells {
				cells[i] = int(c)
			}
			hub.Broadcast(stream.Frame{
				Iteration:    s.Iteration,
				PercentHappy: s.PercentHappy,
				Width:        s.Width,
				Height:       s.Height,
				Cells:        cells,
			})
		}
		if pace > 0 {
			time.Sleep(pace)
		}
	})
	if err != nil {
		log.Fatal(err)
	}

	if !*noGIF {
		out := *gifPath
		if out == "" {
			out = filepath.Join(*imagesPath, "res.gif")
		}
		if err := render.AssembleGIF(*imagesPath, out, *delay); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", out)
	}

	if hub != nil {
		hub.Close()
	}
	log.Printf("%s after %d iterations in %s", state, world.Iteration(), time.Since(start).Round(time.Millisecond))
}
