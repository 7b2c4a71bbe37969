package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/cubekiller/audio"
	"github.com/plus3/cubekiller/game"
	"github.com/plus3/cubekiller/view"
	"github.com/plus3/cubekiller/view/term"
)

func main() {
	cfg := game.DefaultConfig()
	cfg.BindFlags(flag.CommandLine)
	fps := flag.Int("fps", 30, "Frames per second.")
	logFile := flag.String("log", "", "Write logs to this file. The terminal is in use, so logs are discarded by default.")
	sound := flag.Bool("sound", false, "Play synthesized sounds.")
	flag.Parse()

	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	scene := view.NewScene()
	opts := []game.Option{game.WithPresenter(scene), game.WithLogger(logger)}
	if *sound {
		player := audio.NewPlayer(audio.DefaultBank("", logger), logger)
		if err := player.Open(); err != nil {
			logger.Printf("Audio initialization failed: %v", err)
		} else {
			defer player.Close()
			opts = append(opts, game.WithAudio(player))
		}
	}

	session, err := game.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := session.Load(); err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	host := term.NewHost(screen, session, scene, logger)
	runErr := host.Run(ctx, time.Second/time.Duration(max(1, *fps)))
	screen.Fini()

	if runErr != nil && ctx.Err() == nil {
		log.Fatalf("Game exited with error: %v", runErr)
	}
	state := session.State()
	log.Printf("Final score %d after %s", state.Score, state.Elapsed.Round(time.Second))
}
