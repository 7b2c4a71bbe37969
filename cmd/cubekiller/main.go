package main

import (
	"flag"
	"log"
	"time"

	"github.com/plus3/cubekiller/audio"
	"github.com/plus3/cubekiller/debugui"
	debugui_ebiten "github.com/plus3/cubekiller/debugui/ebiten"
	"github.com/plus3/cubekiller/game"
	"github.com/plus3/cubekiller/view"
	ebitenview "github.com/plus3/cubekiller/view/ebiten"
)

const title = "CubeKiller"

func main() {
	cfg := game.DefaultConfig()
	cfg.BindFlags(flag.CommandLine)
	sounds := flag.String("sounds", "", "Directory holding shot.wav and explosion.wav. Sounds are synthesized when empty.")
	mute := flag.Bool("mute", false, "Disable audio.")
	debug := flag.Bool("debug", false, "Show the debug UI. F1 toggles it.")
	seed := flag.Uint64("seed", 0, "Seed for spawn placement and colors. Zero picks a random seed.")
	flag.Parse()

	scene := view.NewScene()
	opts := []game.Option{game.WithPresenter(scene)}
	if *seed != 0 {
		opts = append(opts, game.WithSeed(*seed))
	}

	if !*mute {
		bank := audio.DefaultBank(*sounds, log.Default())
		if failed := bank.Preload(); len(failed) > 0 {
			log.Printf("Missing sounds: %v", failed)
		}
		player := audio.NewPlayer(bank, log.Default())
		if err := player.Open(); err != nil {
			log.Printf("Audio initialization failed: %v", err)
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

	var gameOpts []ebitenview.Option
	if *debug {
		overlay := debugui_ebiten.NewOverlay(title, ebitenview.ScreenWidth, ebitenview.ScreenHeight, debugui.New(session))
		gameOpts = append(gameOpts, ebitenview.WithOverlay(overlay))
	}

	if err := ebitenview.Run(ebitenview.NewGame(session, scene, gameOpts...), title); err != nil {
		log.Fatalf("Game exited with error: %v", err)
	}

	state := session.State()
	log.Printf("Final score %d after %s (%d targets destroyed, %d shots)", state.Score, state.Elapsed.Round(time.Second), state.Destroyed, state.Fired)
}
