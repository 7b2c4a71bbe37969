package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/cubekiller/audio"
	"github.com/plus3/cubekiller/game"
)

func main() {
	cfg := game.DefaultConfig()
	cfg.BindFlags(flag.CommandLine)
	simulated := flag.Duration("duration", 2*time.Minute, "Simulated play time.")
	tickRate := flag.Int("tps", 60, "Simulation ticks per simulated second.")
	seed := flag.Uint64("seed", 0, "Seed for spawn placement and colors. Zero picks a random seed.")
	shootEvery := flag.Int("shoot-every", 10, "Ticks between autopilot shots while aimed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	if *tickRate <= 0 {
		log.Fatalf("Invalid tick rate %d", *tickRate)
	}

	log.Println("Starting CubeKiller simulation...")

	player := audio.NewPlayer(audio.DefaultBank("", log.Default()), log.Default())
	session, err := game.New(cfg, game.WithSeed(*seed), game.WithAudio(player))
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := session.Load(); err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}
	pilot := NewAutopilot(session, *shootEvery, *tickRate)

	dt := time.Second / time.Duration(*tickRate)
	ticks := int(*simulated / dt)
	report := &Report{
		Simulated:      *simulated,
		TickRate:       *tickRate,
		Seed:           *seed,
		Config:         cfg,
		GCPauseMetrics: *gcPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0, ticks),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Simulating %s in %d ticks...\n", *simulated, ticks)
	startTime := time.Now()
	for range ticks {
		pilot.Step()

		tickStart := time.Now()
		session.Tick(dt)
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))

		report.AudioPeak = max(report.AudioPeak, player.Render(dt))
	}
	session.Stop()

	report.TotalTime = time.Since(startTime)
	report.TotalTicks = int64(ticks)
	report.TickTime.Finalize()
	report.State = session.State()
	report.Systems = session.Stats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
