package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/cubekiller/game"
)

type Report struct {
	// Configuration
	Simulated time.Duration
	TickRate  int
	Seed      uint64
	Config    game.Config

	// Results
	State          game.State
	TotalTicks     int64
	TotalTime      time.Duration
	TickTime       Stats
	Systems        []game.SystemStats
	AudioPeak      float64
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarizes wall-clock tick durations.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P95     time.Duration
	Samples []time.Duration
}

// Finalize computes the summary. Samples are left sorted.
func (s *Stats) Finalize() {
	n := len(s.Samples)
	if n == 0 {
		return
	}
	slices.Sort(s.Samples)
	s.Min, s.Max = s.Samples[0], s.Samples[n-1]
	s.P95 = s.Samples[(n-1)*95/100]

	var total time.Duration
	for _, sample := range s.Samples {
		total += sample
	}
	s.Avg = total / time.Duration(n)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# CubeKiller Simulation Report

## Configuration
- **Simulated Time:** {{.Simulated}} at {{.TickRate}} ticks/s
- **Seed:** {{.Seed}}
- **Spawn Interval:** {{.Config.SpawnInterval}}
- **Half Width:** {{.Config.HalfWidth}}
- **Field:** {{.Config.Variant}}
- **Hit Delay:** {{.Config.HitDelay}}

## Game Results
- **Final Phase:** {{.State.Phase}}
- **Score:** {{.State.Score}}
- **Targets:** {{.State.Spawned}} spawned, {{.State.Destroyed}} destroyed, {{.State.LiveTargets}} live
- **Shots Fired:** {{.State.Fired}}
- **Hit Ratio:** {{ratio .State.Destroyed .State.Spawned}}
- **Audio Peak:** {{printf "%.3f" .AudioPeak}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Wall Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **P95:** {{.TickTime.P95}}
  - **Max:** {{.TickTime.Max}}

## Systems
{{range .Systems}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
`

	fm := template.FuncMap{
		"ratio": func(a, b int) string {
			if b == 0 {
				return "n/a"
			}
			return fmt.Sprintf("%.1f%%", 100*float64(a)/float64(b))
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
