package game

import (
	"reflect"
	"strings"
	"time"
)

// System is one stage of a tick. Systems run in registration order.
type System interface {
	Execute(frame *Frame)
}

// Frame is what a system sees during one tick.
type Frame struct {
	DeltaTime time.Duration
	Commands  *Commands
	Session   *Session
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount int
	Ticks       int64
	// LastTick covers every system and the command flush of the latest tick.
	LastTick time.Duration
	Systems  []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type timing struct {
	count int64
	min   time.Duration
	max   time.Duration
	last  time.Duration
	total time.Duration
}

func (t *timing) observe(d time.Duration) {
	if t.count == 0 || d < t.min {
		t.min = d
	}
	t.max = max(t.max, d)
	t.last = d
	t.total += d
	t.count++
}

func (t *timing) stats(name string) SystemStats {
	st := SystemStats{
		Name:           name,
		ExecutionCount: t.count,
		MinDuration:    t.min,
		MaxDuration:    t.max,
		LastDuration:   t.last,
		TotalDuration:  t.total,
	}
	if t.count > 0 {
		st.AvgDuration = t.total / time.Duration(t.count)
	}
	return st
}

type stage struct {
	name   string
	system System
	timing timing
}

// stageName derives a display name from the system type: *spawnSystem
// becomes "spawn".
func stageName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := strings.TrimSuffix(t.Name(), "System"); name != "" {
		return name
	}
	return t.String()
}

// Scheduler runs the systems of a session in order and times each of them.
type Scheduler struct {
	session  *Session
	stages   []*stage
	commands *Commands
	frame    Frame
	ticks    int64
	lastTick time.Duration
}

func NewScheduler(session *Session) *Scheduler {
	s := &Scheduler{
		session:  session,
		commands: newCommands(),
	}
	s.frame = Frame{Commands: s.commands, Session: session}
	return s
}

// Register appends a system to the tick.
func (s *Scheduler) Register(system System) {
	s.stages = append(s.stages, &stage{name: stageName(system), system: system})
}

// Once executes all registered systems once with the given delta time, then
// flushes the deferred commands they queued.
func (s *Scheduler) Once(dt time.Duration) {
	tickStart := time.Now()
	s.frame.DeltaTime = dt

	for _, st := range s.stages {
		start := time.Now()
		st.system.Execute(&s.frame)
		st.timing.observe(time.Since(start))
	}

	s.commands.Flush(s.session)
	s.ticks++
	s.lastTick = time.Since(tickStart)
}

// GetStats returns a copy of the per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.stages),
		Ticks:       s.ticks,
		LastTick:    s.lastTick,
		Systems:     make([]SystemStats, len(s.stages)),
	}
	for i, st := range s.stages {
		stats.Systems[i] = st.timing.stats(st.name)
	}
	return stats
}
