package game

import "time"

// Phase is the session lifecycle state.
type Phase uint8

const (
	PhaseLoading Phase = iota
	PhasePlaying
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// State is the game state owned by a Session.
type State struct {
	Phase Phase
	// Score never decreases.
	Score int
	// LiveTargets always equals the number of live target entities.
	LiveTargets  int
	Elapsed      time.Duration
	NextSpawn    time.Duration
	ShootPending bool
	Variant      Variant

	Spawned   int
	Fired     int
	Destroyed int
	Ticks     int64
}
