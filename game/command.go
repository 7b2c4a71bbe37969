package game

import "sync"

// CommandKind identifies a player action.
type CommandKind uint8

const (
	CommandMoveForward CommandKind = iota + 1
	CommandRotate
	CommandShoot
	CommandToggleField
	CommandTogglePause
)

func (k CommandKind) String() string {
	switch k {
	case CommandMoveForward:
		return "move-forward"
	case CommandRotate:
		return "rotate"
	case CommandShoot:
		return "shoot"
	case CommandToggleField:
		return "toggle-field"
	case CommandTogglePause:
		return "toggle-pause"
	default:
		return "unknown"
	}
}

// Command is a player action queued for the next tick.
type Command struct {
	Kind CommandKind
	// Yaw is the rotation in radians for CommandRotate.
	Yaw float64
}

func MoveForward() Command { return Command{Kind: CommandMoveForward} }
func Shoot() Command { return Command{Kind: CommandShoot} }
func ToggleField() Command { return Command{Kind: CommandToggleField} }
func TogglePause() Command { return Command{Kind: CommandTogglePause} }

// Rotate turns the avatar by delta radians around the vertical axis.
func Rotate(delta float64) Command { return Command{Kind: CommandRotate, Yaw: delta} }

// commandQueue is the only part of a session written from other goroutines.
type commandQueue struct {
	mu    sync.Mutex
	items []Command
}

func (q *commandQueue) push(c Command) {
	q.mu.Lock()
	q.items = append(q.items, c)
	q.mu.Unlock()
}

// drain appends every queued command to dst and empties the queue.
func (q *commandQueue) drain(dst []Command) []Command {
	q.mu.Lock()
	dst = append(dst, q.items...)
	clear(q.items)
	q.items = q.items[:0]
	q.mu.Unlock()
	return dst
}
