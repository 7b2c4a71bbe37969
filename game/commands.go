package game

import "github.com/plus3/cubekiller/ecs"

// Commands buffers structural changes requested by systems. The buffer is
// flushed once every system of the tick has run, so systems never see an
// entity vanish halfway through a tick.
type Commands struct {
	destroys []destroyCommand
	defers   []func()
}

type destroyCommand struct {
	entity  ecs.EntityId
	explode bool
}

func newCommands() *Commands {
	return &Commands{}
}

// Destroy queues removal of entity. With explode set, the explosion is
// emitted from the entity's transform at flush time.
func (c *Commands) Destroy(entity ecs.EntityId, explode bool) {
	c.destroys = append(c.destroys, destroyCommand{entity: entity, explode: explode})
}

// Defer queues fn to run after the queued destroys.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.destroys) + len(c.defers)
}

// Flush applies all queued operations to s and resets the buffer.
// Destroying an entity twice is harmless.
func (c *Commands) Flush(s *Session) {
	for _, cmd := range c.destroys {
		s.destroy(cmd.entity, cmd.explode)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.defers)
	c.destroys = c.destroys[:0]
	c.defers = c.defers[:0]
}
