package ecs

import "testing"

func TestArenaReusesFreedSlots(t *testing.T) {
	var a arena

	s0 := a.insert(Entity{Id: 1})
	s1 := a.insert(Entity{Id: 2})
	a.remove(s0)

	if got := a.free(); got != 1 {
		t.Errorf("expected 1 free slot, got %d", got)
	}

	s2 := a.insert(Entity{Id: 3})
	if s2 != s0 {
		t.Errorf("expected freed slot %d to be reused, got %d", s0, s2)
	}
	if e := a.at(s1); e == nil || e.Id != 2 {
		t.Errorf("slot %d should still hold entity 2", s1)
	}
	if a.free() != 0 {
		t.Errorf("expected no free slots after reuse")
	}
}

func TestArenaRemoveIsIdempotent(t *testing.T) {
	var a arena
	s := a.insert(Entity{Id: 1})
	a.remove(s)
	a.remove(s)
	a.remove(-1)
	a.remove(1000)

	if got := a.free(); got != 1 {
		t.Errorf("expected 1 free slot, got %d", got)
	}
	if a.at(s) != nil {
		t.Errorf("removed slot should read as empty")
	}
}

func TestArenaGrowsInBlocks(t *testing.T) {
	var a arena
	for i := range arenaBlockSize + 1 {
		a.insert(Entity{Id: EntityId(i + 1)})
	}

	if got := a.capacity(); got != 2*arenaBlockSize {
		t.Errorf("expected capacity %d, got %d", 2*arenaBlockSize, got)
	}

	count := 0
	for range a.slots() {
		count++
	}
	if count != arenaBlockSize+1 {
		t.Errorf("expected %d occupied slots, got %d", arenaBlockSize+1, count)
	}
}
