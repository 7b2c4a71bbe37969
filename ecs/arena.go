package ecs

import "iter"

const (
	arenaBlockSize = 64
)

// arena stores entities in fixed-size blocks. Slots freed by remove are
// reused before the arena grows. Blocks are allocated individually so a
// pointer into the arena stays valid until its slot is removed.
type arena struct {
	blocks    []*[arenaBlockSize]Entity
	filled    []*[arenaBlockSize]bool
	freeSlots []int
	nextIndex int
}

// insert stores e and returns its slot.
func (a *arena) insert(e Entity) int {
	var index int
	if n := len(a.freeSlots); n > 0 {
		index = a.freeSlots[n-1]
		a.freeSlots = a.freeSlots[:n-1]
	} else {
		index = a.nextIndex
		a.nextIndex++
		if index/arenaBlockSize >= len(a.blocks) {
			a.blocks = append(a.blocks, new([arenaBlockSize]Entity))
			a.filled = append(a.filled, new([arenaBlockSize]bool))
		}
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize
	a.blocks[blockIdx][slotIdx] = e
	a.filled[blockIdx][slotIdx] = true
	return index
}

// at returns the entity in slot, or nil if the slot is empty.
func (a *arena) at(index int) *Entity {
	if index < 0 || index >= a.nextIndex {
		return nil
	}
	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize
	if !a.filled[blockIdx][slotIdx] {
		return nil
	}
	return &a.blocks[blockIdx][slotIdx]
}

// remove clears slot and queues it for reuse. Removing an empty slot is a no-op.
func (a *arena) remove(index int) {
	if index < 0 || index >= a.nextIndex {
		return
	}
	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize
	if !a.filled[blockIdx][slotIdx] {
		return
	}
	a.filled[blockIdx][slotIdx] = false
	a.blocks[blockIdx][slotIdx] = Entity{}
	a.freeSlots = append(a.freeSlots, index)
}

// slots yields every occupied slot in ascending order. Removing slots while
// iterating is allowed; slots inserted during iteration may or may not be seen.
func (a *arena) slots() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < a.nextIndex; i++ {
			if a.filled[i/arenaBlockSize][i%arenaBlockSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}

func (a *arena) capacity() int {
	return len(a.blocks) * arenaBlockSize
}

func (a *arena) free() int {
	return len(a.freeSlots)
}
