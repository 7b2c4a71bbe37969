package ecs

// Stats is a point-in-time summary of a Registry.
type Stats struct {
	TotalEntityCount int
	ByKind           map[Kind]int
	Capacity         int
	FreeSlots        int
	PendingDirty     int
}

// CollectStats summarizes the registry for debug panels and reports.
func (r *Registry) CollectStats() Stats {
	stats := Stats{
		TotalEntityCount: r.Len(),
		ByKind:           make(map[Kind]int, len(Kinds())),
		Capacity:         r.arena.capacity(),
		FreeSlots:        r.arena.free(),
		PendingDirty:     len(r.dirty),
	}
	for _, kind := range Kinds() {
		stats.ByKind[kind] = r.counts[kind]
	}
	return stats
}
