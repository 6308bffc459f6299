package linker

// ParentStats counts the outcomes of resolving one kind of parent.
type ParentStats struct {
	Linked              uint64 // resolved and linked
	Absent              uint64 // no descriptor
	Missing             uint64 // hash not indexed
	Ancient             uint64 // descriptor or resolved event is ancient
	GenerationMismatch  uint64 // claimed generation differs
	BirthRoundMismatch  uint64 // claimed birth round differs
	CreatorMismatch     uint64 // parent from another creator (self-parent only)
	TimeCreatedMismatch uint64 // claimed creation time differs (self-parent only)
	TimeOrderViolation  uint64 // parent not created before the child (self-parent only)
}

// Unlinked is the number of declared parents that were not linked.
func (p ParentStats) Unlinked() uint64 {
	return p.Missing + p.Ancient + p.Mismatched()
}

// Mismatched is the number of parents rejected for inconsistent claims.
func (p ParentStats) Mismatched() uint64 {
	return p.GenerationMismatch + p.BirthRoundMismatch + p.CreatorMismatch + p.TimeCreatedMismatch + p.TimeOrderViolation
}

// Stats are the cumulative counters of a linker.
type Stats struct {
	Linked           uint64 // events linked and indexed
	DiscardedAncient uint64 // events ancient on arrival
	Duplicates       uint64 // events whose hash was already indexed, answered with the indexed copy
	WindowUpdates    uint64 // accepted windows
	Evicted          uint64 // events dropped from the index
	Unlinked         uint64 // evicted events whose links were severed
	MaxIndexed       int    // high-water mark of the index
	SelfParent       ParentStats
	OtherParent      ParentStats
}
