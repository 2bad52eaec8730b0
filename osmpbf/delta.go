package osmpbf

// deltaTracker implements spec.md §4.1: one stateful scalar per
// delta-encoded column. update returns v minus the previously tracked
// value and stores v as the new previous value; clear resets to zero.
// Trackers are reset exactly at block boundaries (see primitiveBlock.reset)
// plus once per way/relation for their node/member reference columns,
// which are always fresh (never shared with the block-level trackers).
type deltaTracker struct {
	prev int64
}

func (d *deltaTracker) update(v int64) int64 {
	delta := v - d.prev
	d.prev = v
	return delta
}

func (d *deltaTracker) clear() {
	d.prev = 0
}

// uint32DeltaTracker is the same thing for the one 32-bit unsigned column
// (DenseInfo.user_sid, tracked after final string-id remap).
type uint32DeltaTracker struct {
	prev uint32
}

func (d *uint32DeltaTracker) update(v uint32) int32 {
	delta := int64(v) - int64(d.prev)
	d.prev = v
	return int32(delta)
}

func (d *uint32DeltaTracker) clear() {
	d.prev = 0
}
