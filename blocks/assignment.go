package blocks

// Assignment is one BlockAssignment table entry: a junction is either
// unassigned, or carries the signed block id it belongs to plus its ordinal
// among that block's instances.
type Assignment struct {
	Assigned bool
	Block    int64
	Instance int
}

// Instance is one committed output record: an occurrence of a block on one
// chromosome and strand, as a half-open [Start, End) coordinate interval.
type Instance struct {
	Block          int64
	ChrID          int
	ChrDescription string
	Strand         int8
	Start, End     uint64
}

// Length returns End - Start.
func (inst Instance) Length() uint64 { return inst.End - inst.Start }
