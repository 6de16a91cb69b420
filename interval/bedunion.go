package interval

import (
	"fmt"
)

// BEDUnion is currently implemented as a collection of length-2N sequences,
// where N is the number of intervals, the (0-based) start position of the
// interval #k (numbering from zero) is in element [2k] and the end position is
// in element [2k+1], and the intervals are stored in increasing order.
// Advantages of this representation over a length-N sequence of {start, end}
// structs include simpler inversion code, and reuse of standard []int32 binary
// and similar search algorithms (which the compiler is more likely to optimize
// well).
//
// This is a trimmed fork: the sam.Header-indexed lookup path
// (ContainsByID/Intersects/idMap) and the BED-file scanner are dropped, since
// nothing here reads BAM references or BED files -- interval sets are always
// built in memory from committed block coordinates via NewBEDUnionFromEntries.
type BEDUnion struct {
	// nameMap is a chromosome-keyed map with disjoint-interval-set values.
	// Always initialized.
	nameMap map[string]([]PosType)
	// lastChrIntervals points to the disjoint-interval-set for the most
	// recently queried chromosome.  This is a minor performance optimization.
	lastChrIntervals []PosType
	// lastChrName is the name of the last queried-by-name chromosome.  If it's
	// nonempty, it must be in sync with lastChrIntervals.
	lastChrName string
	// lastPosPlus1 is 1 plus the last spot-queried position.
	lastPosPlus1 PosType
	// lastIdx is SearchPosTypes(lastChrIntervals, lastPosPlus1).  Cached to
	// accelerate sequential queries.
	lastIdx EndpointIndex
	// isSequential is true if all queries since the last chromosome change have
	// been in order of nondecreasing position.
	isSequential bool
}

// ContainsByName checks whether the (0-based) interval [pos, pos+1) is
// contained within the BEDUnion, where chromosome is specified by name.
func (u *BEDUnion) ContainsByName(chrName string, pos PosType) bool {
	posPlus1 := pos + 1
	if chrName != u.lastChrName {
		u.lastChrName = chrName
		u.lastChrIntervals = u.nameMap[chrName]
		if u.lastChrIntervals == nil {
			return false
		}
		u.lastIdx = SearchPosTypes(u.lastChrIntervals, posPlus1)
		u.lastPosPlus1 = posPlus1
		u.isSequential = true
		return u.lastIdx.Contained()
	}
	if u.lastChrIntervals == nil {
		return false
	}
	if u.isSequential {
		if posPlus1 >= u.lastPosPlus1 {
			u.lastIdx = ExpsearchPosType(u.lastChrIntervals, posPlus1, u.lastIdx)
			u.lastPosPlus1 = posPlus1
			return u.lastIdx.Contained()
		}
		u.isSequential = false
	}
	return SearchPosTypes(u.lastChrIntervals, posPlus1).Contained()
}

// CoveredBases returns the total number of bases covered by the
// interval-union on the given chromosome.
func (u *BEDUnion) CoveredBases(chrName string) int64 {
	intervals := u.nameMap[chrName]
	var total int64
	for i := 0; i+1 < len(intervals); i += 2 {
		total += int64(intervals[i+1] - intervals[i])
	}
	return total
}

// ChrNames returns the chromosome names present in the union, in no
// particular order.
func (u *BEDUnion) ChrNames() []string {
	names := make([]string, 0, len(u.nameMap))
	for name := range u.nameMap {
		names = append(names, name)
	}
	return names
}

func initBEDUnion() (bedUnion BEDUnion) {
	bedUnion.nameMap = make(map[string]([]PosType))
	bedUnion.lastChrName = ""
	return
}

// Entry represents a single interval, with 0-based coordinates.
type Entry struct {
	ChrName string
	Start0  PosType
	End     PosType
}

// NewBEDUnionFromEntries initializes a BEDUnion from a sorted (by ChrName,
// then Start0) []Entry, merging touching/overlapping intervals and
// eliminating empty ones in the process.
func NewBEDUnionFromEntries(entries []Entry) (bedUnion BEDUnion, err error) {
	bedUnion = initBEDUnion()
	prevChr := ""
	var prevStart, prevEnd PosType
	var chrIntervals []PosType
	flush := func() {
		if prevChr == "" {
			return
		}
		if prevEnd != -1 {
			chrIntervals = append(chrIntervals, prevStart, prevEnd)
		}
		bedUnion.nameMap[prevChr] = chrIntervals
	}
	for _, entry := range entries {
		if entry.Start0 < 0 {
			err = fmt.Errorf("interval.NewBEDUnionFromEntries: negative start coordinate")
			return
		}
		if entry.End < entry.Start0 || entry.End >= PosTypeMax {
			err = fmt.Errorf("interval.NewBEDUnionFromEntries: invalid coordinate pair [%d, %d)", entry.Start0, entry.End)
			return
		}
		if entry.ChrName != prevChr {
			flush()
			prevChr = entry.ChrName
			if _, found := bedUnion.nameMap[prevChr]; found {
				err = fmt.Errorf("interval.NewBEDUnionFromEntries: unsorted input (split chromosome %v)", entry.ChrName)
				return
			}
			chrIntervals = []PosType{}
			if entry.End == entry.Start0 {
				prevStart, prevEnd = -1, -1
				continue
			}
			prevStart, prevEnd = entry.Start0, entry.End
			continue
		}
		if entry.End == entry.Start0 {
			continue
		}
		if entry.Start0 > prevEnd {
			if prevEnd != -1 {
				chrIntervals = append(chrIntervals, prevStart, prevEnd)
			}
			prevStart, prevEnd = entry.Start0, entry.End
		} else {
			if entry.Start0 < prevStart {
				err = fmt.Errorf("interval.NewBEDUnionFromEntries: unsorted input")
				return
			}
			if entry.End > prevEnd {
				prevEnd = entry.End
			}
		}
	}
	flush()
	return
}

// Clone returns a new BEDUnion which shares the interval set, but has its own
// search state.
func (u *BEDUnion) Clone() (bedUnion BEDUnion) {
	bedUnion.nameMap = u.nameMap
	bedUnion.lastChrIntervals = nil
	bedUnion.lastChrName = ""
	return
}
